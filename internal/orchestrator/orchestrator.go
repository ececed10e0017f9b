// Package orchestrator fans one validated envelope out to the selected
// platform adapters and assembles the ordered, fault-isolated report.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventcast/internal/event"
	"eventcast/internal/platform"
	"eventcast/internal/report"
	"eventcast/pkg/logx"
)

type Orchestrator struct {
	log logx.Logger
}

func New(log logx.Logger) *Orchestrator {
	return &Orchestrator{log: log}
}

// SubmitAll validates the envelope once, then invokes each adapter
// sequentially in the order supplied. Sequential execution avoids resource
// contention between browser processes and makes report ordering
// deterministic by construction.
//
// A failure inside one adapter becomes that platform's failed result and
// never aborts the siblings. Only envelope validation is fatal.
func (o *Orchestrator) SubmitAll(ctx context.Context, raw event.Envelope, adapters []platform.Adapter, opts platform.Options) (report.Report, error) {
	rep := report.Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	env, err := event.Validate(raw)
	if err != nil {
		return rep, err
	}

	log := o.log.With(logx.String("run", rep.RunID))
	log.Info("submitting event",
		logx.String("title", env.Title),
		logx.String("date", env.Date),
		logx.Int("platforms", len(adapters)),
		logx.Bool("dry_run", opts.DryRun),
	)

	for _, a := range adapters {
		res := o.runOne(ctx, a, env, opts)
		rep.Results = append(rep.Results, res)
		if res.Success {
			log.Info("platform done", logx.String("platform", res.Platform), logx.String("msg", res.Message))
		} else {
			log.Warn("platform failed", logx.String("platform", res.Platform), logx.String("err", res.Error), logx.String("msg", res.Message))
		}
	}

	log.Info("run complete", logx.Bool("all_succeeded", rep.AllSucceeded()))
	return rep, nil
}

// runOne isolates a single adapter: its error, or panic, becomes a failed
// result for that platform alone.
func (o *Orchestrator) runOne(ctx context.Context, a platform.Adapter, env event.Envelope, opts platform.Options) (res report.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = report.Failure(a.Name(), fmt.Errorf("adapter panic: %v", r), opts.DryRun)
		}
	}()

	res, err := a.Submit(ctx, env, opts)
	if err != nil {
		return report.Failure(a.Name(), err, opts.DryRun)
	}
	if res.Platform == "" {
		res.Platform = a.Name()
	}
	if res.At.IsZero() {
		res.At = time.Now()
	}
	return res
}
