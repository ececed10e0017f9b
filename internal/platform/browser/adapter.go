// Package browser implements the browser-form adapter family: platforms
// with no public API, driven through their own submission forms via a
// headless Chrome session.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	session "eventcast/internal/browser"
	"eventcast/internal/config"
	"eventcast/internal/event"
	"eventcast/internal/platform"
	"eventcast/internal/report"
	"eventcast/pkg/logx"
)

// Adapter drives one platform's login and submission form.
type Adapter struct {
	spec        Spec
	login       config.Login
	hasLogin    bool
	stepTimeout time.Duration
	shots       session.ScreenshotSink
	log         logx.Logger
}

// New builds a browser adapter from its form spec and the process-wide
// credential set.
func New(spec Spec, creds *config.Credentials, stepTimeout time.Duration, shots session.ScreenshotSink, log logx.Logger) *Adapter {
	login, ok := creds.Login(spec.Platform)
	if spec.Settle <= 0 {
		spec.Settle = 2 * time.Second
	}
	if shots == nil {
		shots = session.NopSink{}
	}
	return &Adapter{
		spec:        spec,
		login:       login,
		hasLogin:    ok,
		stepTimeout: stepTimeout,
		shots:       shots,
		log:         log.With(logx.String("platform", spec.Platform)),
	}
}

func (a *Adapter) Name() string { return a.spec.Platform }

// Submit runs the full pipeline: launch, authenticate, fill, finalize.
// The session is torn down on every exit path.
func (a *Adapter) Submit(ctx context.Context, env event.Envelope, opts platform.Options) (report.Result, error) {
	if !a.hasLogin {
		return report.Result{}, &platform.AuthError{Platform: a.spec.Platform, Reason: "no credentials configured"}
	}

	sess, err := session.Launch(ctx, session.Options{
		Headless:    opts.Headless,
		StepTimeout: a.stepTimeout,
		Screenshots: a.shots,
		Log:         a.log,
	})
	if err != nil {
		return report.Result{}, err
	}
	defer sess.Close()

	if err := a.authenticate(sess); err != nil {
		return report.Result{}, err
	}
	if err := a.fillForm(sess, env); err != nil {
		return report.Result{}, err
	}

	sess.Screenshot(a.spec.Platform + "-pre-submit")

	if opts.DryRun {
		a.log.Info("dry run: form filled, submit skipped")
		return report.Result{
			Platform: a.spec.Platform,
			Success:  true,
			Message:  "dry run: form filled, final submit skipped",
			DryRun:   true,
			At:       time.Now(),
		}, nil
	}

	return a.finalize(sess)
}

// authenticate logs in and checks we actually left the login page.
func (a *Adapter) authenticate(sess *session.Session) error {
	if err := sess.Navigate(a.spec.LoginURL); err != nil {
		return err
	}
	err := sess.Run(
		chromedp.WaitVisible(a.spec.EmailSel, chromedp.ByQuery),
		chromedp.SendKeys(a.spec.EmailSel, a.login.Email, chromedp.ByQuery),
		chromedp.SendKeys(a.spec.PasswordSel, a.login.Password, chromedp.ByQuery),
		chromedp.Click(a.spec.LoginSubmit, chromedp.ByQuery),
		chromedp.Sleep(a.spec.Settle),
	)
	if err != nil {
		return fmt.Errorf("%s login: %w", a.spec.Platform, err)
	}

	loc, err := sess.Location()
	if err != nil {
		return fmt.Errorf("%s login: %w", a.spec.Platform, err)
	}
	if strings.HasPrefix(loc, a.spec.LoginURL) {
		return &platform.AuthError{Platform: a.spec.Platform, Reason: "still on login page after submit"}
	}
	a.log.Debug("authenticated", logx.String("url", loc))
	return nil
}

func (a *Adapter) fillForm(sess *session.Session, env event.Envelope) error {
	if err := sess.Navigate(a.spec.FormURL); err != nil {
		return err
	}
	for _, f := range a.spec.Fields {
		value := f.Value(env)
		if value == "" {
			continue
		}
		if err := a.fillField(sess, f, value); err != nil {
			if f.Optional {
				// Diagnostic-grade field: log and move on.
				a.log.Warn("optional field fill failed", logx.String("field", f.Name), logx.Err(err))
				continue
			}
			return fmt.Errorf("%s field %s: %w", a.spec.Platform, f.Name, err)
		}
	}
	return nil
}

func (a *Adapter) fillField(sess *session.Session, f Field, value string) error {
	switch f.Kind {
	case FieldSelect:
		return sess.Run(
			chromedp.WaitVisible(f.Selector, chromedp.ByQuery),
			chromedp.SetValue(f.Selector, value, chromedp.ByQuery),
		)
	case FieldAutocomplete:
		actions := []chromedp.Action{
			chromedp.WaitVisible(f.Selector, chromedp.ByQuery),
			chromedp.Click(f.Selector, chromedp.ByQuery),
			chromedp.SendKeys(f.Selector, value, chromedp.ByQuery),
			// Let the suggestion list settle before picking.
			chromedp.Sleep(a.spec.Settle),
		}
		if f.SuggestionSel != "" {
			actions = append(actions, chromedp.Click(f.SuggestionSel, chromedp.ByQuery))
		} else {
			actions = append(actions,
				chromedp.KeyEvent(kb.ArrowDown),
				chromedp.KeyEvent(kb.Enter),
			)
		}
		return sess.Run(actions...)
	default:
		return sess.Run(
			chromedp.WaitVisible(f.Selector, chromedp.ByQuery),
			chromedp.SendKeys(f.Selector, value, chromedp.ByQuery),
		)
	}
}

// finalize triggers the submit, waits out the navigation, and classifies
// the landing page.
func (a *Adapter) finalize(sess *session.Session) (report.Result, error) {
	err := sess.Run(
		chromedp.Click(a.spec.SubmitSel, chromedp.ByQuery),
		chromedp.Sleep(a.spec.Settle),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return report.Result{}, fmt.Errorf("%s submit: %w", a.spec.Platform, err)
	}

	sess.Screenshot(a.spec.Platform + "-post-submit")

	finalURL, err := sess.Location()
	if err != nil {
		return report.Result{}, fmt.Errorf("%s submit: %w", a.spec.Platform, err)
	}
	pageText, err := sess.PageText()
	if err != nil {
		// URL alone can still classify; treat unreadable text as empty.
		a.log.Warn("post-submit page text unavailable", logx.Err(err))
		pageText = ""
	}

	ok, msg := Classify(a.spec.FormURL, finalURL, pageText)
	res := report.Result{
		Platform: a.spec.Platform,
		Success:  ok,
		Message:  msg,
		At:       time.Now(),
	}
	if ok {
		res.URL = finalURL
	}
	return res, nil
}
