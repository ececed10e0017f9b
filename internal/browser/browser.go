// Package browser owns the Chrome process and page lifecycle for the
// browser-automated adapter family.
//
// Each adapter run gets exactly one browser process and one page; Close
// tears the process down on every exit path so repeated runs never leak
// OS-level Chrome processes. Diagnostic capture (screenshots) is
// best-effort and never escalates.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"eventcast/pkg/logx"
)

// Options control a single session.
type Options struct {
	Headless    bool
	StepTimeout time.Duration
	Screenshots ScreenshotSink
	Log         logx.Logger
}

// Session is one exclusive browser process plus one page. Not safe for
// concurrent use; adapters run sequentially and each owns its session.
type Session struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc

	stepTimeout time.Duration
	shots       ScreenshotSink
	log         logx.Logger
}

// Launch starts a browser process and opens its page. The caller must
// Close() the session; Close is safe on every path including errors here.
func Launch(parent context.Context, opts Options) (*Session, error) {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = 15 * time.Second
	}
	if opts.Screenshots == nil {
		opts.Screenshots = NopSink{}
	}
	if opts.Log.IsZero() {
		opts.Log = logx.Nop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		stepTimeout: opts.StepTimeout,
		shots:       opts.Screenshots,
		log:         opts.Log,
	}

	// Force the process to start now so launch failures surface here,
	// not inside the first form step.
	if err := s.Run(chromedp.Navigate("about:blank")); err != nil {
		s.Close()
		return nil, fmt.Errorf("browser launch: %w", err)
	}
	return s, nil
}

// Close tears down the page and the browser process. Idempotent.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.cancelCtx != nil {
		s.cancelCtx()
		s.cancelCtx = nil
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
		s.cancelAlloc = nil
	}
}

// Run executes actions against the page, bounded by the per-step timeout.
// A timeout fails only this step; the session stays usable.
func (s *Session) Run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.stepTimeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Navigate loads a URL and waits for the body to be ready.
func (s *Session) Navigate(url string) error {
	if err := s.Run(chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Location reports the page's current URL.
func (s *Session) Location() (string, error) {
	var url string
	if err := s.Run(chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

// PageText returns the visible body text, for outcome classification.
func (s *Session) PageText() (string, error) {
	var text string
	if err := s.Run(chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return text, nil
}

// Screenshot captures the full page under the given label. Best-effort:
// failures are logged and swallowed, never escalated, because screenshots
// are purely diagnostic.
func (s *Session) Screenshot(label string) {
	var png []byte
	if err := s.Run(chromedp.FullScreenshot(&png, 80)); err != nil {
		s.log.Warn("screenshot capture failed", logx.String("label", label), logx.Err(err))
		return
	}
	if err := s.shots.Save(label, png); err != nil {
		s.log.Warn("screenshot save failed", logx.String("label", label), logx.Err(err))
	}
}
