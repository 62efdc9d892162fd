// Package browser drives a headless Chrome through the DevTools protocol.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/pkg/logger"
)

// Options configures the Chrome process.
type Options struct {
	Width    int
	Height   int
	Headless bool
	// ExecPath overrides Chrome discovery.
	ExecPath string
	// NoSandbox is needed when running as root in containers.
	NoSandbox bool
}

// Chrome implements domain.Browser. The Chrome process starts on the first
// Open and is shared by every page until Close.
type Chrome struct {
	opts Options

	mu            sync.Mutex
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// New returns a Chrome browser. Nothing is launched until Open.
func New(opts Options) *Chrome {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	return &Chrome{opts: opts}
}

// Open creates a new tab sized to the configured viewport.
func (c *Chrome) Open(ctx context.Context) (domain.Page, error) {
	browserCtx, err := c.start()
	if err != nil {
		return nil, err
	}

	// The first Run on a fresh context creates its target and must not be
	// on a derived context, or cancelling it closes the tab.
	tabCtx, cancel := chromedp.NewContext(browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	if err := runWithin(ctx, tabCtx, chromedp.EmulateViewport(int64(c.opts.Width), int64(c.opts.Height))); err != nil {
		cancel()
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	return &Page{ctx: tabCtx, cancel: cancel}, nil
}

func (c *Chrome) start() (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browserCtx != nil {
		return c.browserCtx, nil
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", c.opts.Headless),
		chromedp.WindowSize(c.opts.Width, c.opts.Height),
	)
	if c.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ExecPath))
	}
	if c.opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...), zap.String("component", "chromedp"))
		}),
	)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	logger.Debug("chrome started", zap.Bool("headless", c.opts.Headless))
	c.browserCtx = browserCtx
	c.cancelBrowser = cancelBrowser
	c.cancelAlloc = cancelAlloc
	return browserCtx, nil
}

// Close shuts Chrome down.
func (c *Chrome) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browserCtx == nil {
		return nil
	}
	c.cancelBrowser()
	c.cancelAlloc()
	c.browserCtx = nil
	return nil
}

// Page is one Chrome tab.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Navigate loads url and waits for the body to be ready.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	err := runWithin(ctx, tctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("navigating to %s: timed out after %s", url, timeout)
	}
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Evaluate calls script with args and decodes its JSON result into out.
func (p *Page) Evaluate(ctx context.Context, script domain.PageScript, args any, out any) error {
	argJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%s: encoding args: %w", script.Name, err)
	}
	expr := fmt.Sprintf("(%s)(%s)", script.Source, argJSON)

	if out == nil {
		if err := runWithin(ctx, p.ctx, chromedp.Evaluate(expr, nil)); err != nil {
			return fmt.Errorf("%s: %w", script.Name, err)
		}
		return nil
	}

	var raw []byte
	if err := runWithin(ctx, p.ctx, chromedp.Evaluate(expr, &raw)); err != nil {
		return fmt.Errorf("%s: %w", script.Name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decoding result: %w", script.Name, err)
	}
	return nil
}

// Wait sleeps for d or until ctx is done.
func (p *Page) Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Close closes the tab.
func (p *Page) Close() error {
	p.cancel()
	return nil
}

// runWithin runs actions on a chromedp context while honoring cancellation
// of the caller's ctx.
func runWithin(ctx, cdpCtx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(cdpCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
