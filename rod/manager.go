package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages a browser renders
// before it is recycled.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process and replaces it after a
// fixed number of pages, since Chrome's memory use only grows over a
// long crawl. BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages    atomic.Int64
	maxPages int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages before the browser is recycled.
// Values below 1 disable recycling.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, l
	return bm, nil
}

// Browser returns the current browser, first replacing it if it has
// rendered its quota of pages. Tabs already open on a replaced browser
// fail, and the crawler retries them.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.maxPages > 0 && bm.pages.Load() >= bm.maxPages {
		bm.recycle()
	}
	return bm.browser
}

// IncrementPageCount records one rendered page against the current browser.
func (bm *BrowserManager) IncrementPageCount() {
	bm.pages.Add(1)
}

// Close kills the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// LauncherPID returns the process ID of the browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// recycle swaps in a fresh browser. On launch failure the old browser is
// kept and the count is left alone, so the next call tries again.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	browser, l, err := launch()
	if err != nil {
		return
	}
	_ = shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, l
	bm.pages.Store(0)
}

// launch starts Chrome with flags that keep background tabs from being
// throttled during a crawl.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
