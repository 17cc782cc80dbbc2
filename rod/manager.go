package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages rendered before the
// browser is replaced.
const DefaultMaxPages = 75

// instance is one running browser and the number of pages currently
// open on it.
type instance struct {
	browser  *rod.Browser
	shutdown func() error
	inUse    int
	retired  bool
	stopped  bool
}

func (i *instance) stop() error {
	if i.stopped {
		return nil
	}
	i.stopped = true
	return i.shutdown()
}

// browserPool owns one headless Chrome instance and replaces it after
// maxPages renders, since Chrome's memory use only grows under load.
// A replaced browser stays up until its last page is released.
// browserPool is safe for concurrent use.
type browserPool struct {
	mu       sync.Mutex
	current  *instance
	launch   func() (*instance, error)
	pages    int
	maxPages int
	closed   bool
}

func newBrowserPool(maxPages int, launch func() (*instance, error)) (*browserPool, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	p := &browserPool{maxPages: maxPages, launch: launch}
	inst, err := launch()
	if err != nil {
		return nil, err
	}
	p.current = inst
	return p, nil
}

// acquire returns the browser to render the next page on, replacing it
// first when it has reached its page budget. A failed relaunch keeps the
// old browser. The returned release func must be called once the page
// is closed.
func (p *browserPool) acquire() (*rod.Browser, func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, nil, fmt.Errorf("browser is closed")
	}
	if p.pages >= p.maxPages {
		if inst, err := p.launch(); err == nil {
			old := p.current
			old.retired = true
			if old.inUse == 0 {
				_ = old.stop()
			}
			p.current, p.pages = inst, 0
		}
	}
	p.pages++

	inst := p.current
	inst.inUse++
	var once sync.Once
	release := func() {
		once.Do(func() { p.release(inst) })
	}
	return inst.browser, release, nil
}

func (p *browserPool) release(inst *instance) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst.inUse--
	if inst.retired && inst.inUse == 0 {
		_ = inst.stop()
	}
}

// close shuts down the current browser. It is safe to call more than
// once. Browsers retired earlier shut down as their pages are released.
func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.current.retired = true
	return p.current.stop()
}

// launchChrome starts a local headless Chrome and connects to it.
func launchChrome() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{
		browser: browser,
		shutdown: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}
