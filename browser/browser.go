package browser

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"sentinel/config"
	"sentinel/download"
	"sentinel/fetch"
	"sentinel/gate"
	"sentinel/logging"
)

// Browser owns the tab set and the process-wide collaborators: the HTTP
// client, the download sink, and the threat blocklist shared by every tab.
type Browser struct {
	cfg     *config.Config
	logger  *logging.Logger
	fetcher fetch.Fetcher
	sink    download.Sink

	mu        sync.Mutex
	blocklist *gate.Blocklist
	tabs      []*Tab
	active    *Tab
}

func NewBrowser(cfg *config.Config, logger *logging.Logger) *Browser {
	b := &Browser{
		cfg:       cfg,
		logger:    logger.Named("browser"),
		fetcher:   fetch.NewClient(cfg.Network, logger),
		sink:      download.NewDiskSink(cfg.Downloads.Dir, logger),
		blocklist: gate.NewBlocklist(nil),
	}
	if cfg.Security.BlocklistEnabled {
		// ad domains are usable immediately; the feeds arrive when they do
		go b.refreshBlocklist()
	}
	return b
}

func (b *Browser) refreshBlocklist() {
	list := gate.LoadBlocklist(context.Background(), b.fetcher, b.cfg.Security, b.cfg.Network, b.logger)
	b.mu.Lock()
	b.blocklist = list
	b.mu.Unlock()
	b.logger.Info("blocklist ready", zap.Int("entries", list.Len()))
}

// Blocklist returns the current threat list; safe from any goroutine.
func (b *Browser) Blocklist() *gate.Blocklist {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blocklist
}

// Classify implements the download safety check against the live blocklist.
func (b *Browser) Classify(url string) (bool, string) {
	classifier := download.HeuristicClassifier{Blocklist: b.Blocklist()}
	return classifier.Classify(url)
}

// NewTab opens a tab on the welcome page and makes it active.
func (b *Browser) NewTab() *Tab {
	t := NewTab(b)
	t.ShowWelcome()
	b.mu.Lock()
	b.tabs = append(b.tabs, t)
	b.active = t
	b.mu.Unlock()
	return t
}

// OpenTab opens a tab directly on an address.
func (b *Browser) OpenTab(raw string) *Tab {
	t := b.NewTab()
	t.Navigate(raw)
	return t
}

func (b *Browser) ActiveTab() *Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func (b *Browser) SetActiveTab(t *Tab) {
	b.mu.Lock()
	b.active = t
	b.mu.Unlock()
}

func (b *Browser) Tabs() []*Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	tabs := make([]*Tab, len(b.tabs))
	copy(tabs, b.tabs)
	return tabs
}

// CycleTabs activates the tab after the current one, wrapping around.
func (b *Browser) CycleTabs() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.tabs) < 2 {
		return
	}
	for i, t := range b.tabs {
		if t == b.active {
			b.active = b.tabs[(i+1)%len(b.tabs)]
			return
		}
	}
}

// Shutdown stops every tab worker.
func (b *Browser) Shutdown() {
	for _, t := range b.Tabs() {
		t.Close()
	}
}
