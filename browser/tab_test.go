package browser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/config"
	"sentinel/fetch"
	"sentinel/gate"
	"sentinel/logging"
	"sentinel/view"
)

// fakeFetcher serves canned documents and records every request. When hold is
// set, Do signals entered and then blocks until hold is closed, so tests can
// keep a load in flight.
type fakeFetcher struct {
	mu       sync.Mutex
	docs     map[string]string
	requests []fetch.Request
	hold     chan struct{}
	entered  chan struct{}
}

func (f *fakeFetcher) Do(_ context.Context, req fetch.Request) (*fetch.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	hold, entered := f.hold, f.entered
	f.mu.Unlock()
	if entered != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
	}
	if hold != nil {
		<-hold
	}
	for prefix, doc := range f.docs {
		if strings.HasPrefix(req.URL, prefix) {
			return &fetch.Response{Status: 200, Body: []byte(doc)}, nil
		}
	}
	return nil, errors.New("no such host")
}

func (f *fakeFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		out = append(out, req.URL)
	}
	return out
}

func (f *fakeFetcher) lastRequest() fetch.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestBrowser(docs map[string]string) (*Browser, *fakeFetcher) {
	cfg := config.LoadOrDefault()
	cfg.Security.BlocklistEnabled = false
	b := NewBrowser(cfg, logging.NewNop())
	fake := &fakeFetcher{docs: docs}
	b.fetcher = fake
	return b, fake
}

func pageText(tab *Tab) string {
	var sb strings.Builder
	for _, node := range tab.Page().Nodes {
		switch n := node.(type) {
		case *view.Text:
			sb.WriteString(n.Text)
		case *view.ListItem:
			sb.WriteString(n.Text)
		case *view.Warning:
			sb.WriteString(n.Message)
		case *view.ErrorPlaceholder:
			sb.WriteString(n.Message)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func waitForText(t *testing.T, tab *Tab, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Contains(pageText(tab), want)
	}, 2*time.Second, 10*time.Millisecond, "page never showed %q", want)
}

func TestNavigateRendersDocumentAndTitle(t *testing.T) {
	b, _ := newTestBrowser(map[string]string{
		"https://example.test/": "<html><head><title>Example Domain</title></head>" +
			"<body><p>hello from example</p></body></html>",
	})
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("https://example.test/")

	waitForText(t, tab, "hello from example")
	assert.Equal(t, "Example Domain", tab.Title())
	assert.Equal(t, "https://example.test/", tab.Location())
}

func TestNavigateNonAsciiAddressBlocked(t *testing.T) {
	b, fake := newTestBrowser(nil)
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("https://exämple.test/")

	waitForText(t, tab, "non-ASCII")
	assert.Empty(t, fake.requested(), "a blocked address must never be fetched")
}

func TestNavigateBlocklistedAddressBlocked(t *testing.T) {
	b, fake := newTestBrowser(nil)
	defer b.Shutdown()
	b.mu.Lock()
	b.blocklist = gate.NewBlocklist([]string{"evil.test"})
	b.mu.Unlock()

	tab := b.NewTab()
	tab.Navigate("https://evil.test/login")

	waitForText(t, tab, "threat blocklist")
	assert.Empty(t, fake.requested())
}

func TestPlainWordsBecomeSearch(t *testing.T) {
	b, fake := newTestBrowser(map[string]string{
		"https://duckduckgo.com/lite/": "<p>results</p>",
	})
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("cute cats")

	waitForText(t, tab, "results")
	requests := fake.requested()
	require.NotEmpty(t, requests)
	assert.Equal(t, "https://duckduckgo.com/lite/?q=cute+cats", requests[0])
}

func TestSchemelessHostGetsHTTPS(t *testing.T) {
	b, fake := newTestBrowser(map[string]string{
		"https://example.test": "<p>secure by default</p>",
	})
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("example.test")

	waitForText(t, tab, "secure by default")
	requests := fake.requested()
	require.NotEmpty(t, requests)
	assert.True(t, strings.HasPrefix(requests[0], "https://example.test"))
}

func TestFetchFailureShowsErrorDocument(t *testing.T) {
	b, _ := newTestBrowser(nil)
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("https://unreachable.test/")

	waitForText(t, tab, "could not be loaded")
	// the failed load still lands in history so back/forward stay coherent
	assert.Equal(t, "https://unreachable.test/", tab.Location())
}

func TestBackForwardReplaysWithoutRecording(t *testing.T) {
	b, _ := newTestBrowser(map[string]string{
		"https://a.test/": "<p>page alpha</p>",
		"https://b.test/": "<p>page beta</p>",
	})
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("https://a.test/")
	waitForText(t, tab, "page alpha")
	tab.Navigate("https://b.test/")
	waitForText(t, tab, "page beta")

	tab.GoBack()
	waitForText(t, tab, "page alpha")
	assert.Equal(t, "https://a.test/", tab.Location())

	tab.GoForward()
	waitForText(t, tab, "page beta")
	assert.Equal(t, "https://b.test/", tab.Location())

	tab.mu.Lock()
	recorded := len(tab.history.urls)
	tab.mu.Unlock()
	assert.Equal(t, 2, recorded)
}

func TestSuspiciousTargetWarnsBeforeLoading(t *testing.T) {
	b, fake := newTestBrowser(map[string]string{
		"https://paypal-login-update.test/": "<p>gotcha</p>",
	})
	defer b.Shutdown()

	tab := b.NewTab()
	tab.SecureNavigate("https://paypal-login-update.test/")

	waitForText(t, tab, "imitate")
	assert.Empty(t, fake.requested(), "warning must come before any fetch")

	// the escape hatch still works
	var proceed *view.Button
	for _, node := range tab.Page().Nodes {
		if btn, ok := node.(*view.Button); ok {
			proceed = btn
		}
	}
	require.NotNil(t, proceed)
	proceed.OnActivate()
	waitForText(t, tab, "gotcha")
}

func TestCrossDomainPostWarnsBeforeSubmitting(t *testing.T) {
	b, fake := newTestBrowser(map[string]string{
		"https://a.test/":             "<p>page alpha</p>",
		"https://collector.test/drop": "<p>received</p>",
	})
	defer b.Shutdown()

	tab := b.NewTab()
	tab.Navigate("https://a.test/")
	waitForText(t, tab, "page alpha")

	tab.PostForm("https://collector.test/drop", map[string]string{"card": "4111"})

	waitForText(t, tab, "different domain")
	assert.Equal(t, []string{"https://a.test/"}, fake.requested(),
		"the submission must not reach the wire before the warning")

	// the escape hatch re-runs the original submission
	var proceed *view.Button
	for _, node := range tab.Page().Nodes {
		if btn, ok := node.(*view.Button); ok {
			proceed = btn
		}
	}
	require.NotNil(t, proceed)
	proceed.OnActivate()
	waitForText(t, tab, "received")

	last := fake.lastRequest()
	assert.Equal(t, "POST", last.Method)
	assert.Equal(t, "4111", last.Form["card"])
}

func TestNavigationIgnoredWhileLoadInFlight(t *testing.T) {
	b, fake := newTestBrowser(map[string]string{
		"https://a.test/": "<p>page alpha</p>",
		"https://b.test/": "<p>page beta</p>",
	})
	defer b.Shutdown()
	fake.hold = make(chan struct{})
	fake.entered = make(chan struct{}, 1)

	tab := b.NewTab()
	tab.Navigate("https://a.test/")
	select {
	case <-fake.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first load never reached the fetcher")
	}

	// arrives while the first load is in flight, so it is dropped
	tab.Navigate("https://b.test/")
	tab.SecureNavigate("https://b.test/")

	close(fake.hold)
	waitForText(t, tab, "page alpha")

	assert.Equal(t, []string{"https://a.test/"}, fake.requested())
	tab.mu.Lock()
	recorded := len(tab.history.urls)
	tab.mu.Unlock()
	assert.Equal(t, 1, recorded, "a dropped navigation must not enter history")
}

func TestCanonicalTarget(t *testing.T) {
	cfg := config.LoadOrDefault()
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com/x", "https://example.com/x"},
		{"http://example.com", "http://example.com"},
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
		{"cute cats", "https://duckduckgo.com/lite/?q=cute+cats"},
		{"what is go", "https://duckduckgo.com/lite/?q=what+is+go"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalTarget(tt.input, cfg), "input %q", tt.input)
	}
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Short", extractTitle("<head><title>Short</title></head>"))
	assert.Equal(t, "", extractTitle("<p>no title</p>"))

	long := strings.Repeat("x", 90)
	got := extractTitle("<title>" + long + "</title>")
	assert.Equal(t, strings.Repeat("x", 60)+"…", got)
}
