package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"sentinel/config"
	"sentinel/css"
	"sentinel/download"
	"sentinel/fetch"
	"sentinel/gate"
	"sentinel/html"
	"sentinel/logging"
	"sentinel/render"
	"sentinel/sanitize"
	"sentinel/task"
	u "sentinel/url"
	"sentinel/view"
)

// internalBase is the address internal documents (welcome, errors, blocks)
// render under. Security prompts never apply when leaving it.
const internalBase = "https://start.sentinel.internal/"

const titleLimit = 60

// Tab owns one page: its history, its render pipeline, and the worker that
// loads documents off the UI thread.
type Tab struct {
	browser   *Browser
	cfg       *config.Config
	logger    *logging.Logger
	Runner    *TaskRunner
	renderer  *render.Renderer
	resolver  *css.Resolver
	downloads *download.Manager

	mu      sync.Mutex
	page    *view.Page
	base    *u.URL
	title   string
	history *History
	loadSeq int
	scroll  float64
	loading bool
}

func NewTab(b *Browser) *Tab {
	t := &Tab{
		browser: b,
		cfg:     b.cfg,
		logger:  b.logger.Named("tab"),
		Runner:  NewTaskRunner(),
		history: NewHistory(),
		page:    view.NewPage(),
	}
	t.renderer = render.NewRenderer(b.fetcher, b, t, b.cfg, b.logger)
	t.resolver = css.NewResolver(b.fetcher, b.cfg.Network, b.logger)
	t.downloads = &download.Manager{Fetcher: b.fetcher, Sink: b.sink, Logger: b.logger}
	t.Runner.StartThread()
	return t
}

func (t *Tab) Close() {
	t.Runner.SetNeedsQuit()
}

// ShowWelcome renders the start page without touching history.
func (t *Tab) ShowWelcome() {
	t.showInternal(welcomeDocument, 0)
}

// Navigate handles user address-bar input: a schemeless host gets https
// prepended, anything that doesn't look like an address becomes a search.
func (t *Tab) Navigate(raw string) {
	t.startLoad(canonicalTarget(raw, t.cfg), true, "GET", nil)
}

// SecureNavigate is the renderer's entry point for link and GET form
// targets. It interposes the impersonation checks before the normal load
// path; the user can proceed past a warning explicitly.
func (t *Tab) SecureNavigate(target string) {
	if t.isLoading() {
		t.logger.Debug("ignoring navigation while a load is in flight", zap.String("url", target))
		return
	}
	if !t.screenTarget(target, func() { t.startLoad(target, true, "GET", nil) }) {
		return
	}
	t.startLoad(target, true, "GET", nil)
}

// PostForm submits collected form fields to action. POST targets pass the
// same impersonation gates as links and GET submissions.
func (t *Tab) PostForm(action string, fields map[string]string) {
	if t.isLoading() {
		t.logger.Debug("ignoring submission while a load is in flight", zap.String("url", action))
		return
	}
	if !t.screenTarget(action, func() { t.startLoad(action, true, "POST", fields) }) {
		return
	}
	t.startLoad(action, true, "POST", fields)
}

// screenTarget applies the cross-domain and brand-impersonation gates shared
// by every page-initiated activation. It reports false after showing a
// warning page whose escape hatch re-runs the original submission.
func (t *Tab) screenTarget(target string, proceed func()) bool {
	current := t.Location()
	if current != "" && !strings.Contains(current, ".sentinel.internal") &&
		gate.IsCrossDomainSubmit(current, target) {
		t.logger.Warn("cross-domain target", zap.String("from", current), zap.String("to", target))
		t.showWarning(target, "The destination is on a different domain than the current page.", proceed)
		return false
	}
	if parsed, err := u.NewURL(target); err == nil && gate.IsSuspiciousDomain(parsed.Host) {
		t.logger.Warn("suspicious target domain", zap.String("to", target))
		t.showWarning(target, "The destination address appears to imitate a well-known brand.", proceed)
		return false
	}
	return true
}

// Download fetches and persists a file off the UI thread, reporting the
// outcome inline on the current page.
func (t *Tab) Download(target string) {
	t.Runner.ScheduleTask(task.New(func() {
		parsed, err := u.NewURL(target)
		if err != nil {
			t.notice("Download failed: " + err.Error())
			return
		}
		path, err := t.downloads.Download(context.Background(), parsed)
		if err != nil {
			t.notice("Download failed: " + err.Error())
			return
		}
		t.notice("Saved to " + path)
	}))
}

// GoBack replays the previous history entry without recording it again.
func (t *Tab) GoBack() {
	t.mu.Lock()
	target, ok := t.history.Back()
	t.mu.Unlock()
	if ok {
		t.startLoad(target, false, "GET", nil)
	}
}

// Reload replays the current history entry without recording it again.
func (t *Tab) Reload() {
	t.mu.Lock()
	target, ok := t.history.Current()
	t.mu.Unlock()
	if ok {
		t.startLoad(target, false, "GET", nil)
	}
}

// GoForward replays the next history entry without recording it again.
func (t *Tab) GoForward() {
	t.mu.Lock()
	target, ok := t.history.Forward()
	t.mu.Unlock()
	if ok {
		t.startLoad(target, false, "GET", nil)
	}
}

// startLoad runs the gate, shows the loading placeholder, and hands the
// fetch to the tab worker. Every navigation path funnels through here. One
// load at a time: navigation input is ignored while a load is in flight, so
// only one goroutine ever drives the renderer.
func (t *Tab) startLoad(target string, record bool, method string, form map[string]string) {
	if t.isLoading() {
		t.logger.Debug("ignoring navigation while a load is in flight", zap.String("url", target))
		return
	}
	parsed, err := u.NewURL(target)
	if err != nil {
		t.invalidateLoads()
		t.showInternal(errorDocument("The address could not be understood: "+err.Error()), 0)
		return
	}
	if !gate.IsAsciiURL(target) {
		t.logger.Warn("blocked non-ascii address", zap.String("url", target))
		t.invalidateLoads()
		t.showInternal(blockedDocument(target, "The address contains non-ASCII characters and was not loaded."), 0)
		return
	}
	if gate.CheckSafety(target, t.browser.Blocklist()) {
		t.logger.Warn("blocked by threat list", zap.String("url", target))
		t.invalidateLoads()
		t.showInternal(blockedDocument(target, "The address is on the threat blocklist."), 0)
		return
	}

	t.mu.Lock()
	if record {
		t.history.Visit(target)
	}
	t.loadSeq++
	seq := t.loadSeq
	t.mu.Unlock()

	// placeholder first: present clears loading, so arm it afterwards
	t.showInternal(loadingDocument, seq)
	t.mu.Lock()
	t.loading = true
	t.mu.Unlock()
	t.Runner.ScheduleTask(task.New(func() {
		t.fetchAndShow(seq, parsed, method, form)
	}))
}

func (t *Tab) fetchAndShow(seq int, target *u.URL, method string, form map[string]string) {
	resp, err := t.browser.fetcher.Do(context.Background(), fetch.Request{
		URL:     target.String(),
		Method:  method,
		Form:    form,
		Timeout: t.cfg.Network.PageTimeout,
	})
	if t.stale(seq) {
		t.logger.Debug("dropping stale load", zap.String("url", target.String()))
		return
	}
	if err != nil {
		t.showInternal(errorDocument("The page could not be loaded: "+err.Error()), seq)
		return
	}
	if !resp.OK() {
		t.showInternal(errorDocument(fmt.Sprintf("The server answered with status %d %s.",
			resp.Status, http.StatusText(resp.Status))), seq)
		return
	}
	t.showDocument(string(resp.Body), target, seq)
}

// showDocument runs the full pipeline: style resolution on the raw text,
// sanitation, parse, render, then an atomic page swap if still current.
func (t *Tab) showDocument(doc string, base *u.URL, seq int) {
	ctx := context.Background()
	title := extractTitle(doc)
	rules := t.resolver.Resolve(ctx, doc, base)
	root := html.Parse(sanitize.Strip(doc))
	page := view.NewPage()
	t.renderer.Render(ctx, root, rules, base, page)
	t.present(page, base, title, seq)
}

func (t *Tab) showInternal(doc string, seq int) {
	base, err := u.NewURL(internalBase)
	if err != nil {
		return
	}
	t.showDocument(doc, base, seq)
}

// invalidateLoads makes any in-flight fetch stale so it cannot overwrite a
// page shown synchronously after it started.
func (t *Tab) invalidateLoads() {
	t.mu.Lock()
	t.loadSeq++
	t.mu.Unlock()
}

// showWarning is a blocked page plus an explicit escape hatch.
func (t *Tab) showWarning(target, reason string, proceed func()) {
	t.invalidateLoads()
	t.showInternal(blockedDocument(target, reason), 0)
	t.mu.Lock()
	t.page.Append(&view.Button{
		Label:      "Proceed anyway",
		OnActivate: proceed,
	})
	t.mu.Unlock()
}

// present swaps in a freshly rendered page. A zero seq is unconditional;
// otherwise a page from a superseded load is dropped.
func (t *Tab) present(page *view.Page, base *u.URL, title string, seq int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != 0 && seq != t.loadSeq {
		return false
	}
	t.page = page
	t.base = base
	t.title = title
	t.scroll = 0
	t.loading = false
	return true
}

func (t *Tab) stale(seq int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq != t.loadSeq
}

func (t *Tab) isLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *Tab) notice(message string) {
	t.mu.Lock()
	t.page.Append(&view.Warning{Message: message})
	t.mu.Unlock()
}

// Page returns the current page for painting and hit testing.
func (t *Tab) Page() *view.Page {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// Title returns the page title, already truncated for chrome display.
func (t *Tab) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// Location returns the current history entry, empty on internal pages.
func (t *Tab) Location() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, _ := t.history.Current()
	return current
}

func (t *Tab) Scroll() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scroll
}

// ScrollBy moves the viewport, clamped to the painted content height.
func (t *Tab) ScrollBy(delta, contentHeight, viewHeight float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	max := contentHeight - viewHeight
	if max < 0 {
		max = 0
	}
	t.scroll += delta
	if t.scroll > max {
		t.scroll = max
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

func canonicalTarget(raw string, cfg *config.Config) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cfg.Network.SearchURL
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	if strings.Contains(raw, ".") && !strings.Contains(raw, " ") {
		return "https://" + raw
	}
	return cfg.Network.SearchURL + "?q=" + url.QueryEscape(raw)
}

// extractTitle pulls the first non-empty title text, capped for display.
func extractTitle(doc string) string {
	for _, node := range html.TreeToList(html.Parse(doc)) {
		if node.Tag != "title" {
			continue
		}
		title := strings.TrimSpace(node.Text)
		if title == "" {
			continue
		}
		runes := []rune(title)
		if len(runes) > titleLimit {
			return string(runes[:titleLimit]) + "…"
		}
		return title
	}
	return ""
}
