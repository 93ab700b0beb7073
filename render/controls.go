package render

import (
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"sentinel/html"
	"sentinel/view"
)

// DOWNLOAD_EXTENSIONS are path suffixes that mean "save this, don't render
// it". Matched case-insensitively against the link target's path.
var DOWNLOAD_EXTENSIONS = []string{
	".pdf", ".zip",
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp",
	".txt", ".csv", ".json", ".xml",
	".apk", ".exe", ".bat", ".cmd", ".sh", ".js", ".jar", ".msi", ".scr",
}

func (s *run) button(node *html.Node, label string) {
	s.page.Append(&view.Button{
		Label:      label,
		Style:      s.styleFor(node),
		OnActivate: func() { s.submitForm(node) },
	})
}

func (s *run) input(node *html.Node) {
	switch strings.ToLower(node.Attr("type")) {
	case "button", "submit":
		label := node.Attr("value")
		if label == "" {
			label = "Submit"
		}
		s.page.Append(&view.Button{
			Label:      label,
			Style:      s.styleFor(node),
			OnActivate: func() { s.submitForm(node) },
		})

	case "", "text", "search", "hidden":
		hint := node.Attr("placeholder")
		if hint == "" {
			hint = node.Attr("title")
		}
		in := &view.Input{
			NodeIndex: node.Index,
			Value:     node.Attr("value"),
			Hint:      hint,
			Style:     s.styleFor(node),
			OnCommit:  func() { s.submitForm(node) },
		}
		s.r.bindings[node.Index] = in
		s.page.Append(in)
	}
}

func (s *run) anchor(node *html.Node) {
	href := node.Attr("href")
	label := strings.TrimSpace(node.Text)
	if label == "" {
		label = href
	}
	if label == "" {
		return
	}
	s.page.Append(&view.Link{
		Text:       label,
		Href:       href,
		Style:      s.styleFor(node),
		OnActivate: func() { s.activateLink(href) },
	})
}

// activateLink routes a clicked link: file downloads go through the safety
// classifier, cross-protocol jumps from a secure page are blocked, and
// search-engine redirect wrappers are unwrapped before navigating.
func (s *run) activateLink(href string) {
	if href == "" {
		return
	}
	target, err := s.base.Resolve(href)
	if err != nil {
		s.r.logger.Debug("unresolvable link", zap.String("href", href), zap.Error(err))
		return
	}

	if isDownloadPath(target.Path) {
		if malicious, reason := s.r.classifier.Classify(target.String()); malicious {
			s.r.logger.Warn("blocked download",
				zap.String("url", target.String()), zap.String("reason", reason))
			s.page.Append(&view.Warning{
				Message: "Download blocked: " + reason,
			})
			return
		}
		s.r.nav.Download(target.String())
		return
	}

	if s.base.Secure() && !target.Secure() {
		s.r.logger.Warn("blocked mixed-content navigation", zap.String("url", target.String()))
		s.page.Append(&view.Warning{
			Message: "Blocked insecure link from a secure page: " + target.String(),
		})
		return
	}

	s.r.nav.SecureNavigate(unwrapRedirect(target.String()))
}

func isDownloadPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, known := range DOWNLOAD_EXTENSIONS {
		if ext == known {
			return true
		}
	}
	return false
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= click-tracking wrapper to
// its real destination so the safety checks see the final host.
func unwrapRedirect(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.HasSuffix(parsed.Hostname(), "duckduckgo.com") || !strings.HasPrefix(parsed.Path, "/l/") {
		return raw
	}
	if dest := parsed.Query().Get("uddg"); dest != "" {
		return dest
	}
	return raw
}
