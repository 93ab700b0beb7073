package render

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"sentinel/html"
	"sentinel/view"
)

// submitForm collects and submits the form enclosing the activated control.
// A control outside any form is inert.
func (s *run) submitForm(control *html.Node) {
	form := control.Ancestor("form")
	if form == nil {
		s.r.logger.Debug("control activated outside a form", zap.String("tag", control.Tag))
		return
	}

	fields := s.collectFields(form)

	target := s.base
	if action := form.Attr("action"); action != "" {
		resolved, err := s.base.Resolve(action)
		if err != nil {
			s.r.logger.Warn("unresolvable form action", zap.String("action", action), zap.Error(err))
			return
		}
		target = resolved
	}

	method := strings.ToLower(form.Attr("method"))
	if method == "" {
		method = "get"
	}
	// DuckDuckGo's lite frontend only answers GET, whatever the markup says.
	if strings.Contains(target.String(), "duckduckgo.com/lite") {
		method = "get"
	}

	if s.base.Secure() && !target.Secure() {
		s.r.logger.Warn("blocked insecure form submission", zap.String("action", target.String()))
		s.page.Append(&view.Warning{
			Message: "Blocked form submission to an insecure address: " + target.String(),
		})
		return
	}

	if method == "post" {
		s.r.nav.PostForm(target.String(), fields)
		return
	}
	dest := target.String()
	if len(fields) > 0 {
		values := url.Values{}
		for name, value := range fields {
			values.Set(name, value)
		}
		separator := "?"
		if strings.Contains(dest, "?") {
			separator = "&"
		}
		dest += separator + values.Encode()
	}
	s.r.nav.SecureNavigate(dest)
}

// collectFields gathers named inputs under form in document order, preferring
// the live edited value over the markup default.
func (s *run) collectFields(form *html.Node) map[string]string {
	fields := make(map[string]string)
	for _, node := range html.TreeToList(form) {
		if node.Tag != "input" {
			continue
		}
		name := node.Attr("name")
		if name == "" {
			continue
		}
		if bound, ok := s.r.bindings[node.Index]; ok {
			fields[name] = bound.Value
		} else {
			fields[name] = node.Attr("value")
		}
	}
	return fields
}
