package css

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sentinel/config"
	"sentinel/fetch"
	"sentinel/html"
	"sentinel/logging"
	u "sentinel/url"
)

// Resolver extracts style sources from a document and builds the rule table
// the renderer consults. It always reads the original, unsanitized document
// text: the sanitizer strips style blocks before the render parse, so
// extraction has to come first.
type Resolver struct {
	fetcher fetch.Fetcher
	cfg     config.NetworkConfig
	logger  *logging.Logger
}

func NewResolver(fetcher fetch.Fetcher, cfg config.NetworkConfig, logger *logging.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, cfg: cfg, logger: logger.Named("css")}
}

// Resolve collects every inline style block and linked stylesheet reference
// from doc, fetches the linked sheets, and parses the concatenation into a
// sanitized rule table. A failed or non-success sheet fetch degrades to "no
// style", never to an error.
func (r *Resolver) Resolve(ctx context.Context, doc string, base *u.URL) RuleTable {
	inline, linked := collect(html.Parse(doc))

	sheets := strings.Builder{}
	for _, block := range inline {
		sheets.WriteString(block)
		sheets.WriteString("\n")
	}

	for _, href := range linked {
		if base == nil {
			break
		}
		sheetURL, err := base.Resolve(href)
		if err != nil {
			r.logger.Debug("skipping unresolvable stylesheet", zap.String("href", href), zap.Error(err))
			continue
		}
		resp, err := r.fetcher.Do(ctx, fetch.Request{
			URL:     sheetURL.String(),
			Timeout: r.cfg.StylesheetTimeout,
		})
		if err != nil || !resp.OK() {
			r.logger.Debug("stylesheet fetch failed", zap.String("url", sheetURL.String()))
			continue
		}
		sheets.Write(resp.Body)
		sheets.WriteString("\n")
	}

	table := make(RuleTable)
	for _, rule := range NewParser(sheets.String()).Parse() {
		decls := sanitize(rule.Body, r.logger)
		if len(decls) == 0 {
			continue
		}
		table[rule.Selector] = decls
	}
	return table
}

// collect walks the tree for <style> text and link[rel=stylesheet] hrefs, in
// document order.
func collect(root *html.Node) (inline []string, linked []string) {
	for _, node := range html.TreeToList(root) {
		switch node.Tag {
		case "style":
			if text := strings.TrimSpace(node.Text); text != "" {
				inline = append(inline, text)
			}
		case "link":
			if !strings.EqualFold(node.Attr("rel"), "stylesheet") {
				continue
			}
			if href := node.Attr("href"); href != "" {
				linked = append(linked, href)
			}
		}
	}
	return inline, linked
}
