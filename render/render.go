package render

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"sentinel/color"
	"sentinel/config"
	"sentinel/css"
	"sentinel/download"
	"sentinel/fetch"
	"sentinel/html"
	"sentinel/logging"
	u "sentinel/url"
	"sentinel/view"
)

// MAX_DEPTH bounds tree recursion; subtrees nested deeper are skipped with a
// single diagnostic rather than risking the stack.
const MAX_DEPTH = 50

var SKIP_TAGS = []string{"style", "head", "title", "textarea", "script"}

// HEADING_SIZES is the tag-indexed size ramp for h1..h6.
var HEADING_SIZES = [...]float64{36, 32, 28, 24, 20, 16}

// Navigator is the slice of the navigation controller the renderer hands
// activations to.
type Navigator interface {
	SecureNavigate(target string)
	PostForm(action string, fields map[string]string)
	Download(target string)
}

// Renderer walks a parsed document and emits the widget sequence for one
// page. One renderer serves one tab; live input bindings survive the render
// so form submission can read user-edited text.
type Renderer struct {
	fetcher    fetch.Fetcher
	classifier download.Classifier
	nav        Navigator
	cfg        *config.Config
	logger     *logging.Logger

	bindings map[int]*view.Input
}

func NewRenderer(fetcher fetch.Fetcher, classifier download.Classifier, nav Navigator, cfg *config.Config, logger *logging.Logger) *Renderer {
	return &Renderer{
		fetcher:    fetcher,
		classifier: classifier,
		nav:        nav,
		cfg:        cfg,
		logger:     logger.Named("render"),
	}
}

// run is the per-document walk state.
type run struct {
	r           *Renderer
	ctx         context.Context
	rules       css.RuleTable
	base        *u.URL
	page        *view.Page
	depthWarned bool
}

// Render walks root depth-first and appends view nodes to page in document
// order. A failure inside one node becomes an inline placeholder for that
// node only; siblings and ancestors are unaffected.
func (r *Renderer) Render(ctx context.Context, root *html.Node, rules css.RuleTable, base *u.URL, page *view.Page) {
	r.bindings = make(map[int]*view.Input)
	s := &run{r: r, ctx: ctx, rules: rules, base: base, page: page}
	if body := rules.Lookup("body"); body != nil {
		if bg, ok := color.Parse(body["background-color"]); ok {
			page.Background = bg
		}
	}
	s.children(root, 1)
}

// children renders every child of node, which sit at the given depth.
func (s *run) children(node *html.Node, depth int) {
	if depth > MAX_DEPTH {
		if !s.depthWarned {
			s.r.logger.Warn("max render depth exceeded, skipping subtree",
				zap.Int("depth", depth))
			s.depthWarned = true
		}
		return
	}
	for _, child := range node.Children {
		s.renderIsolated(child, depth)
	}
}

// renderIsolated confines any failure, error or panic, to one placeholder.
func (s *run) renderIsolated(node *html.Node, depth int) {
	var err error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%v", rec)
			}
		}()
		err = s.renderNode(node, depth)
	}()
	if err != nil {
		s.r.logger.Error("node render failed",
			zap.String("tag", node.Tag), zap.Error(err))
		s.page.Append(&view.ErrorPlaceholder{Message: err.Error()})
	}
}

func (s *run) renderNode(node *html.Node, depth int) error {
	tag := strings.ToLower(node.Tag)

	switch {
	case slices.Contains(SKIP_TAGS, tag):
		return nil

	case tag == "img":
		return s.image(node)

	case tag == "ul", tag == "ol":
		s.list(node, tag == "ol", depth)
		return nil

	case tag == "button":
		s.button(node, buttonLabel(node))

	case tag == "input":
		s.input(node)

	case tag == "a":
		s.anchor(node)

	case len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6':
		style := s.styleFor(node)
		style.FontSize = HEADING_SIZES[tag[1]-'1']
		style.Bold = true
		s.appendText(node, style)

	case tag == "b":
		style := s.styleFor(node)
		style.Bold = true
		s.appendText(node, style)

	case tag == "i":
		style := s.styleFor(node)
		style.Italic = true
		s.appendText(node, style)

	case tag == "u":
		style := s.styleFor(node)
		style.Underline = true
		s.appendText(node, style)

	default:
		if strings.TrimSpace(node.Text) != "" {
			s.appendText(node, s.styleFor(node))
		}
	}

	s.children(node, depth+1)
	return nil
}

func (s *run) appendText(node *html.Node, style view.Style) {
	text := strings.TrimSpace(node.Text)
	if text == "" {
		return
	}
	s.page.Append(&view.Text{Text: text, Style: style})
}

// list emits one prefixed line per direct li child, then renders the li's own
// children normally so nested interactive elements survive.
func (s *run) list(node *html.Node, ordered bool, depth int) {
	style := s.styleFor(node)
	index := 0
	for _, item := range node.Children {
		if item.Tag != "li" {
			continue
		}
		index++
		marker := "•"
		if ordered {
			marker = fmt.Sprintf("%d.", index)
		}
		s.page.Append(&view.ListItem{
			Marker: marker,
			Text:   strings.TrimSpace(item.Text),
			Style:  style,
		})
		s.children(item, depth+2)
	}
}

func buttonLabel(node *html.Node) string {
	if text := strings.TrimSpace(node.Text); text != "" {
		return text
	}
	if value := node.Attr("value"); value != "" {
		return value
	}
	return "Button"
}
