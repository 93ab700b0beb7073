package view

import (
	"image"
	"image/color"
)

// Style carries the sanitized, resolved presentation attributes a widget can
// honor. Visibility is deliberately absent: a widget can be recolored or
// resized by page style but never hidden.
type Style struct {
	Color      color.Color
	Background color.Color
	FontSize   float64
	Bold       bool
	Italic     bool
	Underline  bool
	Align      string // "left", "center", "right"
}

// DefaultTextSize is the body text size when no style applies.
const DefaultTextSize = 16

// Node is one widget in the rendered page, in document order.
type Node interface {
	viewNode()
}

// Text is a non-interactive text run.
type Text struct {
	Text  string
	Style Style
}

// Button is an actionable control.
type Button struct {
	Label      string
	Style      Style
	OnActivate func()
}

// Input is an editable text control. Value is live state: the shell mutates
// it as the user types, and form collection reads it back at submission time.
type Input struct {
	NodeIndex int // parse-order index of the source markup node
	Value     string
	Hint      string
	Style     Style
	OnCommit  func()
}

// Link is a clickable text run.
type Link struct {
	Text       string
	Href       string
	Style      Style
	OnActivate func()
}

// Image is a decoded, width-capped picture.
type Image struct {
	Img image.Image
}

// ListItem is one bulleted or numbered line of a list container.
type ListItem struct {
	Marker string // "•" or "1." etc.
	Text   string
	Style  Style
}

// ErrorPlaceholder marks a single node whose render failed. Siblings render
// around it.
type ErrorPlaceholder struct {
	Message string
}

// Warning is a security or mixed-content notice rendered inline.
type Warning struct {
	Message string
}

func (Text) viewNode()             {}
func (Button) viewNode()           {}
func (Input) viewNode()            {}
func (Link) viewNode()             {}
func (Image) viewNode()            {}
func (ListItem) viewNode()         {}
func (ErrorPlaceholder) viewNode() {}
func (Warning) viewNode()          {}

// Placed records where one widget landed during the last paint, in page
// coordinates before scrolling.
type Placed struct {
	Node       Node
	X, Y, W, H float64
}

// Page is the widget container one document renders into. It is rebuilt from
// scratch on every load; the tab owns it.
type Page struct {
	Nodes      []Node
	Background color.Color

	// Placement is rebuilt by Paint and consumed by hit testing.
	Placement []Placed
}

func NewPage() *Page {
	return &Page{}
}

// Append adds a widget in document order.
func (p *Page) Append(node Node) {
	p.Nodes = append(p.Nodes, node)
}

// Clear drops all widgets, keeping the page reusable for the next document.
func (p *Page) Clear() {
	p.Nodes = nil
	p.Background = nil
	p.Placement = nil
}

// HitTest returns the widget painted at the given page coordinates, or nil.
func (p *Page) HitTest(x, y float64) Node {
	for _, placed := range p.Placement {
		if x >= placed.X && x < placed.X+placed.W && y >= placed.Y && y < placed.Y+placed.H {
			return placed.Node
		}
	}
	return nil
}

// Inputs returns the live input controls in document order.
func (p *Page) Inputs() []*Input {
	var inputs []*Input
	for _, node := range p.Nodes {
		if input, ok := node.(*Input); ok {
			inputs = append(inputs, input)
		}
	}
	return inputs
}
