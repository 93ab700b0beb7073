package view

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	fnt "golang.org/x/image/font"

	"sentinel/font"
)

const (
	pagePadding   = 20.
	widgetSpacing = 10.
	controlPad    = 6.
)

// Paint draws the page top-down onto a gg context, QVBox style: one widget
// per row, separated by fixed spacing. Returns the total content height so
// the shell can clamp scrolling.
func (p *Page) Paint(dc *gg.Context, scroll float64) float64 {
	if p.Background != nil {
		dc.SetColor(p.Background)
	} else {
		dc.SetColor(color.White)
	}
	dc.Clear()

	p.Placement = p.Placement[:0]
	y := pagePadding - scroll
	width := float64(dc.Width()) - 2*pagePadding
	for _, node := range p.Nodes {
		h := p.paintNode(dc, node, pagePadding, y, width)
		p.Placement = append(p.Placement, Placed{
			Node: node, X: pagePadding, Y: y + scroll, W: width, H: h,
		})
		y += h + widgetSpacing
	}
	return y + scroll
}

func (p *Page) paintNode(dc *gg.Context, node Node, x, y, width float64) float64 {
	switch n := node.(type) {
	case *Text:
		return paintText(dc, n.Text, n.Style, x, y, width)
	case *Link:
		style := n.Style
		style.Underline = true
		if style.Color == nil {
			style.Color = color.RGBA{B: 0xcc, A: 0xff}
		}
		return paintText(dc, n.Text, style, x, y, width)
	case *ListItem:
		return paintText(dc, n.Marker+" "+n.Text, n.Style, x, y, width)
	case *Button:
		return paintControl(dc, n.Label, n.Style, x, y, false)
	case *Input:
		label := n.Value
		if label == "" {
			label = n.Hint
		}
		return paintControl(dc, label, n.Style, x, y, true)
	case *Image:
		bounds := n.Img.Bounds()
		dc.DrawImage(n.Img, int(x), int(y))
		return float64(bounds.Dy())
	case *ErrorPlaceholder:
		style := Style{Color: color.RGBA{R: 0xb0, A: 0xff}, Italic: true, FontSize: 14}
		return paintText(dc, "[render error: "+n.Message+"]", style, x, y, width)
	case *Warning:
		style := Style{Color: color.RGBA{R: 0xb0, G: 0x40, A: 0xff}, Bold: true, FontSize: 15}
		return paintText(dc, "⚠ "+n.Message, style, x, y, width)
	}
	return 0
}

func paintText(dc *gg.Context, text string, style Style, x, y, width float64) float64 {
	face, err := font.Get(sizeOf(style), weightOf(style), slantOf(style))
	if err != nil {
		return 0
	}
	dc.SetFontFace(face)
	if style.Color != nil {
		dc.SetColor(style.Color)
	} else {
		dc.SetColor(color.Black)
	}

	line := font.Linespace(face)
	height := 0.
	for _, row := range wrap(face, text, width) {
		rowX := x
		if style.Align == "center" {
			rowX = x + (width-font.Measure(face, row))/2
		} else if style.Align == "right" {
			rowX = x + width - font.Measure(face, row)
		}
		dc.DrawString(row, rowX, y+height+font.Ascent(face))
		if style.Underline {
			dc.DrawLine(rowX, y+height+line-2, rowX+font.Measure(face, row), y+height+line-2)
			dc.Stroke()
		}
		height += line
	}
	return height
}

func paintControl(dc *gg.Context, label string, style Style, x, y float64, editable bool) float64 {
	face, err := font.Get(sizeOf(style), weightOf(style), slantOf(style))
	if err != nil {
		return 0
	}
	dc.SetFontFace(face)

	w := font.Measure(face, label) + 2*controlPad
	if editable && w < 200 {
		w = 200
	}
	h := font.Linespace(face) + 2*controlPad

	if style.Background != nil {
		dc.SetColor(style.Background)
	} else {
		dc.SetColor(color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff})
	}
	dc.DrawRoundedRectangle(x, y, w, h, 4)
	dc.Fill()
	dc.SetColor(color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff})
	dc.DrawRoundedRectangle(x, y, w, h, 4)
	dc.Stroke()

	if style.Color != nil {
		dc.SetColor(style.Color)
	} else {
		dc.SetColor(color.Black)
	}
	dc.DrawString(label, x+controlPad, y+controlPad+font.Ascent(face))
	return h
}

// wrap breaks text into rows no wider than width, preserving the explicit
// line breaks that separate accumulated text runs.
func wrap(face fnt.Face, text string, width float64) []string {
	var rows []string
	for _, paragraph := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		row := words[0]
		for _, word := range words[1:] {
			if font.Measure(face, row+" "+word) > width {
				rows = append(rows, row)
				row = word
				continue
			}
			row += " " + word
		}
		rows = append(rows, row)
	}
	return rows
}

func sizeOf(style Style) float64 {
	if style.FontSize > 0 {
		return style.FontSize
	}
	return DefaultTextSize
}

func weightOf(style Style) string {
	if style.Bold {
		return "bold"
	}
	return "normal"
}

func slantOf(style Style) string {
	if style.Italic {
		return "italic"
	}
	return "normal"
}
