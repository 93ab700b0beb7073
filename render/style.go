package render

import (
	"maps"
	"strconv"
	"strings"

	"sentinel/color"
	"sentinel/css"
	"sentinel/html"
	"sentinel/view"
)

// styleFor resolves the style for one node: tag rules first, then class
// rules, then the id rule, later layers overriding earlier ones per property.
func (s *run) styleFor(node *html.Node) view.Style {
	decls := css.Declarations{}
	merge := func(selector string) {
		if d := s.rules.Lookup(selector); d != nil {
			maps.Copy(decls, d)
		}
	}
	merge(node.Tag)
	for _, class := range node.Classes() {
		merge("." + class)
	}
	if id := node.Attr("id"); id != "" {
		merge("#" + id)
	}

	var style view.Style
	if c, ok := color.Parse(decls["color"]); ok {
		style.Color = c
	}
	background := decls["background-color"]
	if background == "" {
		background = firstToken(decls["background"])
	}
	if c, ok := color.Parse(background); ok {
		style.Background = c
	}
	if size := parseSize(decls["font-size"]); size > 0 {
		style.FontSize = size
	}
	style.Bold = isBold(decls["font-weight"])
	if fs := decls["font-style"]; fs == "italic" || fs == "oblique" {
		style.Italic = true
	}
	if align := decls["text-align"]; align == "left" || align == "center" || align == "right" {
		style.Align = align
	}
	return style
}

// parseSize understands px and pt lengths; anything else is unsupported.
func parseSize(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	scale := 1.0
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "pt"):
		value = strings.TrimSuffix(value, "pt")
		scale = 96.0 / 72.0
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || size <= 0 {
		return 0
	}
	return size * scale
}

func isBold(weight string) bool {
	if weight == "bold" || weight == "bolder" {
		return true
	}
	if n, err := strconv.Atoi(weight); err == nil && n >= 600 {
		return true
	}
	return false
}

func firstToken(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
