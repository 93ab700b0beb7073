package css

import (
	"strings"
	"unicode"
)

// Parser is a single-pass cursor over a restricted rule grammar: a selector
// is everything up to '{', a body is prop:value pairs separated by ';'.
// Malformed rules are skipped, never fatal.
type Parser struct {
	style string
	i     int
}

func NewParser(style string) *Parser {
	return &Parser{style: style}
}

// Parse returns the rules in source order. Duplicate selectors are kept;
// last-wins resolution happens when the rule table is built.
func (p *Parser) Parse() []Rule {
	rules := []Rule{}
	for p.i < len(p.style) {
		p.whitespace()
		selector, ok := p.selector()
		if !ok {
			break
		}
		body := p.body()
		if p.i >= len(p.style) || p.style[p.i] != '}' {
			// unterminated rule
			break
		}
		p.i++
		selector = strings.TrimSpace(selector)
		if selector == "" || len(body) == 0 {
			continue
		}
		rules = append(rules, Rule{Selector: selector, Body: body})
	}
	return rules
}

func (p *Parser) whitespace() {
	for p.i < len(p.style) && unicode.IsSpace(rune(p.style[p.i])) {
		p.i++
	}
}

// selector consumes up to the opening brace. Returns false at end of input.
func (p *Parser) selector() (string, bool) {
	start := p.i
	for p.i < len(p.style) && p.style[p.i] != '{' {
		p.i++
	}
	if p.i >= len(p.style) {
		return "", false
	}
	selector := p.style[start:p.i]
	p.i++ // consume '{'
	return selector, true
}

// body consumes declarations until the closing brace.
func (p *Parser) body() map[string]string {
	pairs := make(map[string]string)
	for p.i < len(p.style) && p.style[p.i] != '}' {
		prop, val, ok := p.pair()
		if ok {
			pairs[prop] = val
		}
		if p.i < len(p.style) && p.style[p.i] == ';' {
			p.i++
		}
	}
	return pairs
}

// pair reads one prop:value declaration, stopping at ';' or '}'. A missing
// colon or empty half makes the declaration malformed and it is dropped.
func (p *Parser) pair() (string, string, bool) {
	start := p.i
	for p.i < len(p.style) && p.style[p.i] != ';' && p.style[p.i] != '}' {
		p.i++
	}
	decl := p.style[start:p.i]
	colon := strings.Index(decl, ":")
	if colon == -1 {
		return "", "", false
	}
	prop := strings.ToLower(strings.TrimSpace(decl[:colon]))
	val := strings.TrimSpace(decl[colon+1:])
	if prop == "" || val == "" {
		return "", "", false
	}
	return prop, val, true
}
