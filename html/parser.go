package html

import (
	"slices"
	"strings"
)

var VOID_TAGS = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr"}

// Parser converts raw markup into a Node tree. Malformed input never
// escalates: unmatched end tags are ignored and stray text attaches to the
// nearest open element.
type Parser struct {
	body       string
	root       *Node
	unfinished []*Node
	nextIndex  int
}

func NewParser(body string) *Parser {
	return &Parser{
		body:       body,
		root:       &Node{Attributes: map[string]string{}},
		unfinished: []*Node{},
	}
}

// Parse runs the token scan and returns the tree root. The root has no tag
// and no parent.
func Parse(body string) *Node {
	return NewParser(body).Parse()
}

func (p *Parser) Parse() *Node {
	buffer := strings.Builder{}
	inTag := false
	for _, char := range p.body {
		if char == '<' {
			inTag = true
			if buffer.Len() > 0 {
				p.addText(buffer.String())
				buffer.Reset()
			}
		} else if char == '>' {
			inTag = false
			p.addTag(buffer.String())
			buffer.Reset()
		} else {
			buffer.WriteRune(char)
		}
	}
	if !inTag && buffer.Len() > 0 {
		p.addText(buffer.String())
	}
	p.unfinished = p.unfinished[:0]
	return p.root
}

// top returns the innermost open element, or the root if none is open.
func (p *Parser) top() *Node {
	if len(p.unfinished) == 0 {
		return p.root
	}
	return p.unfinished[len(p.unfinished)-1]
}

func (p *Parser) addText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(p.unfinished) > 0 {
		p.top().Text += text + "\n"
		return
	}
	node := NewText(text, nil)
	node.Index = p.nextIndex
	p.nextIndex++
	p.root.Children = append(p.root.Children, node)
}

func (p *Parser) addTag(tag string) {
	tag, attributes := p.getAttributes(tag)
	if tag == "" || strings.HasPrefix(tag, "!") {
		return
	}

	if strings.HasPrefix(tag, "/") {
		p.closeTag(tag[1:])
		return
	}

	parent := p.top()
	node := NewElement(tag, attributes, parent)
	if parent == p.root {
		node.Parent = nil
	}
	node.Index = p.nextIndex
	p.nextIndex++
	parent.Children = append(parent.Children, node)
	if !slices.Contains(VOID_TAGS, tag) {
		p.unfinished = append(p.unfinished, node)
	}
}

// closeTag pops open elements through the innermost one matching tag. A tag
// with no open match is ignored outright; descendants of the match opened
// after it are implicitly closed.
func (p *Parser) closeTag(tag string) {
	for i := len(p.unfinished) - 1; i >= 0; i-- {
		if p.unfinished[i].Tag == tag {
			p.unfinished = p.unfinished[:i]
			return
		}
	}
}

func isWhitespace(char byte) bool {
	switch char {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func (p *Parser) getAttributes(text string) (string, map[string]string) {
	attributes := make(map[string]string)

	text = strings.TrimSpace(text)
	split := strings.Fields(text)
	if len(split) == 0 {
		return "", attributes
	}

	tag := strings.ToLower(split[0])
	if tag != "/" {
		tag = strings.TrimSuffix(tag, "/")
	}
	if len(split) == 1 {
		return tag, attributes
	}

	attrStr := strings.TrimSpace(text[len(split[0]):])
	start, cur := 0, 0
	for {
		for start < len(attrStr) && isWhitespace(attrStr[start]) {
			start++
		}
		cur = start
		for cur < len(attrStr) && attrStr[cur] != '=' && !isWhitespace(attrStr[cur]) {
			cur++
		}
		if start == cur {
			break
		}
		key := strings.ToLower(attrStr[start:cur])
		if cur >= len(attrStr) || attrStr[cur] != '=' {
			if key != "" && key != "/" {
				attributes[key] = ""
			}
			start = cur
			continue
		}
		cur++ // skip =
		if cur < len(attrStr) && (attrStr[cur] == '\'' || attrStr[cur] == '"') {
			quot := attrStr[cur]
			cur++
			valStart := cur
			for cur < len(attrStr) && attrStr[cur] != quot {
				cur++
			}
			attributes[key] = attrStr[valStart:cur]
			cur++ // skip closing quote
		} else {
			valStart := cur
			for cur < len(attrStr) && !isWhitespace(attrStr[cur]) {
				cur++
			}
			attributes[key] = strings.TrimSuffix(attrStr[valStart:cur], "/")
		}
		start = cur
	}
	return tag, attributes
}
