// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// Attr is one attribute parsed from a markup line.
type Attr struct {
	Name  string
	Value string

	// Bool marks a bare attribute such as `disabled`; Value is ignored.
	Bool bool
}

// Element is the parsed form of one markup line.
type Element struct {
	Tag     string
	Classes []string
	ID      string
	Attrs   []Attr

	// Content is the text after the selector, kept verbatim.
	Content string
}

// set stores a, replacing an attribute of the same name in place so the
// first occurrence keeps its position.
func (e *Element) set(a Attr) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == a.Name {
			e.Attrs[i] = a
			return
		}
	}
	e.Attrs = append(e.Attrs, a)
}

// OpenTag renders the opening tag: tag name, class, id, then attributes in
// the order they were first written.
func (e Element) OpenTag() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(e.Tag)
	if len(e.Classes) > 0 {
		writeAttr(&b, "class", strings.Join(e.Classes, " "))
	}
	if e.ID != "" {
		writeAttr(&b, "id", e.ID)
	}
	for _, a := range e.Attrs {
		if a.Bool {
			b.WriteString(" ")
			b.WriteString(a.Name)
			continue
		}
		writeAttr(&b, a.Name, a.Value)
	}
	b.WriteString(">")
	return b.String()
}

// CloseTag renders the closing tag.
func (e Element) CloseTag() string {
	return "</" + e.Tag + ">"
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(strings.ReplaceAll(value, `"`, "&quot;"))
	b.WriteString(`"`)
}

// ParseElement parses a trimmed markup line such as
//
//	h1.title#top[data-role=banner]:hidden Welcome
//
// into an Element. The selector is the text up to the first whitespace
// outside quotes and brackets; everything after that whitespace is content.
// defaultTag is used when the selector does not start with a tag name.
//
// Parsing is lenient: an unterminated quote or bracket runs to the end of
// the selector and stray characters are skipped. ParseElement never fails.
func ParseElement(line, defaultTag string) Element {
	selector, content := splitSelector(strings.TrimSpace(line))
	el := Element{Tag: defaultTag, Content: content}

	p := &selectorParser{src: selector}
	if n := tagPrefix(selector); n > 0 {
		el.Tag = selector[:n]
		p.pos = n
	}
	p.parse(&el)
	return el
}

// splitSelector cuts line at the first whitespace that is not inside a
// quoted value or an open bracket.
func splitSelector(line string) (selector, content string) {
	var quote rune
	var prev rune
	inBracket := false
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case (r == '"' || r == '\'') && prev == '=':
			quote = r
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case unicode.IsSpace(r) && !inBracket:
			return line[:i], line[i+utf8.RuneLen(r):]
		}
		prev = r
	}
	return line, ""
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) parse(el *Element) {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case '.':
			if name := p.until(".#:["); name != "" {
				el.Classes = append(el.Classes, name)
			}
		case '#':
			if name := p.until(".#:["); name != "" {
				el.ID = name
			}
		case ':':
			p.colonAttr(el)
		case '[':
			p.bracketAttr(el)
		}
	}
}

// colonAttr parses `name`, `name=value` or `name="quoted value"` after a
// colon marker. An unquoted value runs to the end of the selector.
func (p *selectorParser) colonAttr(el *Element) {
	name := p.until(".#:[=")
	if name == "" {
		return
	}
	if !p.accept('=') {
		el.set(Attr{Name: name, Bool: true})
		return
	}
	value, ok := p.quoted()
	if !ok {
		value = p.src[p.pos:]
		p.pos = len(p.src)
	}
	el.set(Attr{Name: name, Value: value})
}

// bracketAttr parses `name]`, `name=value]` or `name="quoted value"]`
// after an opening bracket.
func (p *selectorParser) bracketAttr(el *Element) {
	name := p.until("=]")
	if name == "" {
		p.until("]")
		p.accept(']')
		return
	}
	if !p.accept('=') {
		p.accept(']')
		el.set(Attr{Name: name, Bool: true})
		return
	}
	value, ok := p.quoted()
	if ok {
		p.until("]")
	} else {
		value = p.until("]")
	}
	p.accept(']')
	el.set(Attr{Name: name, Value: value})
}

// quoted reads a single- or double-quoted value and strips the quotes. An
// unterminated quote takes the rest of the selector.
func (p *selectorParser) quoted() (string, bool) {
	if p.pos >= len(p.src) {
		return "", false
	}
	q := p.src[p.pos]
	if q != '"' && q != '\'' {
		return "", false
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], q)
	if end < 0 {
		value := p.src[p.pos:]
		p.pos = len(p.src)
		return value, true
	}
	value := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return value, true
}

// until consumes and returns text up to the next byte in stops.
func (p *selectorParser) until(stops string) string {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte(stops, p.src[p.pos]) < 0 {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *selectorParser) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isMarker(c byte) bool {
	return c == '.' || c == '#' || c == ':' || c == '['
}

// isMarkupLine reports whether a trimmed line opens an element. With
// explicitTags, a known HTML element name directly followed by a marker and
// a non-space character also counts (`h1.title`, `input:required`).
func isMarkupLine(s string, explicitTags bool) bool {
	if s == "" {
		return false
	}
	if isMarker(s[0]) {
		return true
	}
	if !explicitTags {
		return false
	}
	n := tagPrefix(s)
	if n == 0 || n+1 >= len(s) || !isMarker(s[n]) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[n+1:])
	if unicode.IsSpace(next) {
		return false
	}
	return atom.Lookup([]byte(strings.ToLower(s[:n]))) != 0
}

// tagPrefix returns the length of the leading [A-Za-z][A-Za-z0-9]* run.
func tagPrefix(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		letter := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
		digit := c >= '0' && c <= '9'
		if !letter && !(digit && n > 0) {
			break
		}
		n++
	}
	return n
}

func isTagName(s string) bool {
	return s != "" && tagPrefix(s) == len(s)
}
