// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rug converts rug markup into HTML.
//
// Rug is plain prose with element shorthand: a line starting with `.class`,
// `#id`, `:attr` or `[attr]` opens a block element, and leading whitespace
// decides how blocks nest. Lines containing `<` pass through as raw HTML and
// runs of plain text become paragraphs. Convert processes a whole document in
// one pass and returns the complete HTML string.
package rug

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultTag is the element used when a markup line names no tag.
	DefaultTag = "div"

	wrapperOpen  = `<div style="white-space: pre-wrap">`
	wrapperClose = `</div>`
)

var (
	// ErrInvalidOption is returned when Options carries a value Convert
	// cannot use.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnsupportedInput is returned for input that is not UTF-8 text.
	ErrUnsupportedInput = errors.New("unsupported input")
)

// Options configures a conversion. The zero value selects the defaults:
// `div` elements and no tag-name line prefixes.
type Options struct {
	// DefaultTag replaces "div" as the element for lines without a
	// leading tag name (e.g. "span").
	DefaultTag string `json:"default_tag" yaml:"default_tag"`

	// ExplicitTags makes lines such as `h1.title Hello` markup lines when
	// the leading word is a known HTML element name directly followed by a
	// shorthand marker.
	ExplicitTags bool `json:"explicit_tags" yaml:"explicit_tags"`
}

func (o Options) tag() string {
	if o.DefaultTag == "" {
		return DefaultTag
	}
	return o.DefaultTag
}

// Validate reports whether the options can be used for a conversion.
func (o Options) Validate() error {
	if o.DefaultTag != "" && !isTagName(o.DefaultTag) {
		return fmt.Errorf("%w: default tag %q is not a tag name", ErrInvalidOption, o.DefaultTag)
	}
	return nil
}

// Convert turns rug markup into HTML. The result is wrapped in a single
// whitespace-preserving container. Every call owns its own state, so Convert
// may be called from several goroutines at once.
func Convert(input string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if !utf8.ValidString(input) || strings.IndexByte(input, 0) >= 0 {
		return "", fmt.Errorf("%w: input is not UTF-8 text", ErrUnsupportedInput)
	}

	input = strings.ReplaceAll(input, "\r\n", "\n")
	s := &scanner{opts: opts}
	for _, raw := range strings.Split(input, "\n") {
		s.scan(newLine(raw))
	}
	return s.finish(), nil
}

// line is one input line with its derived indentation.
type line struct {
	raw     string
	trimmed string
	indent  int // leading whitespace characters
}

func newLine(raw string) line {
	indent := 0
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			break
		}
		indent++
	}
	return line{raw: raw, trimmed: strings.TrimSpace(raw), indent: indent}
}

// frame is an open element waiting for its close tag.
type frame struct {
	indent   int
	closeTag string
}

// scanner holds the state of one conversion.
type scanner struct {
	opts   Options
	out    []string
	para   []string
	frames []frame
}

func (s *scanner) scan(l line) {
	switch {
	case l.trimmed == "":
		s.flush()
		s.out = append(s.out, "")

	case isMarkupLine(l.trimmed, s.opts.ExplicitTags):
		s.flush()
		s.closeFrom(l.indent)
		el := ParseElement(l.trimmed, s.opts.tag())
		s.out = append(s.out, el.OpenTag()+el.Content)
		s.frames = append(s.frames, frame{indent: l.indent, closeTag: el.CloseTag()})

	case len(s.frames) > 0 && l.indent > s.top().indent:
		s.flush()
		s.out = append(s.out, stripIndent(l.raw, s.top().indent))

	case strings.Contains(l.trimmed, "<"):
		s.flush()
		s.out = append(s.out, l.raw)

	default:
		s.para = append(s.para, l.raw)
	}
}

func (s *scanner) top() frame {
	return s.frames[len(s.frames)-1]
}

// closeFrom pops every frame opened at indent or deeper.
func (s *scanner) closeFrom(indent int) {
	for len(s.frames) > 0 && s.top().indent >= indent {
		s.out = append(s.out, s.top().closeTag)
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *scanner) flush() {
	if p, ok := Paragraph(s.para); ok {
		s.out = append(s.out, p)
	}
	s.para = s.para[:0]
}

func (s *scanner) finish() string {
	s.flush()
	s.closeFrom(0)
	return wrapperOpen + "\n" + strings.Join(s.out, "\n") + "\n" + wrapperClose
}

// stripIndent removes up to n leading whitespace characters from raw.
func stripIndent(raw string, n int) string {
	for i, r := range raw {
		if n == 0 || !unicode.IsSpace(r) {
			return raw[i:]
		}
		n--
	}
	return ""
}
