// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseElement(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantOpen    string
		wantClose   string
		wantContent string
	}{
		{
			name:      "classes id and bracket attributes",
			line:      ".card#main[data-role=button][disabled]",
			wantOpen:  `<div class="card" id="main" data-role="button" disabled>`,
			wantClose: "</div>",
		},
		{
			name:        "classes with inline content",
			line:        ".container.mx-4 Hello world",
			wantOpen:    `<div class="container mx-4">`,
			wantClose:   "</div>",
			wantContent: "Hello world",
		},
		{
			name:      "single quoted value with double quotes inside",
			line:      `:title='Say "hello"'`,
			wantOpen:  `<div title="Say &quot;hello&quot;">`,
			wantClose: "</div>",
		},
		{
			name:      "single quotes inside double quoted value stay unescaped",
			line:      `.card:data-content="It's a 'quoted' string":title='Say "hello"'`,
			wantOpen:  `<div class="card" data-content="It's a 'quoted' string" title="Say &quot;hello&quot;">`,
			wantClose: "</div>",
		},
		{
			name:      "boolean and valued colon attributes keep order",
			line:      `.input:type="email":required:placeholder="Enter email":readonly`,
			wantOpen:  `<div class="input" type="email" required placeholder="Enter email" readonly>`,
			wantClose: "</div>",
		},
		{
			name:        "attribute only element",
			line:        `:role="button":aria-label="Click me" Click`,
			wantOpen:    `<div role="button" aria-label="Click me">`,
			wantClose:   "</div>",
			wantContent: "Click",
		},
		{
			name:      "quoted bracket values may contain spaces",
			line:      `.card#main[data-role="button with spaces"][class="external-class"]`,
			wantOpen:  `<div class="card" id="main" data-role="button with spaces" class="external-class">`,
			wantClose: "</div>",
		},
		{
			name:      "mixed bracket and colon markers",
			line:      `.btn[type=submit]:disabled[data-x='1']`,
			wantOpen:  `<div class="btn" type="submit" disabled data-x="1">`,
			wantClose: "</div>",
		},
		{
			name:      "unquoted colon value runs to end of selector",
			line:      ":type=text:required",
			wantOpen:  `<div type="text:required">`,
			wantClose: "</div>",
		},
		{
			name:      "duplicate attribute keeps first position",
			line:      "[a=1][b=2][a=3]",
			wantOpen:  `<div a="3" b="2">`,
			wantClose: "</div>",
		},
		{
			name:      "last id wins",
			line:      "#first.x#second",
			wantOpen:  `<div class="x" id="second">`,
			wantClose: "</div>",
		},
		{
			name:      "empty value is not boolean",
			line:      "[alt=]",
			wantOpen:  `<div alt="">`,
			wantClose: "</div>",
		},
		{
			name:        "explicit tag name",
			line:        `input#email:type="email" Email`,
			wantOpen:    `<input id="email" type="email">`,
			wantClose:   "</input>",
			wantContent: "Email",
		},
		{
			name:        "content after first whitespace is verbatim",
			line:        ".a  two  spaces",
			wantOpen:    `<div class="a">`,
			wantClose:   "</div>",
			wantContent: " two  spaces",
		},
		{
			name:      "unterminated quote takes the rest of the line",
			line:      `:title="oops and more`,
			wantOpen:  `<div title="oops and more">`,
			wantClose: "</div>",
		},
		{
			name:      "unterminated bracket takes the rest of the line",
			line:      ".a[data-x=1 rest",
			wantOpen:  `<div class="a" data-x="1 rest">`,
			wantClose: "</div>",
		},
		{
			name:      "empty markers are skipped",
			line:      ".#:[]",
			wantOpen:  "<div>",
			wantClose: "</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := ParseElement(tt.line, DefaultTag)
			assert.Equal(t, tt.wantOpen, el.OpenTag())
			assert.Equal(t, tt.wantClose, el.CloseTag())
			assert.Equal(t, tt.wantContent, el.Content)
		})
	}
}

func TestParseElement_DefaultTag(t *testing.T) {
	el := ParseElement(".label:for=email Email Address", "span")
	assert.Equal(t, `<span class="label" for="email">`, el.OpenTag())
	assert.Equal(t, "</span>", el.CloseTag())
	assert.Equal(t, "Email Address", el.Content)
}

func TestIsMarkupLine(t *testing.T) {
	tests := []struct {
		line         string
		explicitTags bool
		want         bool
	}{
		{".card", false, true},
		{"#main", false, true},
		{":disabled", false, true},
		{"[hidden]", false, true},
		{"plain text", false, false},
		{"h1.title Main", false, false},
		{"h1.title Main", true, true},
		{"input:required", true, true},
		{"Note: read this", true, false},
		{"foo.bar baz", true, false},
		{"div", true, false},
		{"", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isMarkupLine(tt.line, tt.explicitTags))
		})
	}
}
