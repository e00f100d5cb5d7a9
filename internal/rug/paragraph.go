// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rug

import "strings"

// Paragraph joins buffered text lines into one <p> element. Lines keep their
// original whitespace. It returns false when the lines hold no text.
func Paragraph(lines []string) (string, bool) {
	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return "<p>" + text + "</p>", true
}
