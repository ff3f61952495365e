package view

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags drops every tag and comment from s and trims the result.
// Entities in text are decoded.
func StripTags(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way keep what was read
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
