// Package htmlutil holds small helpers for working with parsed HTML nodes.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// Normalize collapses runs of whitespace, strips non-printable runes and
// trims the result, approximating the text a browser would render.
func Normalize(s string) string {
	var printable strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' || c == '\t' {
			printable.WriteRune(c)
		}
	}
	out := strings.TrimSpace(printable.String())
	return innerWhitespace.ReplaceAllString(out, " ")
}

// RenderedText is GetText followed by Normalize.
func RenderedText(node *html.Node) string {
	return Normalize(GetText(node))
}
