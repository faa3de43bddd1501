// Package view turns backend payloads into the view-models the webview paints.
// Nothing here touches the runtime, so every transform is testable on its own.
package view

import (
	"html"
	"regexp"
	"strings"
)

var (
	numberedMarker = regexp.MustCompile(`(\d+)\.\s`)
	boldSpan       = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// FormatText converts answer text into markup. The input is escaped first; then,
// in order: newlines become <br>, every "N. " marker moves onto its own line in
// bold, and **text** spans become bold. Later rules never see "**" or digits
// followed by ". " in markup produced by earlier ones.
func FormatText(text string) string {
	if text == "" {
		return ""
	}
	out := html.EscapeString(text)
	out = strings.ReplaceAll(out, "\n", "<br>")
	out = numberedMarker.ReplaceAllString(out, "<br><strong>$1.</strong> ")
	out = boldSpan.ReplaceAllString(out, "<strong>$1</strong>")
	return out
}
