// Package htmlx renders the HTML body of an entry as plain terminal text.
package htmlx

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements whose content is never shown.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"iframe": true, "svg": true, "template": true,
	"head": true,
}

// Elements that start on a line of their own.
var blockTags = map[string]bool{
	"div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "nav": true, "aside": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "pre": true, "figure": true, "figcaption": true,
	"hr": true,
}

// Elements followed by an empty line.
var paragraphTags = map[string]bool{
	"p": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// ToText strips markup from content. Whitespace inside a line is collapsed,
// blocks start on new lines and paragraphs are separated by one empty line.
// Input that cannot be parsed is returned unchanged.
func ToText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var sb strings.Builder
	newline := func() {
		s := sb.String()
		if len(s) > 0 && s[len(s)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			writeText(&sb, n.Data)
			return
		case html.ElementNode:
			if skipTags[n.Data] {
				return
			}
			if n.Data == "br" {
				sb.WriteByte('\n')
				return
			}
		}

		block := n.Type == html.ElementNode && (blockTags[n.Data] || paragraphTags[n.Data])
		if block {
			newline()
			if n.Data == "li" {
				sb.WriteString("- ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			newline()
			if paragraphTags[n.Data] {
				sb.WriteByte('\n')
			}
		}
	}
	walk(doc)

	return tidy(sb.String())
}

// writeText appends s with inner whitespace collapsed, keeping a single
// space where s begins or ends with whitespace.
func writeText(sb *strings.Builder, s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" {
			sb.WriteByte(' ')
		}
		return
	}
	if isSpace(s[0]) {
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.Join(words, " "))
	if isSpace(s[len(s)-1]) {
		sb.WriteByte(' ')
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// tidy trims every line, keeps at most one empty line in a row and drops
// leading and trailing empty lines.
func tidy(s string) string {
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
