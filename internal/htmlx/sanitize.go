package htmlx

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "main", "figure", "figcaption")
	p.AllowAttrs("lang", "dir").Globally()
	return p
}

// Sanitize drops scripts, event handlers and anything else not safe to
// open in a browser from entry content.
func Sanitize(content string) string {
	return policy.Sanitize(content)
}

// Document wraps sanitized content into a standalone HTML page.
func Document(title, content string) string {
	var sb strings.Builder
	t := html.EscapeString(title)
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(t)
	sb.WriteString("</title>\n</head>\n<body>\n<h1>")
	sb.WriteString(t)
	sb.WriteString("</h1>\n")
	sb.WriteString(Sanitize(content))
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}
