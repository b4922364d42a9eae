package docstore

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Source yields raw comment texts for analysis.
type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// DefaultColumns are the header names tried, in order, when no text column is configured.
var DefaultColumns = []string{"text", "comment", "Comment", "body", "Body", "message"}

// StripHTML returns the text content of an HTML fragment such as a YouTube
// textDisplay value.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

func finish(texts []string, stripHTML bool) []string {
	out := texts[:0]
	for _, t := range texts {
		if stripHTML {
			t = StripHTML(t)
		}
		if strings.TrimSpace(t) == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdent(s string) bool {
	return identPattern.MatchString(s)
}
