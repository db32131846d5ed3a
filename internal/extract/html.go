package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlTagRe = regexp.MustCompile(`(?i)<(p|div|ul|ol|li|h[1-6]|br|html|body|article|section)\b`)

// looksLikeHTML reports whether the analysis text was pasted as HTML rather
// than markdown/plain text
func looksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// flattenHTML converts HTML analysis text into the markdown-ish plain form
// the section scanner expects: headings become "# " lines, list items become
// "- " bullets, anchors become [text](href) links, bold runs keep their
// markers. Scripts, styles, and frames are dropped. On a parse failure the
// input is returned unchanged.
func flattenHTML(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				buf.WriteString("\n# ")
				buf.WriteString(textContent(n))
				buf.WriteString("\n")
				return
			case "li":
				buf.WriteString("\n- ")
			case "a":
				href := attrValue(n, "href")
				text := textContent(n)
				if href != "" && strings.HasPrefix(href, "http") {
					buf.WriteString("[" + text + "](" + href + ")")
					return
				}
			case "strong", "b":
				text := textContent(n)
				if text != "" {
					buf.WriteString("**" + text + "**")
				}
				return
			case "p", "div", "br", "ul", "ol", "article", "section", "tr":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}

// textContent collects the trimmed text beneath a node
func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}
