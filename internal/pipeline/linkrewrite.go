package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteLinks calls rewrite for every img[src] and a[href] value in an
// HTML fragment or document and renders the result.
// Other elements and attributes are left alone.
func RewriteLinks(content string, rewrite func(string) string) (string, error) {
	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, rewrite)

	return renderHTML(doc, isFragment)
}

// IsLocalRef reports whether ref points inside the site: a root-relative
// or relative path. URLs with a scheme, protocol-relative URLs, and
// fragment-only anchors are not local.
func IsLocalRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}

	// A scheme is letters, digits, "+", "-", "." before the first ":",
	// and must come before any "/", "?", or "#".
	if i := strings.IndexAny(ref, ":/?#"); i > 0 && ref[i] == ':' {
		return false
	}
	return true
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only, so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, rewrite func(string) string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", rewrite)
		case atom.A:
			rewriteAttr(n, "href", rewrite)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, rewrite)
	}
}

func rewriteAttr(n *html.Node, key string, rewrite func(string) string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = rewrite(attr.Val)
		}
	}
}
