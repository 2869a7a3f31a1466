package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Clear removes every child of n
func Clear(n *html.Node) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// InsertAdjacentHTML parses markup in the context of n and inserts the
// resulting nodes at position. Supported positions are "afterbegin" and
// "beforeend" (case insensitive).
func InsertAdjacentHTML(n *html.Node, position, markup string) error {
	nodes, err := parseNodes(markup, n)
	if err != nil {
		return err
	}

	switch strings.ToLower(position) {
	case "afterbegin":
		ref := n.FirstChild
		for _, c := range nodes {
			if ref == nil {
				n.AppendChild(c)
			} else {
				n.InsertBefore(c, ref)
			}
		}
	case "beforeend":
		for _, c := range nodes {
			n.AppendChild(c)
		}
	default:
		return fmt.Errorf("unsupported insert position %q", position)
	}
	return nil
}

// TextContent returns the concatenated text of all descendant text nodes
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return n.Data
	}

	var text strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return text.String()
}

// SetTextContent replaces all children of n with a single text node.
// An empty string leaves n without children.
func SetTextContent(n *html.Node, text string) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode || n.Type == html.CommentNode {
		n.Data = text
		return
	}

	Clear(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// FirstChildText returns the value of n's first child when that child
// carries character data (text or comment). Elements have no node value.
func FirstChildText(n *html.Node) (string, bool) {
	if n == nil || n.FirstChild == nil {
		return "", false
	}
	switch n.FirstChild.Type {
	case html.TextNode, html.CommentNode:
		return n.FirstChild.Data, true
	}
	return "", false
}

// GetAttribute returns the value of a non-namespaced attribute
func GetAttribute(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets attr on n, overwriting an attribute with the same
// namespace and key. It reports whether n changed.
func SetAttribute(n *html.Node, attr html.Attribute) bool {
	if n == nil {
		return false
	}
	for i, a := range n.Attr {
		if a.Namespace == attr.Namespace && a.Key == attr.Key {
			if a.Val == attr.Val {
				return false
			}
			n.Attr[i].Val = attr.Val
			return true
		}
	}
	n.Attr = append(n.Attr, attr)
	return true
}

// Clone returns a detached deep copy of n
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	copied := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		copied.AppendChild(Clone(c))
	}
	return copied
}

// HasOnlyText reports whether n's children are exactly what
// SetTextContent(n, text) would leave behind.
func HasOnlyText(n *html.Node, text string) bool {
	if n == nil {
		return false
	}
	if text == "" {
		return n.FirstChild == nil
	}
	c := n.FirstChild
	return c != nil && c.NextSibling == nil && c.Type == html.TextNode && c.Data == text
}
