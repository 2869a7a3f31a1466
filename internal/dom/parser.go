package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNotElement is returned when an operation needs an element context node
var ErrNotElement = errors.New("dom: context is not an element node")

// NewElement creates a detached element node with a consistent DataAtom
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), attrs...),
	}
}

// NewFragment creates an empty detached root that can hold parsed nodes
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// ParseFragment parses markup as it would be parsed inside context and
// returns a detached fragment holding the resulting nodes.
func ParseFragment(markup string, context *html.Node) (*html.Node, error) {
	nodes, err := parseNodes(markup, context)
	if err != nil {
		return nil, err
	}

	fragment := NewFragment()
	for _, n := range nodes {
		fragment.AppendChild(n)
	}
	return fragment, nil
}

// parseNodes runs the html5 fragment algorithm with a context element
func parseNodes(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil {
		context = NewElement("div")
	}
	if context.Type != html.ElementNode {
		return nil, ErrNotElement
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}
	return nodes, nil
}

// Elements returns every descendant element of root in document order.
// root itself is not included.
func Elements(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	doc := goquery.NewDocumentFromNode(root)
	return doc.Find("*").Nodes
}

// Find returns the descendant elements of root matching a CSS selector
func Find(root *html.Node, selector string) []*html.Node {
	if root == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes
}
