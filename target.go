package htmlview

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/livefir/htmlview/internal/dom"
)

// ErrNoTarget is returned when a view is created without a container
var ErrNoTarget = errors.New("view has no render target")

// Target is the container element a View renders into. A Target is owned
// by exactly one View for the View's whole lifetime.
type Target struct {
	node *html.Node
}

// NewTarget creates an empty detached container element
func NewTarget(tag string, attrs ...html.Attribute) *Target {
	return &Target{node: dom.NewElement(tag, attrs...)}
}

// TargetFromNode wraps an existing element, typically one that lives inside
// a larger parsed document
func TargetFromNode(n *html.Node) (*Target, error) {
	if n == nil {
		return nil, ErrNoTarget
	}
	if n.Type != html.ElementNode {
		return nil, dom.ErrNotElement
	}
	return &Target{node: n}, nil
}

// TargetFromHTML creates a container whose children are parsed from markup
func TargetFromHTML(tag, markup string) (*Target, error) {
	t := NewTarget(tag)
	if err := dom.InsertAdjacentHTML(t.node, "afterbegin", markup); err != nil {
		return nil, err
	}
	return t, nil
}

// Node returns the underlying element
func (t *Target) Node() *html.Node {
	return t.node
}

// InnerHTML serializes the container's children
func (t *Target) InnerHTML() string {
	return dom.InnerHTML(t.node)
}

// OuterHTML serializes the container itself
func (t *Target) OuterHTML() string {
	return dom.OuterHTML(t.node)
}

// Elements returns every descendant element in document order
func (t *Target) Elements() []*html.Node {
	return dom.Elements(t.node)
}

// Find returns the descendant elements matching a CSS selector
func (t *Target) Find(selector string) []*html.Node {
	return dom.Find(t.node, selector)
}

func (t *Target) clear() {
	dom.Clear(t.node)
}

func (t *Target) insert(markup string) error {
	return dom.InsertAdjacentHTML(t.node, "afterbegin", markup)
}
