package dom

import "golang.org/x/net/html"

// IsEqualNode reports whether a and b are structurally equal: same node
// type, tag and namespace, same attribute set (order ignored), same
// character data and pairwise equal children.
func IsEqualNode(a, b *html.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}

	switch a.Type {
	case html.ElementNode:
		if a.Data != b.Data || a.Namespace != b.Namespace {
			return false
		}
		if !sameAttributes(a.Attr, b.Attr) {
			return false
		}
	case html.TextNode, html.CommentNode, html.DoctypeNode:
		if a.Data != b.Data {
			return false
		}
		if a.Type == html.DoctypeNode && !sameAttributes(a.Attr, b.Attr) {
			return false
		}
	}

	ca, cb := a.FirstChild, b.FirstChild
	for ca != nil && cb != nil {
		if !IsEqualNode(ca, cb) {
			return false
		}
		ca, cb = ca.NextSibling, cb.NextSibling
	}
	return ca == nil && cb == nil
}

func sameAttributes(a, b []html.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for _, attr := range a {
		found := false
		for _, other := range b {
			if attr.Namespace == other.Namespace && attr.Key == other.Key {
				found = attr.Val == other.Val
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
