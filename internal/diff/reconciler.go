package diff

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/livefir/htmlview/internal/dom"
)

// Reconciler patches a live element tree in place so that it matches a
// detached tree built from fresh markup. Elements correspond purely by
// position in the flattened document-order element lists; nodes are never
// inserted, removed or moved.
type Reconciler struct {
	summary Summary
}

// NewReconciler creates a new reconciler
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile is a convenience wrapper around a one-shot Reconciler
func Reconcile(liveRoot, incomingRoot *html.Node) []Patch {
	return NewReconciler().Reconcile(liveRoot, incomingRoot)
}

// Plan reports the patches Reconcile would apply, and the resulting
// summary, without touching liveRoot
func Plan(liveRoot, incomingRoot *html.Node) ([]Patch, Summary) {
	r := NewReconciler()
	patches := r.Reconcile(dom.Clone(liveRoot), incomingRoot)
	return patches, r.Summary()
}

// Summary returns the counters of the last Reconcile call
func (r *Reconciler) Summary() Summary {
	return r.summary
}

// Reconcile walks the descendants of liveRoot and incomingRoot in lockstep
// and applies text and attribute changes to the live nodes. It returns the
// patches that changed the live tree.
//
// Attributes present only on the live node are kept.
func (r *Reconciler) Reconcile(liveRoot, incomingRoot *html.Node) []Patch {
	r.summary = Summary{}
	if liveRoot == nil || incomingRoot == nil {
		return nil
	}

	// Both snapshots are taken before any mutation so that replacing the
	// text of an ancestor does not shift later positions.
	currentNodes := dom.Elements(liveRoot)
	incomingNodes := dom.Elements(incomingRoot)

	n := min(len(currentNodes), len(incomingNodes))
	r.summary.LiveNodes = len(currentNodes)
	r.summary.IncomingNodes = len(incomingNodes)
	r.summary.Visited = n
	r.summary.Skipped = max(len(currentNodes), len(incomingNodes)) - n

	var patches []Patch
	for i := 0; i < n; i++ {
		cur, next := currentNodes[i], incomingNodes[i]

		if !dom.IsEqualNode(cur, next) {
			if value, ok := dom.FirstChildText(next); ok && strings.TrimSpace(value) != "" {
				text := dom.TextContent(next)
				unchanged := dom.HasOnlyText(cur, text)
				dom.SetTextContent(cur, text)
				if !unchanged {
					patches = append(patches, Patch{Op: PatchSetText, Index: i, Tag: cur.Data, Value: text})
				}
			}
		}

		// Equality is checked again: the text rule may already have made
		// the nodes equal.
		if !dom.IsEqualNode(cur, next) {
			for _, attr := range next.Attr {
				if dom.SetAttribute(cur, attr) {
					patches = append(patches, Patch{Op: PatchSetAttr, Index: i, Tag: cur.Data, Key: attrName(attr), Value: attr.Val})
				}
			}
		}
	}

	r.summary.TextPatches, r.summary.AttrPatches = Summarize(patches)
	return patches
}

func attrName(a html.Attribute) string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}
