package diff

import "fmt"

// PatchOp is the kind of mutation applied to a live element
type PatchOp uint8

const (
	PatchSetText PatchOp = 0x01 // textContent overwritten
	PatchSetAttr PatchOp = 0x02 // attribute added or overwritten
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	default:
		return "Unknown"
	}
}

// Patch records a single mutation applied to the live tree
type Patch struct {
	Op    PatchOp `json:"op"`
	Index int     `json:"index"` // position in the flattened element list
	Tag   string  `json:"tag"`   // tag of the live element
	Key   string  `json:"key,omitempty"`
	Value string  `json:"value"`
}

func (p Patch) String() string {
	if p.Op == PatchSetAttr {
		return fmt.Sprintf("%s #%d <%s> %s=%q", p.Op, p.Index, p.Tag, p.Key, p.Value)
	}
	return fmt.Sprintf("%s #%d <%s> %q", p.Op, p.Index, p.Tag, p.Value)
}

// Summary aggregates the outcome of one reconciliation
type Summary struct {
	LiveNodes     int `json:"live_nodes"`
	IncomingNodes int `json:"incoming_nodes"`
	Visited       int `json:"visited"`
	Skipped       int `json:"skipped"` // nodes past the shorter list, never touched
	TextPatches   int `json:"text_patches"`
	AttrPatches   int `json:"attr_patches"`
}

// Mismatched reports whether the two trees had different element counts
func (s Summary) Mismatched() bool {
	return s.LiveNodes != s.IncomingNodes
}

// Summarize counts patches by op
func Summarize(patches []Patch) (text, attr int) {
	for _, p := range patches {
		switch p.Op {
		case PatchSetText:
			text++
		case PatchSetAttr:
			attr++
		}
	}
	return text, attr
}
