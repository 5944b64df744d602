package label

import "github.com/matzehuels/totelabel/pkg/inventory"

// SectionKind discriminates the logical pieces of one label.
type SectionKind int

const (
	// SectionHeader carries the tote identifier, title and location.
	SectionHeader SectionKind = iota
	// SectionCode reserves the scannable-code area. Present only when the
	// root tote has a code payload; the image itself comes from an
	// external provider and may still be absent at draw time.
	SectionCode
	// SectionSubtotes is the bulleted summary of direct children.
	SectionSubtotes
	// SectionItems holds one node's item list — the root's own items or a
	// direct child's.
	SectionItems
)

// Section is an ephemeral rendering unit: it references forest nodes but
// owns nothing and does not outlive one Compose call.
type Section struct {
	Kind SectionKind

	// Tote is the node this section belongs to. For SectionItems it is
	// the node whose items render; for everything else it is the root.
	Tote *inventory.Tote

	// Child marks an item section belonging to a direct child, which is
	// rendered under its own sub-header.
	Child bool
}

// Compose produces the ordered section sequence for one root tote:
// header, code (iff a payload exists), sub-tote summary (iff children
// exist), then item content for the root followed by each direct child in
// child order. Children are expanded one level deep only — a grandchild's
// items belong to that child's own label, not this one.
//
// Section and item order are fully determined by input order; nothing is
// sorted.
func Compose(f *inventory.Forest, root *inventory.Tote) []Section {
	sections := []Section{{Kind: SectionHeader, Tote: root}}

	if root.QRData != "" {
		sections = append(sections, Section{Kind: SectionCode, Tote: root})
	}
	if len(root.Children) > 0 {
		sections = append(sections, Section{Kind: SectionSubtotes, Tote: root})
	}

	sections = append(sections, Section{Kind: SectionItems, Tote: root})
	for _, childID := range root.Children {
		child, ok := f.Get(childID)
		if !ok {
			continue
		}
		sections = append(sections, Section{Kind: SectionItems, Tote: child, Child: true})
	}
	return sections
}
