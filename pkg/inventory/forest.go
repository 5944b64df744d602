package inventory

import (
	"io"

	"github.com/charmbracelet/log"
)

// Item is one line of content inside a tote. Items are immutable and owned
// exclusively by their tote.
type Item struct {
	Quantity    int
	Title       string
	Description string
	ImageURL    string
}

// Tote is one physical tote. Children holds identifiers, not pointers;
// they are resolved through the owning Forest so the structure stays an
// arena keyed by identifier with no cross-links to chase.
type Tote struct {
	ID       string
	Title    string
	Location string
	QRData   string
	ParentID string
	Items    []Item
	Children []string
}

// Forest owns every tote of a run, keyed by identifier, and remembers
// first-seen order. Nodes are read-only after Build returns.
type Forest struct {
	totes map[string]*Tote
	order []string
}

// Build groups normalized records into a forest.
//
// Attributes accumulate first-non-empty-wins: later rows for the same tote
// never overwrite a title, location, QR payload or parent that an earlier
// row already provided. Empty-tote declarations merge into their real node
// when one exists and otherwise produce an item-less node. Parent links
// that point at unknown totes, or that would close a cycle, are dropped
// and the child becomes a root.
func Build(records []Record, logger *log.Logger) *Forest {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	f := &Forest{totes: make(map[string]*Tote)}

	// Pass 1: one node per distinct identifier, attributes first-wins.
	for _, rec := range records {
		t := f.getOrCreate(rec.ToteID)
		if t.Title == "" {
			t.Title = rec.Title
		}
		if t.Location == "" {
			t.Location = rec.Location
		}
		if t.QRData == "" {
			t.QRData = rec.QRData
		}
		if t.ParentID == "" {
			t.ParentID = rec.ParentID
		}
	}

	// Pass 2: items in original row order. Rows with neither title nor
	// description carry tote attributes only.
	for _, rec := range records {
		if rec.Kind != RecordItem {
			continue
		}
		if rec.ItemTitle == "" && rec.ItemDescription == "" {
			continue
		}
		t := f.totes[rec.ToteID]
		t.Items = append(t.Items, Item{
			Quantity:    rec.Quantity,
			Title:       rec.ItemTitle,
			Description: rec.ItemDescription,
			ImageURL:    rec.ImageURL,
		})
	}

	f.resolveParents(logger)

	// Child lists in first-seen order of the children.
	for _, id := range f.order {
		t := f.totes[id]
		if t.ParentID == "" {
			continue
		}
		parent := f.totes[t.ParentID]
		parent.Children = append(parent.Children, t.ID)
	}

	return f
}

// resolveParents clears parent links that cannot be honored: unknown
// parents and links that would make a node its own ancestor. Walks are
// bounded by a visited set, so a malformed export can never loop the
// builder.
func (f *Forest) resolveParents(logger *log.Logger) {
	for _, id := range f.order {
		t := f.totes[id]
		if t.ParentID == "" {
			continue
		}
		parent, ok := f.totes[t.ParentID]
		if !ok {
			logger.Debug("parent tote not in export, treating as root", "tote", t.ID, "parent", t.ParentID)
			t.ParentID = ""
			continue
		}

		visited := map[string]bool{t.ID: true}
		for cur := parent; cur != nil; {
			if visited[cur.ID] {
				logger.Warn("parent link would create a cycle, treating as root", "tote", t.ID, "parent", t.ParentID)
				t.ParentID = ""
				break
			}
			visited[cur.ID] = true
			next, ok := f.totes[cur.ParentID]
			if !ok {
				break
			}
			cur = next
		}
	}
}

func (f *Forest) getOrCreate(id string) *Tote {
	if t, ok := f.totes[id]; ok {
		return t
	}
	t := &Tote{ID: id}
	f.totes[id] = t
	f.order = append(f.order, id)
	return t
}

// Get returns the tote with the given identifier.
func (f *Forest) Get(id string) (*Tote, bool) {
	t, ok := f.totes[id]
	return t, ok
}

// Len returns the number of totes in the forest.
func (f *Forest) Len() int {
	return len(f.totes)
}

// Roots returns totes with no valid parent, in first-seen order.
func (f *Forest) Roots() []*Tote {
	var roots []*Tote
	for _, id := range f.order {
		if t := f.totes[id]; t.ParentID == "" {
			roots = append(roots, t)
		}
	}
	return roots
}

// LabelRoots returns the totes that get a label of their own, in first-seen
// order: every root, plus every nested tote that has children. A label
// expands its direct children's items inline, so any tote's parent is
// always itself a label root and no item can fall between labels.
func (f *Forest) LabelRoots() []*Tote {
	var roots []*Tote
	for _, id := range f.order {
		if t := f.totes[id]; t.ParentID == "" || len(t.Children) > 0 {
			roots = append(roots, t)
		}
	}
	return roots
}

// ItemCount returns the total number of items across all totes.
func (f *Forest) ItemCount() int {
	n := 0
	for _, t := range f.totes {
		n += len(t.Items)
	}
	return n
}
