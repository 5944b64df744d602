package inventory

import "testing"

func itemRecord(toteID, parentID, itemTitle string, qty int) Record {
	return Record{Kind: RecordItem, ToteID: toteID, ParentID: parentID, ItemTitle: itemTitle, Quantity: qty}
}

func TestBuildSingleTote(t *testing.T) {
	records := []Record{
		{Kind: RecordItem, ToteID: "A1", Title: "Camping", QRData: "tote:A1", ItemTitle: "Widget", Quantity: 3},
		itemRecord("A1", "", "Gadget", 1),
		{Kind: RecordEmptyTote, ToteID: "A1", Title: "Stale title"},
	}

	f := Build(records, nil)
	if f.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.Len())
	}

	roots := f.Roots()
	if len(roots) != 1 || roots[0].ID != "A1" {
		t.Fatalf("unexpected roots: %v", roots)
	}

	a1 := roots[0]
	if len(a1.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(a1.Items))
	}
	if a1.Items[0].Title != "Widget" || a1.Items[1].Title != "Gadget" {
		t.Errorf("item order not preserved: %+v", a1.Items)
	}
	if len(a1.Children) != 0 {
		t.Errorf("expected no children, got %v", a1.Children)
	}
	// Real data wins: the empty declaration must not overwrite the title.
	if a1.Title != "Camping" {
		t.Errorf("Title = %q, want %q", a1.Title, "Camping")
	}
}

func TestBuildFirstNonEmptyWins(t *testing.T) {
	records := []Record{
		itemRecord("A1", "", "Widget", 1), // no title yet
		{Kind: RecordItem, ToteID: "A1", Title: "First", Location: "Shelf 2", ItemTitle: "Gadget", Quantity: 1},
		{Kind: RecordItem, ToteID: "A1", Title: "Second", Location: "Elsewhere", ItemTitle: "Gizmo", Quantity: 1},
	}

	f := Build(records, nil)
	a1, _ := f.Get("A1")
	if a1.Title != "First" {
		t.Errorf("Title = %q, want first non-empty value", a1.Title)
	}
	if a1.Location != "Shelf 2" {
		t.Errorf("Location = %q, want first non-empty value", a1.Location)
	}
}

func TestBuildEmptyOnlyToteKept(t *testing.T) {
	records := []Record{
		itemRecord("A1", "", "Widget", 1),
		{Kind: RecordEmptyTote, ToteID: "B7", Title: "Winter", Location: "Attic"},
	}

	f := Build(records, nil)
	b7, ok := f.Get("B7")
	if !ok {
		t.Fatal("empty-only tote should exist as an item-less node")
	}
	if len(b7.Items) != 0 {
		t.Errorf("empty tote should have no items, got %d", len(b7.Items))
	}
	if b7.Title != "Winter" || b7.Location != "Attic" {
		t.Errorf("attributes not taken from declaration: %+v", b7)
	}
	if len(f.Roots()) != 2 {
		t.Errorf("got %d roots, want 2", len(f.Roots()))
	}
}

func TestBuildParentLinkage(t *testing.T) {
	records := []Record{
		itemRecord("A1", "", "Widget", 1),
		itemRecord("A1-1", "A1", "Bolt", 4),
		itemRecord("A1-2", "A1", "Nut", 8),
	}

	f := Build(records, nil)
	roots := f.Roots()
	if len(roots) != 1 || roots[0].ID != "A1" {
		t.Fatalf("unexpected roots: %v", roots)
	}

	a1 := roots[0]
	if len(a1.Children) != 2 || a1.Children[0] != "A1-1" || a1.Children[1] != "A1-2" {
		t.Errorf("children = %v, want [A1-1 A1-2]", a1.Children)
	}

	// Every item lands in exactly one tote, in its own tote's order.
	child, _ := f.Get("A1-1")
	if len(child.Items) != 1 || child.Items[0].Title != "Bolt" {
		t.Errorf("child items = %+v", child.Items)
	}
}

func TestBuildUnknownParentBecomesRoot(t *testing.T) {
	records := []Record{
		itemRecord("A1", "GHOST", "Widget", 1),
	}

	f := Build(records, nil)
	a1, _ := f.Get("A1")
	if a1.ParentID != "" {
		t.Errorf("ParentID = %q, want cleared link", a1.ParentID)
	}
	if len(f.Roots()) != 1 {
		t.Errorf("tote with unknown parent must become a root")
	}
	if _, ok := f.Get("GHOST"); ok {
		t.Error("unknown parent must not be materialized")
	}
}

func TestBuildCycleGuard(t *testing.T) {
	// A1 → A2 → A3 → A1: the first link that closes the loop is dropped.
	records := []Record{
		itemRecord("A1", "A3", "x", 1),
		itemRecord("A2", "A1", "y", 1),
		itemRecord("A3", "A2", "z", 1),
	}

	f := Build(records, nil)

	roots := f.Roots()
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want exactly 1 after cycle break", len(roots))
	}
	if roots[0].ID != "A1" {
		t.Errorf("root = %s, want A1 (first-seen link dropped)", roots[0].ID)
	}

	// No node may be its own ancestor once building completes.
	for _, root := range roots {
		seen := map[string]bool{}
		var walk func(id string)
		walk = func(id string) {
			if seen[id] {
				t.Fatalf("node %s reachable twice from root %s", id, root.ID)
			}
			seen[id] = true
			tote, _ := f.Get(id)
			for _, child := range tote.Children {
				walk(child)
			}
		}
		walk(root.ID)
	}
}

func TestBuildSelfParent(t *testing.T) {
	records := []Record{
		itemRecord("A1", "A1", "Widget", 1),
	}

	f := Build(records, nil)
	a1, _ := f.Get("A1")
	if a1.ParentID != "" {
		t.Error("self-parent link must be dropped")
	}
	if len(a1.Children) != 0 {
		t.Error("self-parent must not produce a child entry")
	}
}

func TestBuildItemsWithoutContentSkipped(t *testing.T) {
	records := []Record{
		{Kind: RecordItem, ToteID: "A1", Title: "Camping"}, // attribute-only row
		{Kind: RecordItem, ToteID: "A1", ItemDescription: "desc only", Quantity: 1},
	}

	f := Build(records, nil)
	a1, _ := f.Get("A1")
	if len(a1.Items) != 1 {
		t.Fatalf("got %d items, want 1 (description-only rows count, blank rows don't)", len(a1.Items))
	}
	if a1.Items[0].Description != "desc only" {
		t.Errorf("unexpected item: %+v", a1.Items[0])
	}
}

func TestLabelRootsIncludeNestedParents(t *testing.T) {
	records := []Record{
		itemRecord("A1", "", "Widget", 1),
		itemRecord("A1-1", "A1", "Bolt", 4),
		itemRecord("A1-1-1", "A1-1", "Washer", 12),
		itemRecord("B2", "", "Gadget", 1),
	}

	f := Build(records, nil)
	if got := len(f.Roots()); got != 2 {
		t.Fatalf("got %d roots, want 2", got)
	}

	// A1-1 is nested but has a child of its own, so it needs a label too:
	// A1's label only expands direct children, and A1-1-1's items would
	// otherwise never reach a page.
	labels := f.LabelRoots()
	ids := make([]string, len(labels))
	for i, tote := range labels {
		ids[i] = tote.ID
	}
	want := []string{"A1", "A1-1", "B2"}
	if len(ids) != len(want) {
		t.Fatalf("label roots = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("label roots = %v, want %v (first-seen order)", ids, want)
		}
	}

	// Every tote with items is either a label root or a direct child of one.
	covered := map[string]bool{}
	for _, root := range labels {
		covered[root.ID] = true
		for _, child := range root.Children {
			covered[child] = true
		}
	}
	for _, id := range []string{"A1", "A1-1", "A1-1-1", "B2"} {
		if !covered[id] {
			t.Errorf("tote %s covered by no label", id)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	records := []Record{
		itemRecord("B2", "", "Beta", 1),
		itemRecord("A1", "B2", "Alpha", 2),
		itemRecord("C3", "", "Gamma", 1),
	}

	first := Build(records, nil)
	second := Build(records, nil)

	firstRoots := first.Roots()
	secondRoots := second.Roots()
	if len(firstRoots) != len(secondRoots) {
		t.Fatal("root count differs between runs")
	}
	for i := range firstRoots {
		if firstRoots[i].ID != secondRoots[i].ID {
			t.Errorf("root order differs at %d: %s vs %s", i, firstRoots[i].ID, secondRoots[i].ID)
		}
	}
	if firstRoots[0].ID != "B2" || firstRoots[1].ID != "C3" {
		t.Errorf("roots not in first-seen order: %v, %v", firstRoots[0].ID, firstRoots[1].ID)
	}
}
