// Package inventory turns ToteScan CSV exports into a forest of totes.
//
// The package has two halves: a normalizer that walks raw CSV rows and
// produces flat, typed records (see Normalize), and a builder that groups
// those records into Tote nodes linked by parent identifiers (see Build).
// Both halves recover from malformed rows instead of failing the run: rows
// without a tote identifier are skipped and unparseable quantities default
// to one.
package inventory

import (
	"strconv"
	"strings"
)

// Column names recognized in ToteScan exports. The primary table carries
// item rows; a trailing "Empty ToteScan labels without items" section
// re-declares totes with a reduced header set.
const (
	colToteID       = "TOTE ID"
	colParentToteID = "PARENT TOTE ID"
	colQRData       = "QRDATA"
	colToteLocation = "TOTE LOCATION"
	colToteTitle    = "TOTE TITLE"
	colItemTitle    = "ITEM TITLE"
	colItemDesc     = "ITEM DESCRIPTION"
	colItemQuantity = "ITEM QUANTITY"
	colImages       = "IMAGES"
	colProfile      = "PROFILE"
)

// emptySectionMarker is the literal section delimiter line that introduces
// the empty-tote declarations in an export.
const emptySectionMarker = "Empty ToteScan labels"

// RecordKind distinguishes the two row shapes a ToteScan export contains.
type RecordKind int

const (
	// RecordItem is a primary-table row: tote attributes plus, usually,
	// one item. Rows whose item fields are blank still contribute tote
	// attributes.
	RecordItem RecordKind = iota

	// RecordEmptyTote is a declaration from the empty-totes section:
	// identifier, title and location only, never items.
	RecordEmptyTote
)

// Record is one normalized CSV row. Records are immutable once produced;
// the builder reads them but never writes them back.
type Record struct {
	Kind RecordKind

	ToteID   string
	ParentID string
	Title    string
	Location string
	QRData   string

	ItemTitle       string
	ItemDescription string
	ImageURL        string
	Quantity        int
}

// parseQuantity converts a raw quantity field to a count. Absent, junk or
// negative values degrade to 1 rather than failing the row.
func parseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 1
	}
	return n
}

// firstImageURL extracts the first http(s) URL from the IMAGES column,
// which may contain several URLs separated by whitespace.
func firstImageURL(images string) string {
	for _, part := range strings.Fields(images) {
		if strings.HasPrefix(part, "http://") || strings.HasPrefix(part, "https://") {
			return part
		}
	}
	return ""
}
