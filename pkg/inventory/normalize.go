package inventory

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/totelabel/pkg/errors"
)

// section tracks which part of an export the normalizer is currently in.
type section int

const (
	sectionUnknown section = iota
	sectionPrimary
	sectionEmptyPending // saw the empty-totes marker, header not yet seen
	sectionEmpty
)

// primaryKeyColumns must all be present for a row to count as the primary
// table header.
var primaryKeyColumns = []string{colToteID, colQRData, colItemTitle, colItemQuantity}

// emptyHeaderColumns is the exact reduced header of the empty-totes section.
var emptyHeaderColumns = []string{colProfile, colToteID, colToteLocation, colToteTitle}

// ReadFiles normalizes every CSV file in paths, in order, into one record
// sequence. A file that cannot be opened or parsed fails the run; malformed
// rows inside a file are skipped with a debug log instead.
func ReadFiles(paths []string, logger *log.Logger) ([]Record, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var records []Record
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open %s", path)
		}

		rows, err := readRows(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse %s", path)
		}

		recs := Normalize(rows, logger)
		logger.Debug("normalized file", "path", path, "rows", len(rows), "records", len(recs))
		records = append(records, recs...)
	}
	return records, nil
}

// readRows parses CSV content leniently: ragged rows, stray quotes and
// leading spaces all occur in real exports.
func readRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// Normalize walks raw CSV rows and produces the flat record sequence the
// hierarchy builder consumes. It drives a small section state machine:
// header rows switch the active section, the empty-totes marker line arms
// the reduced header, and data rows are interpreted against whichever
// header was seen last. Rows that fit no section are ignored.
func Normalize(rows [][]string, logger *log.Logger) []Record {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var (
		records []Record
		state   = sectionUnknown
		index   map[string]int
	)

	for _, row := range rows {
		if blankRow(row) {
			continue
		}

		// Section delimiter: a lone cell announcing the empty-totes block.
		if len(row) == 1 && strings.Contains(row[0], emptySectionMarker) {
			state = sectionEmptyPending
			index = nil
			continue
		}

		switch sniffHeader(row) {
		case sectionPrimary:
			state = sectionPrimary
			index = headerIndex(row)
			continue
		case sectionEmpty:
			state = sectionEmpty
			index = headerIndex(row)
			continue
		}

		switch state {
		case sectionPrimary:
			rec, ok := primaryRecord(row, index)
			if !ok {
				logger.Debug("skipping row without tote id")
				continue
			}
			records = append(records, rec)
		case sectionEmpty:
			rec, ok := emptyRecord(row, index)
			if !ok {
				logger.Debug("skipping empty-tote row without tote id")
				continue
			}
			records = append(records, rec)
		default:
			// Preamble or junk between sections.
		}
	}
	return records
}

// sniffHeader classifies a row as one of the two known headers, or neither.
func sniffHeader(row []string) section {
	norm := make(map[string]bool, len(row))
	for _, cell := range row {
		norm[strings.TrimPrefix(strings.TrimSpace(cell), "\uFEFF")] = true
	}

	primary := true
	for _, col := range primaryKeyColumns {
		if !norm[col] {
			primary = false
			break
		}
	}
	if primary {
		return sectionPrimary
	}

	if len(row) == len(emptyHeaderColumns) {
		empty := true
		for _, col := range emptyHeaderColumns {
			if !norm[col] {
				empty = false
				break
			}
		}
		if empty {
			return sectionEmpty
		}
	}
	return sectionUnknown
}

// headerIndex maps column names to positions, stripping BOM and spaces.
func headerIndex(row []string) map[string]int {
	index := make(map[string]int, len(row))
	for i, cell := range row {
		name := strings.TrimPrefix(strings.TrimSpace(cell), "\uFEFF")
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

// field returns the trimmed cell for a named column, or "" when the column
// is absent or the row too short.
func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// primaryRecord builds an item record from a primary-table row.
// Returns ok=false when the row has no tote identifier.
func primaryRecord(row []string, index map[string]int) (Record, bool) {
	toteID := field(row, index, colToteID)
	if toteID == "" {
		return Record{}, false
	}
	return Record{
		Kind:            RecordItem,
		ToteID:          toteID,
		ParentID:        field(row, index, colParentToteID),
		Title:           field(row, index, colToteTitle),
		Location:        field(row, index, colToteLocation),
		QRData:          field(row, index, colQRData),
		ItemTitle:       field(row, index, colItemTitle),
		ItemDescription: field(row, index, colItemDesc),
		ImageURL:        firstImageURL(field(row, index, colImages)),
		Quantity:        parseQuantity(field(row, index, colItemQuantity)),
	}, true
}

// emptyRecord builds an empty-tote declaration from a reduced-header row.
func emptyRecord(row []string, index map[string]int) (Record, bool) {
	toteID := field(row, index, colToteID)
	if toteID == "" {
		return Record{}, false
	}
	return Record{
		Kind:     RecordEmptyTote,
		ToteID:   toteID,
		Title:    field(row, index, colToteTitle),
		Location: field(row, index, colToteLocation),
	}, true
}

// blankRow reports whether every cell is empty or whitespace.
func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
