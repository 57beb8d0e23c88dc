// Package excel wraps excelize behind the small tabular surface the import
// path needs: one worksheet read into a header-indexed table.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table holds a parsed worksheet: the header row plus the data rows below it.
type Table struct {
	index map[string]int
	rows  [][]string
}

// ReadTable parses the first worksheet of an .xlsx stream. The first row is
// taken as the header; remaining rows are data.
func ReadTable(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}

	t := &Table{index: make(map[string]int)}
	if len(rows) == 0 {
		return t, nil
	}

	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	t.rows = rows[1:]

	return t, nil
}

// MissingColumns returns the required column names absent from the header,
// preserving the requested order.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Cell returns the trimmed value of the named column in the given data row.
// Rows shorter than the header (trailing empty cells are trimmed by the
// underlying reader) yield "".
func (t *Table) Cell(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
