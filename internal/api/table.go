package api

import (
	"strconv"
	"strings"

	"medirag/internal/dataset"
)

// Row is one professor record as served by the listing endpoints: every
// column of the source sheet, with numeric cells defaulted to 0 and text
// cells defaulted to "N/A". This presentation-layer defaulting is deliberate
// so the boolean indicator columns always compare cleanly against 1.
type Row map[string]any

// Table is the in-memory professor table, loaded once at startup and
// read-only afterwards.
type Table struct {
	rows []Row
}

// cancerKeywords maps disease names found in a query string to the boolean
// indicator column flagging professors who treat that cancer. Fixed domain
// vocabulary, ordered for deterministic matching.
var cancerKeywords = []struct {
	Keyword string
	Column  string
}{
	{"폐암", "is_cancer_lung"},
	{"간암", "is_cancer_liver"},
	{"위암", "is_cancer_stomach"},
	{"대장암", "is_cancer_intestine"},
	{"유방암", "is_cancer_breast"},
	{"자궁경부암", "is_cancer_cervix"},
	{"췌장암", "is_cancer_pancreas"},
}

// LoadTable reads the spreadsheet behind the listing endpoints. Column types
// are inferred once over the whole sheet: a column is numeric when every
// present, non-sentinel cell parses as a number.
func LoadTable(path string) (*Table, error) {
	header, raw, err := dataset.ReadRaw(path)
	if err != nil {
		return nil, err
	}
	numeric := inferNumericColumns(header, raw)

	rows := make([]Row, 0, len(raw))
	for _, cells := range raw {
		row := make(Row, len(header))
		for i, col := range header {
			col = strings.TrimSpace(col)
			val := ""
			if i < len(cells) {
				val = strings.TrimSpace(cells[i])
			}
			if numeric[col] {
				f, err := strconv.ParseFloat(val, 64)
				if err != nil {
					f = 0
				}
				row[col] = f
			} else {
				if val == "" {
					val = "N/A"
				}
				row[col] = val
			}
		}
		rows = append(rows, row)
	}
	return &Table{rows: rows}, nil
}

func inferNumericColumns(header []string, rows [][]string) map[string]bool {
	numeric := make(map[string]bool, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		seen := false
		isNumeric := true
		for _, cells := range rows {
			if i >= len(cells) {
				continue
			}
			val := strings.TrimSpace(cells[i])
			if val == "" || val == "N/A" {
				continue
			}
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				isNumeric = false
				break
			}
			seen = true
		}
		numeric[col] = seen && isNumeric
	}
	return numeric
}

func (t *Table) Rows() []Row {
	return t.rows
}

func (t *Table) Len() int {
	return len(t.rows)
}

// FilterByQuery returns the union of rows flagged in any indicator column
// whose disease keyword appears in the query. A query matching no keyword
// returns the full table.
func (t *Table) FilterByQuery(query string) []Row {
	q := strings.ToLower(query)
	var columns []string
	for _, ck := range cancerKeywords {
		if strings.Contains(q, ck.Keyword) {
			columns = append(columns, ck.Column)
		}
	}
	if len(columns) == 0 {
		return t.rows
	}

	filtered := make([]Row, 0)
	for _, row := range t.rows {
		for _, col := range columns {
			if rowFlag(row, col) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}

// ByID returns the first row whose ID column equals id.
func (t *Table) ByID(id int) (Row, bool) {
	for _, row := range t.rows {
		if v, ok := row["ID"].(float64); ok && v == float64(id) {
			return row, true
		}
	}
	return nil, false
}

func rowFlag(row Row, col string) bool {
	v, ok := row[col].(float64)
	return ok && v == 1
}
