package dart

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRE is the strict token a cell must reduce to after locale cleanup.
var numberRE = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)

// Cell is one numerically normalized cell. A parsed cell carries its number
// with Valid true; anything else keeps the original text, and inside a
// promoted column that reads as an explicit missing value.
type Cell struct {
	Text  string
	Value float64
	Valid bool
}

// NumericTable is a Table with each column either promoted wholesale to
// numeric values or left textual. Promotion is a column-level decision so the
// output keeps consistent column typing.
type NumericTable struct {
	Header  []string
	Numeric []bool
	Rows    [][]Cell
}

// ParseLocaleNumber parses one cell under KR filing conventions: internal
// spaces stripped, △ or a full enclosing parenthesis pair marks a negative,
// a trailing percent sign and thousands commas are stripped, and the remainder
// must match [sign]digits[.digits] exactly. Returns false for anything else —
// dashes for zero, footnote markers, blanks.
func ParseLocaleNumber(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}
	t = strings.ReplaceAll(t, " ", "")
	neg := false
	if strings.Contains(t, "△") {
		neg = true
		t = strings.ReplaceAll(t, "△", "")
	}
	if strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")") {
		neg = true
		t = t[1 : len(t)-1]
	}
	t = strings.TrimSuffix(t, "%")
	t = strings.ReplaceAll(t, ",", "")
	if !numberRE.MatchString(t) {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// ToNumeric applies per-column numeric promotion to a reconstructed table.
// A column is promoted only when at least PromotionRatio of its body cells
// parse; otherwise every cell in the column stays textual. A parse miss inside
// a promoted column becomes a missing value, never an error.
func ToNumeric(cfg Config, t *Table) *NumericTable {
	out := &NumericTable{
		Header:  append([]string(nil), t.Header...),
		Numeric: make([]bool, len(t.Header)),
		Rows:    make([][]Cell, len(t.Rows)),
	}
	for i := range out.Rows {
		out.Rows[i] = make([]Cell, len(t.Header))
	}
	if len(t.Rows) == 0 {
		return out
	}

	for j := range t.Header {
		parsed := 0
		values := make([]Cell, len(t.Rows))
		for i, r := range t.Rows {
			text := ""
			if j < len(r) {
				text = r[j]
			}
			v, ok := ParseLocaleNumber(text)
			values[i] = Cell{Text: text, Value: v, Valid: ok}
			if ok {
				parsed++
			}
		}

		promote := float64(parsed)/float64(len(t.Rows)) >= cfg.PromotionRatio
		out.Numeric[j] = promote
		for i := range values {
			if !promote {
				// Column stays textual; discard any incidental parse.
				values[i].Value = 0
				values[i].Valid = false
			}
			out.Rows[i][j] = values[i]
		}
	}
	return out
}
