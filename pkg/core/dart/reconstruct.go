package dart

import (
	"fmt"
	"strings"
)

// Table is a reconstructed income statement: an ordered header plus body rows,
// every row exactly as wide as the header. Duplicate column names are legal
// and kept positional, so they never collapse.
type Table struct {
	Header []string
	Rows   [][]string
}

// Reconstruct turns a candidate's raw row grid into a labeled table: it
// locates the header row, pads every row to the widest observed width,
// synthesizes "column N" names for empty header cells, drops unit-legend rows
// and repeated embedded header rows, and trims trailing all-empty columns.
func Reconstruct(cfg Config, rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}

	hidx := findHeaderIndex(cfg, rows)

	maxLen := 0
	for _, r := range rows {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}

	header := padRow(rows[hidx], maxLen)
	var body [][]string
	for _, r := range rows[hidx+1:] {
		body = append(body, padRow(r, maxLen))
	}

	body = dropUnitRows(cfg, body)
	body = dropRepeatedHeaderRows(cfg, header, body)

	names := make([]string, maxLen)
	for j, h := range header {
		h = strings.TrimSpace(h)
		for spaced, compact := range cfg.LabelVariants {
			h = strings.ReplaceAll(h, spaced, compact)
		}
		if h == "" {
			h = fmt.Sprintf("column %d", j)
		}
		names[j] = h
	}

	for _, r := range body {
		for j := range r {
			r[j] = strings.TrimSpace(r[j])
		}
	}

	names, body = trimTrailingEmptyColumns(names, body)

	return &Table{Header: names, Rows: body}
}

// findHeaderIndex scans at most the first HeaderScanRows rows for header
// vocabulary or a fiscal-period token, defaulting to row zero.
func findHeaderIndex(cfg Config, rows [][]string) int {
	limit := cfg.HeaderScanRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for i, r := range rows[:limit] {
		joined := strings.Join(r, " ")
		if containsAnyHint(joined, cfg.Vocab.HeaderHints) || periodRE.MatchString(joined) {
			return i
		}
	}
	return 0
}

// dropUnitRows removes legend rows that only state the numeric unit (단위),
// which carry no data.
func dropUnitRows(cfg Config, body [][]string) [][]string {
	out := body[:0]
	for _, r := range body {
		legend := false
		for _, c := range r {
			if containsAnyHint(c, cfg.Vocab.UnitMarkers) {
				legend = true
				break
			}
		}
		if !legend {
			out = append(out, r)
		}
	}
	return out
}

// dropRepeatedHeaderRows removes header rows repeated mid-table: a body row
// containing header vocabulary whose cells duplicate header cells across at
// least half its non-empty cells (and at least two of them).
func dropRepeatedHeaderRows(cfg Config, header []string, body [][]string) [][]string {
	headerSet := make(map[string]bool, len(header))
	for _, h := range header {
		if h != "" {
			headerSet[h] = true
		}
	}
	out := body[:0]
	for _, r := range body {
		joined := strings.Join(r, " ")
		if containsAnyHint(joined, cfg.Vocab.HeaderHints) {
			dup, nonEmpty := 0, 0
			for _, c := range r {
				if c == "" {
					continue
				}
				nonEmpty++
				if headerSet[c] {
					dup++
				}
			}
			threshold := nonEmpty / 2
			if threshold < 2 {
				threshold = 2
			}
			if dup >= threshold {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func trimTrailingEmptyColumns(names []string, body [][]string) ([]string, [][]string) {
	if len(body) == 0 {
		return names, body
	}
	width := len(names)
	for width > 1 {
		empty := true
		for _, r := range body {
			if r[width-1] != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		width--
	}
	if width == len(names) {
		return names, body
	}
	names = names[:width]
	for i := range body {
		body[i] = body[i][:width]
	}
	return names, body
}

func padRow(r []string, width int) []string {
	out := make([]string, width)
	copy(out, r)
	return out
}
