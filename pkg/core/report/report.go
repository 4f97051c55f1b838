// Package report renders extracted tables to CSV, Markdown, and HTML.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"dart_extractor/pkg/core/dart"
)

// utf8BOM makes the CSV open correctly in Excel with Korean labels, matching
// the utf-8-sig encoding the upstream tooling expects.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the table as BOM-prefixed UTF-8 CSV.
func WriteCSV(w io.Writer, t *dart.Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteNumericCSV writes the numeric view: promoted cells as plain numbers,
// parse misses as empty fields, textual columns unchanged.
func WriteNumericCSV(w io.Writer, t *dart.NumericTable) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for j, c := range row {
			switch {
			case !t.Numeric[j]:
				record[j] = c.Text
			case c.Valid:
				record[j] = strconv.FormatFloat(c.Value, 'f', -1, 64)
			default:
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarkdownTable renders the table as a pipe-delimited Markdown table with a
// separator after the header row.
func MarkdownTable(t *dart.Table) string {
	var sb strings.Builder
	writeMarkdownRow(&sb, t.Header)
	sb.WriteString("|")
	for range t.Header {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, r := range t.Rows {
		writeMarkdownRow(&sb, r)
	}
	return sb.String()
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		c = strings.ReplaceAll(c, "|", "&#124;")
		if c == "" {
			c = " "
		}
		fmt.Fprintf(sb, " %s |", c)
	}
	sb.WriteString("\n")
}

// RenderHTML converts a Markdown report body to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
