package dart

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tableRE finds tag-delimited table regions. Non-greedy, so a nested inner
// table terminates the outer match the same way the upstream filings render.
var tableRE = regexp.MustCompile(`(?is)<table\b[^>]*>.*?</table>`)

// Candidate is one table-like region decomposed into a grid of text cells,
// with the byte offset of the region in the source document kept for the
// context window and for deterministic tie-breaking.
type Candidate struct {
	Rows  [][]string
	Start int
	Text  string // visible text of the region, scanned for phrase signals
}

// Segment scans normalized document text for table regions and decomposes
// each into rows of cell text. Regions that yield no rows are dropped.
// Malformed or unbalanced markup never aborts the scan; the HTML parser is
// tolerant and a region that cannot be parsed is simply skipped.
func Segment(doc string) []Candidate {
	var out []Candidate
	for _, loc := range tableRE.FindAllStringIndex(doc, -1) {
		region := doc[loc[0]:loc[1]]
		rows := extractRows(region)
		if len(rows) == 0 {
			continue
		}
		out = append(out, Candidate{
			Rows:  rows,
			Start: loc[0],
			Text:  StripTags(region),
		})
	}
	return out
}

// extractRows pulls the ordered row and cell structure out of one table
// region. Nested markup inside a cell is stripped down to its visible text.
// Empty cells and empty rows are discarded at this stage; padding to a
// rectangle happens during reconstruction.
func extractRows(region string) [][]string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(region))
	if err != nil {
		return nil
	}
	var rows [][]string
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			text := NormalizeText(cell.Text())
			if text != "" {
				cells = append(cells, text)
			}
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}
