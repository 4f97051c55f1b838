package dart

import (
	"errors"
	"strings"
	"testing"
)

const titledFiling = `
<DOCUMENT>
<P>제 55 기 사업보고서입니다. 회사의 개요와 사업의 내용은 생략합니다.</P>
<P>연결 포괄손익계산서</P>
<TABLE border="1">
<TR><TD>구분</TD><TD>당기</TD><TD>전기</TD></TR>
<TR><TD>매출액</TD><TD>1,000</TD><TD>900</TD></TR>
<TR><TD>매출원가</TD><TD>(600)</TD><TD>(550)</TD></TR>
<TR><TD>영업이익</TD><TD>400</TD><TD>350</TD></TR>
<TR><TD>법인세비용</TD><TD>(100)</TD><TD>(90)</TD></TR>
<TR><TD>당기순이익</TD><TD>300</TD><TD>△250</TD></TR>
</TABLE>
</DOCUMENT>`

func TestExtractNoCandidate(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("<P>표가 전혀 없는 문서입니다.</P>", Options{})
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("no-table document: err = %v, want ErrNoCandidate", err)
	}

	// A table below the minimum row count is disqualified, not selected.
	small := `<TABLE><TR><TD>구분</TD><TD>당기</TD></TR><TR><TD>매출액</TD><TD>1,000</TD></TR></TABLE>`
	_, err = e.Extract(small, Options{})
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("small table: err = %v, want ErrNoCandidate", err)
	}
}

func TestExtractSingleTitledTable(t *testing.T) {
	e := NewExtractor()
	padding := strings.Repeat("<P>본문 내용이 길게 이어집니다.</P>", 500)
	table, err := e.Extract(padding+titledFiling+padding, Options{PreferConsolidated: true})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	wantHeader := []string{"구분", "당기", "전기"}
	for i, h := range wantHeader {
		if table.Header[i] != h {
			t.Fatalf("header = %v, want %v", table.Header, wantHeader)
		}
	}
	if len(table.Rows) != 5 {
		t.Errorf("rows = %d, want 5", len(table.Rows))
	}
}

func buildTable(first string, values []string) string {
	var sb strings.Builder
	sb.WriteString(`<TABLE><TR><TD>구분</TD><TD>당기</TD></TR>`)
	labels := []string{first, "다라", "마바", "사아", "자차"}
	for i, l := range labels {
		sb.WriteString("<TR><TD>" + l + "</TD><TD>" + values[i] + "</TD></TR>")
	}
	sb.WriteString("</TABLE>")
	return sb.String()
}

func TestExtractTitleBeatsIdenticalLineItems(t *testing.T) {
	e := NewExtractor()
	tableA := `<TABLE>
<TR><TD>구분</TD><TD>당기</TD></TR>
<TR><TD>매출액</TD><TD>1,000</TD></TR>
<TR><TD>매출원가</TD><TD>(600)</TD></TR>
<TR><TD>영업이익</TD><TD>400</TD></TR>
<TR><TD>당기순이익</TD><TD>300</TD></TR>
</TABLE>`
	tableB := strings.ReplaceAll(tableA, "1,000", "2,000")
	doc := tableA + `<P>연결포괄손익계산서</P>` + tableB

	table, err := e.Extract(doc, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if table.Rows[0][1] != "2,000" {
		t.Errorf("titled table not selected: first data row %v", table.Rows[0])
	}
}

func TestExtractTieBrokenByPosition(t *testing.T) {
	e := NewExtractor()
	values := []string{"1,000", "2,000", "3,000", "4,000", "5,000"}
	doc := buildTable("가나", values) + "<P>사이 본문</P>" + buildTable("고유명", values)

	table, err := e.Extract(doc, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if table.Rows[0][0] != "가나" {
		t.Errorf("tie not broken by first occurrence: %v", table.Rows[0])
	}
}

func TestExtractEmptyTableError(t *testing.T) {
	e := NewExtractor()
	doc := `<TABLE>
<TR><TD>구분</TD><TD>당기</TD></TR>
<TR><TD>(단위: 백만원)</TD><TD>1</TD></TR>
<TR><TD>(단위: 천원)</TD><TD>2</TD></TR>
<TR><TD>(단위: 원)</TD><TD>3</TD></TR>
<TR><TD>(단위: 달러)</TD><TD>4</TD></TR>
</TABLE>`
	table, err := e.Extract(doc, Options{})
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("err = %v, want ErrEmptyTable", err)
	}
	if table == nil || len(table.Rows) != 0 {
		t.Errorf("expected empty table alongside the error, got %v", table)
	}
}

func TestExtractNumericEndToEnd(t *testing.T) {
	e := NewExtractor()
	nt, err := e.ExtractNumeric(titledFiling, Options{PreferConsolidated: true})
	if err != nil {
		t.Fatalf("ExtractNumeric: %v", err)
	}
	if nt.Numeric[0] {
		t.Error("label column promoted")
	}
	if !nt.Numeric[1] || !nt.Numeric[2] {
		t.Fatalf("value columns not promoted: %v", nt.Numeric)
	}
	wantCurrent := []float64{1000, -600, 400, -100, 300}
	for i, want := range wantCurrent {
		c := nt.Rows[i][1]
		if !c.Valid || c.Value != want {
			t.Errorf("row %d 당기 = %+v, want %v", i, c, want)
		}
	}
	if last := nt.Rows[4][2]; !last.Valid || last.Value != -250 {
		t.Errorf("triangle negative: %+v, want -250", last)
	}
}

func TestExtractIdempotent(t *testing.T) {
	e := NewExtractor()
	first, err := e.Extract(titledFiling, Options{})
	if err != nil {
		t.Fatalf("first Extract: %v", err)
	}

	second, err := e.Extract(tableMarkup(first), Options{})
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}
	if len(second.Header) != len(first.Header) {
		t.Errorf("header width changed: %d -> %d", len(first.Header), len(second.Header))
	}
	for i := range first.Header {
		if second.Header[i] != first.Header[i] {
			t.Errorf("header changed: %v -> %v", first.Header, second.Header)
			break
		}
	}
	if len(second.Rows) != len(first.Rows) {
		t.Errorf("row count changed: %d -> %d", len(first.Rows), len(second.Rows))
	}
}

func TestExtractSyntheticVocabulary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vocab = Vocabulary{
		Phrases: []Phrase{
			{Text: "위젯 명세서", Weight: 5.0, Category: CategoryTitle},
			{Text: "부품", Weight: 1.5, Category: CategoryLineItem},
		},
		HeaderHints: []string{"이름"},
		UnitMarkers: []string{"단위"},
	}
	e := NewExtractorWithConfig(cfg)

	financeTable := `<TABLE>
<TR><TD>구분</TD><TD>당기</TD></TR>
<TR><TD>매출액</TD><TD>1,000</TD></TR>
<TR><TD>영업이익</TD><TD>400</TD></TR>
<TR><TD>당기순이익</TD><TD>300</TD></TR>
<TR><TD>법인세비용</TD><TD>(100)</TD></TR>
</TABLE>`
	widgetTable := `<TABLE>
<TR><TD>이름</TD><TD>수량</TD></TR>
<TR><TD>부품 가</TD><TD>10</TD></TR>
<TR><TD>부품 나</TD><TD>20</TD></TR>
<TR><TD>부품 다</TD><TD>30</TD></TR>
<TR><TD>부품 라</TD><TD>40</TD></TR>
</TABLE>`
	doc := financeTable + `<P>위젯 명세서</P>` + widgetTable

	table, err := e.Extract(doc, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if table.Header[0] != "이름" {
		t.Errorf("synthetic vocabulary ignored: header %v", table.Header)
	}
}

// tableMarkup re-renders a reconstructed table as markup for round-trip tests.
func tableMarkup(tb *Table) string {
	var sb strings.Builder
	sb.WriteString("<table>")
	writeRow := func(cells []string) {
		sb.WriteString("<tr>")
		for _, c := range cells {
			sb.WriteString("<td>" + c + "</td>")
		}
		sb.WriteString("</tr>")
	}
	writeRow(tb.Header)
	for _, r := range tb.Rows {
		writeRow(r)
	}
	sb.WriteString("</table>")
	return sb.String()
}
