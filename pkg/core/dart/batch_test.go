package dart

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExtractFilesOrderAndCapturedFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.xml", titledFiling)
	b := writeFixture(t, dir, "b.xml", "<P>표 없는 문서</P>")
	c := writeFixture(t, dir, "c.xml", titledFiling)

	e := NewExtractor()
	report := e.ExtractFiles([]string{a, b, c}, BatchOptions{
		Options:   Options{PreferConsolidated: true},
		ToNumeric: true,
		Workers:   2,
	})

	if report.RunID == "" {
		t.Error("missing run ID")
	}
	if len(report.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(report.Results))
	}

	for i, wantSource := range []string{a, b, c} {
		if report.Results[i].Source != wantSource {
			t.Errorf("result %d source = %s, want %s", i, report.Results[i].Source, wantSource)
		}
	}

	if err := report.Results[0].Err; err != nil {
		t.Errorf("first source failed: %v", err)
	}
	if !errors.Is(report.Results[1].Err, ErrNoCandidate) {
		t.Errorf("second source err = %v, want ErrNoCandidate", report.Results[1].Err)
	}
	if report.Results[1].Table != nil {
		t.Error("failed source should carry no table")
	}
	if err := report.Results[2].Err; err != nil {
		t.Errorf("third source failed: %v", err)
	}

	for _, i := range []int{0, 2} {
		res := report.Results[i]
		if res.Table == nil || len(res.Table.Rows) != 5 {
			t.Errorf("result %d table missing or wrong size", i)
		}
		if res.Numeric == nil || !res.Numeric.Numeric[1] {
			t.Errorf("result %d numeric view missing", i)
		}
	}
}

func TestExtractFilesMissingFileCaptured(t *testing.T) {
	e := NewExtractor()
	report := e.ExtractFiles([]string{"/nonexistent/path.xml"}, BatchOptions{})
	if len(report.Results) != 1 || report.Results[0].Err == nil {
		t.Fatalf("missing file not captured: %+v", report.Results)
	}
}
