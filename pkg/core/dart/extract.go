package dart

import "errors"

// ErrNoCandidate indicates no region of the document survived segmentation
// and the minimum-row-count filter. Retrying needs different input, not
// different timing, so nothing retries internally.
var ErrNoCandidate = errors.New("no candidate income-statement table found")

// ErrEmptyTable indicates the winning candidate had no body rows left after
// header detection and noise removal.
var ErrEmptyTable = errors.New("selected table has no data rows")

// Options are the caller-supplied extraction preferences.
type Options struct {
	// PreferConsolidated boosts candidates carrying a consolidated-variant
	// marker over separate-statement variants when a filing contains both.
	PreferConsolidated bool
}

// Extractor locates, scores, and reconstructs the income-statement table of
// one filing. It is a pure transformation: no I/O, no shared mutable state,
// safe to use from multiple goroutines.
type Extractor struct {
	cfg Config
}

// NewExtractor returns an extractor with the default KR/EN vocabulary.
func NewExtractor() *Extractor {
	return &Extractor{cfg: DefaultConfig()}
}

// NewExtractorWithConfig returns an extractor with a custom vocabulary and
// thresholds, e.g. loaded from a YAML file or synthesized in tests.
func NewExtractorWithConfig(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

type scored struct {
	cand  Candidate
	score float64
}

// Extract runs the full pipeline on one document's raw markup and returns the
// reconstructed all-text table.
func (e *Extractor) Extract(doc string, opts Options) (*Table, error) {
	normalized := NormalizeText(doc)

	var survivors []scored
	for _, cand := range Segment(normalized) {
		rowScore := ScoreRows(e.cfg, cand.Rows)
		if rowScore == RejectScore {
			continue
		}
		ctxStart := cand.Start - e.cfg.ContextWindow
		if ctxStart < 0 {
			ctxStart = 0
		}
		ctx := normalized[ctxStart:cand.Start]
		total := ScoreContext(e.cfg, ctx, cand.Text, opts.PreferConsolidated) + rowScore
		survivors = append(survivors, scored{cand: cand, score: total})
	}
	if len(survivors) == 0 {
		return nil, ErrNoCandidate
	}

	// Strictly-highest score wins; on an exact tie the earliest document
	// position wins, keeping selection deterministic. Candidates arrive in
	// document order, so a plain > comparison encodes the tie-break.
	best := survivors[0]
	for _, s := range survivors[1:] {
		if s.score > best.score {
			best = s
		}
	}

	table := Reconstruct(e.cfg, best.cand.Rows)
	if len(table.Rows) == 0 {
		return table, ErrEmptyTable
	}
	return table, nil
}

// ExtractNumeric runs Extract and applies per-column numeric promotion to the
// winning table.
func (e *Extractor) ExtractNumeric(doc string, opts Options) (*NumericTable, error) {
	table, err := e.Extract(doc, opts)
	if err != nil {
		return nil, err
	}
	return ToNumeric(e.cfg, table), nil
}
