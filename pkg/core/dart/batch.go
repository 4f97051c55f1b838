package dart

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BatchResult is the captured outcome for one source: either a table (plus
// the numeric view when requested) or the failure that stopped it. A failure
// never aborts the rest of the batch.
type BatchResult struct {
	Source  string
	Table   *Table
	Numeric *NumericTable
	Err     error
}

// BatchReport pairs a run identifier with the per-source results, in the
// original input order.
type BatchReport struct {
	RunID   string
	Results []BatchResult
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	Options
	// ToNumeric additionally produces the numerically promoted view.
	ToNumeric bool
	// Workers bounds extraction concurrency; <= 0 means 4. Documents are
	// independent, so ordering is restored by index regardless of scheduling.
	Workers int
}

// ExtractFiles extracts one table per source file. Results preserve input
// order and each source's failure is captured in its own slot.
func (e *Extractor) ExtractFiles(paths []string, opts BatchOptions) *BatchReport {
	report := &BatchReport{
		RunID:   uuid.NewString(),
		Results: make([]BatchResult, len(paths)),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			report.Results[i] = e.extractFile(path, opts)
		}(i, path)
	}
	wg.Wait()

	failed := 0
	for _, r := range report.Results {
		if r.Err != nil {
			failed++
			log.Warn().Str("run", report.RunID).Str("source", r.Source).Err(r.Err).Msg("extraction failed")
		}
	}
	log.Info().Str("run", report.RunID).Int("sources", len(paths)).Int("failed", failed).Msg("batch complete")
	return report
}

func (e *Extractor) extractFile(path string, opts BatchOptions) BatchResult {
	res := BatchResult{Source: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}
	table, err := e.Extract(string(raw), opts.Options)
	if err != nil {
		res.Err = fmt.Errorf("extract %s: %w", path, err)
		return res
	}
	res.Table = table
	if opts.ToNumeric {
		res.Numeric = ToNumeric(e.cfg, table)
	}
	return res
}
