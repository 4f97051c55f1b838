// Command batch_extract runs the extractor over many filings, writing one CSV
// per source and optionally persisting results to Postgres. A run profile can
// be supplied as HJSON instead of flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	hjson "github.com/hjson/hjson-go/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dart_extractor/pkg/core/dart"
	"dart_extractor/pkg/core/report"
	"dart_extractor/pkg/core/store"
)

// RunProfile mirrors the flag surface for human-written HJSON profiles.
type RunProfile struct {
	Sources            []string `json:"sources"`
	OutDir             string   `json:"out_dir"`
	Numeric            bool     `json:"numeric"`
	PreferConsolidated bool     `json:"prefer_consolidated"`
	Workers            int      `json:"workers"`
	ConfigPath         string   `json:"config"`
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not found, using environment variables")
	}

	var (
		profilePath string
		outDir      string
		configPath  string
		numeric     bool
		preferCons  bool
		workers     int
		persist     bool
	)

	flag.StringVar(&profilePath, "profile", "", "Optional HJSON run profile (sources, out_dir, numeric, ...)")
	flag.StringVar(&outDir, "out", "out", "Directory for per-source CSV output")
	flag.StringVar(&configPath, "config", "", "Optional YAML vocabulary/threshold override file")
	flag.BoolVar(&numeric, "numeric", false, "Apply per-column numeric promotion to the CSV output")
	flag.BoolVar(&preferCons, "prefer-consolidated", true, "Prefer the consolidated statement variant")
	flag.IntVar(&workers, "workers", 4, "Extraction concurrency")
	flag.BoolVar(&persist, "store", false, "Persist results to Postgres (DATABASE_URL)")
	flag.Parse()

	profile := RunProfile{
		Sources:            flag.Args(),
		OutDir:             outDir,
		Numeric:            numeric,
		PreferConsolidated: preferCons,
		Workers:            workers,
		ConfigPath:         configPath,
	}
	if profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			log.Fatal().Err(err).Str("profile", profilePath).Msg("failed to read profile")
		}
		if err := hjson.Unmarshal(data, &profile); err != nil {
			log.Fatal().Err(err).Str("profile", profilePath).Msg("failed to parse profile")
		}
	}
	if len(profile.Sources) == 0 {
		log.Fatal().Msg("no sources: pass file paths as arguments or in the profile")
	}

	extractor := dart.NewExtractor()
	if profile.ConfigPath != "" {
		cfg, err := dart.LoadConfig(profile.ConfigPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", profile.ConfigPath).Msg("failed to load config")
		}
		extractor = dart.NewExtractorWithConfig(cfg)
	}

	var resultStore *store.ExtractionStore
	if persist {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to init store")
		}
		defer store.Close()
		resultStore = store.NewExtractionStore(store.GetPool())
	}

	if err := os.MkdirAll(profile.OutDir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", profile.OutDir).Msg("failed to create output directory")
	}

	batch := extractor.ExtractFiles(profile.Sources, dart.BatchOptions{
		Options:   dart.Options{PreferConsolidated: profile.PreferConsolidated},
		ToNumeric: profile.Numeric,
		Workers:   profile.Workers,
	})

	ok := 0
	for _, res := range batch.Results {
		if resultStore != nil {
			if err := resultStore.SaveResult(context.Background(), batch.RunID, res); err != nil {
				log.Warn().Err(err).Str("source", res.Source).Msg("failed to persist result")
			}
		}
		if res.Err != nil {
			continue
		}
		ok++
		outPath := csvPathFor(profile.OutDir, res.Source)
		f, err := os.Create(outPath)
		if err != nil {
			log.Warn().Err(err).Str("csv", outPath).Msg("failed to create CSV")
			continue
		}
		if res.Numeric != nil {
			err = report.WriteNumericCSV(f, res.Numeric)
		} else {
			err = report.WriteCSV(f, res.Table)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Warn().Err(err).Str("csv", outPath).Msg("failed to write CSV")
			continue
		}
		log.Info().Str("source", res.Source).Str("csv", outPath).Int("rows", len(res.Table.Rows)).Msg("extracted")
	}

	fmt.Printf("run %s: %d/%d sources extracted\n", batch.RunID, ok, len(batch.Results))
}

func csvPathFor(dir, source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_income_statement.csv")
}
