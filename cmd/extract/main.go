// Command extract pulls the income-statement table out of one DART filing
// and prints it as Markdown, optionally writing CSV and HTML artifacts.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dart_extractor/pkg/core/dart"
	"dart_extractor/pkg/core/report"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath  string
		configPath string
		csvPath    string
		htmlPath   string
		numeric    bool
		preferCons bool
		verbose    bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to the filing XML/HTML document")
	flag.StringVar(&configPath, "config", "", "Optional YAML vocabulary/threshold override file")
	flag.StringVar(&csvPath, "csv", "", "Optional path to write the table as CSV")
	flag.StringVar(&htmlPath, "html", "", "Optional path to write the table as an HTML report")
	flag.BoolVar(&numeric, "numeric", false, "Apply per-column numeric promotion to the CSV output")
	flag.BoolVar(&preferCons, "prefer-consolidated", true, "Prefer the consolidated statement variant")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if inputPath == "" {
		log.Fatal().Msg("missing -input")
	}

	extractor := dart.NewExtractor()
	if configPath != "" {
		cfg, err := dart.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", configPath).Msg("failed to load config")
		}
		extractor = dart.NewExtractorWithConfig(cfg)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("input", inputPath).Msg("failed to read document")
	}

	opts := dart.Options{PreferConsolidated: preferCons}
	table, err := extractor.Extract(string(raw), opts)
	if err != nil {
		log.Fatal().Err(err).Str("input", inputPath).Msg("extraction failed")
	}
	log.Debug().Int("rows", len(table.Rows)).Int("columns", len(table.Header)).Msg("table extracted")

	md := report.MarkdownTable(table)
	os.Stdout.WriteString(md)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			log.Fatal().Err(err).Str("csv", csvPath).Msg("failed to create CSV")
		}
		if numeric {
			err = report.WriteNumericCSV(f, dart.ToNumeric(extractor.Config(), table))
		} else {
			err = report.WriteCSV(f, table)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatal().Err(err).Str("csv", csvPath).Msg("failed to write CSV")
		}
		log.Info().Str("csv", csvPath).Msg("CSV written")
	}

	if htmlPath != "" {
		html, err := report.RenderHTML(md)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to render HTML")
		}
		if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
			log.Fatal().Err(err).Str("html", htmlPath).Msg("failed to write HTML")
		}
		log.Info().Str("html", htmlPath).Msg("HTML written")
	}
}
