package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/iofetch"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioimport"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/parse"
)

var (
	importOrg    string
	importFormat string
	importText   string
	importURLs   []string
)

// fixtureSource is one unit of input for an import run: a file, a
// pasted text block, or a downloaded page.
type fixtureSource struct {
	name   string
	data   []byte
	format parse.Format
}

func getImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import fixtures from files, pasted text, or league pages",
		Long: `Import fixture sources into the organization's fixture list.

Each source is applied atomically: either every row of the source lands
or none do. Re-importing the same source is safe; unchanged fixtures are
skipped and manual task progress survives.

Sources can be:
  - XLSX or CSV files given as arguments
  - a pasted block of text via --text
  - league fixture pages downloaded via --url

Examples:
  fixtures import --org "Withdean Youth FC" fixtures.xlsx
  fixtures import --org "Withdean Youth FC" u9.csv u13.csv
  fixtures import --org "Withdean Youth FC" --text "$(pbpaste)"
  fixtures import --org "Withdean Youth FC" --url https://league.example.org/u9.html`,
		RunE: runImport,
	}

	cmd.Flags().StringVarP(&importOrg, "org", "o", "",
		"organization name (required)")
	cmd.Flags().StringVarP(&importFormat, "format", "f", "auto",
		"file format: auto, xlsx, csv or text")
	cmd.Flags().StringVarP(&importText, "text", "t", "",
		"pasted fixture text to import")
	cmd.Flags().StringSliceVarP(&importURLs, "url", "u", nil,
		"league fixtures page URL (repeatable)")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	format, err := importFileFormat()
	if err != nil {
		return fail(err)
	}

	sources, err := collectSources(ctx, args, format)
	if err != nil {
		return fail(err)
	}
	if len(sources) == 0 {
		return fail(fmt.Errorf("nothing to import: give files, --text or --url"))
	}

	store, op, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	imp := ioimport.New(store, cfg, log)

	runID := uuid.New().String()
	log.Info("Starting import",
		"run_id", runID,
		"org", importOrg,
		"sources", len(sources),
	)

	start := time.Now()
	bar := pb.Full.Start(len(sources))
	bar.Set("prefix", "Importing sources ")
	bar.Set(pb.CleanOnFinish, true)

	var (
		mu    sync.Mutex
		total fixtures.ImportSummary
	)

	g, gCtx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			summary, err := imp.Import(gCtx, importOrg, src.data, src.format)
			if err != nil {
				return fmt.Errorf("%s: %w", src.name, err)
			}

			mu.Lock()
			total.Add(summary)
			mu.Unlock()

			log.Info("Source imported",
				"run_id", runID,
				"source", src.name,
				"created", summary.Created,
				"updated", summary.Updated,
				"skipped", summary.Skipped,
			)
			bar.Increment()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		bar.Finish()
		return fail(err)
	}
	bar.Finish()

	printSummary(total, len(sources), time.Since(start))
	return nil
}

func importFileFormat() (parse.Format, error) {
	switch f := parse.Format(importFormat); f {
	case parse.FormatAuto, parse.FormatXLSX, parse.FormatCSV, parse.FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (use auto, xlsx, csv or text)",
			importFormat)
	}
}

// collectSources gathers files, pasted text, and downloaded pages into
// a uniform list of import sources.
func collectSources(
	ctx context.Context, files []string, format parse.Format,
) ([]fixtureSource, error) {
	var sources []fixtureSource

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, fixtureSource{
			name: path, data: data, format: format,
		})
	}

	if importText != "" {
		sources = append(sources, fixtureSource{
			name: "pasted text", data: []byte(importText),
			format: parse.FormatText,
		})
	}

	if len(importURLs) > 0 {
		fetcher := iofetch.New(cfg.Import.FetchTimeout)
		for _, url := range importURLs {
			data, err := fetcher.Fetch(ctx, url)
			if err != nil {
				return nil, err
			}
			sources = append(sources, fixtureSource{
				name: url, data: data, format: parse.FormatText,
			})
		}
	}

	return sources, nil
}

func printSummary(s fixtures.ImportSummary, sources int, elapsed time.Duration) {
	fmt.Printf("\nImported %s source(s) in %s\n",
		humanize.Comma(int64(sources)), gnfmt.TimeString(elapsed.Seconds()))
	fmt.Printf("  created: %s\n", humanize.Comma(int64(s.Created)))
	fmt.Printf("  updated: %s\n", humanize.Comma(int64(s.Updated)))
	fmt.Printf("  skipped: %s\n", humanize.Comma(int64(s.Skipped)))

	if len(s.Unresolved) > 0 {
		fmt.Printf("\nRows needing review (%d):\n", len(s.Unresolved))
		for _, u := range s.Unresolved {
			fmt.Printf("  row %d: %s\n", u.Row, u.Reason)
		}
	}

	if len(s.Notes) > 0 {
		fmt.Println("\nNotes:")
		for _, n := range s.Notes {
			fmt.Printf("  - %s\n", n)
		}
	}
}
