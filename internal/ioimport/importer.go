// Package ioimport orchestrates fixture imports: parse, normalize,
// resolve names against the directory, upsert fixtures and reconcile
// their tasks. One import is one transaction; a failed row never leaves
// half a batch behind.
package ioimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/match"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/parse"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

type importer struct {
	store   storage.Store
	cfg     *config.Config
	matcher *match.Matcher
	log     *slog.Logger
}

// New creates an Importer over the given store.
func New(
	store storage.Store, cfg *config.Config, log *slog.Logger,
) fixtures.Importer {
	return &importer{
		store:   store,
		cfg:     cfg,
		matcher: match.New(cfg.Match),
		log:     log,
	}
}

// Import applies one fixture source to an organization. Parsing happens
// inside the transaction because text sources need the managed team
// directory to orient "vs" lines.
func (imp *importer) Import(
	ctx context.Context, orgName string, data []byte, format parse.Format,
) (fixtures.ImportSummary, error) {
	// Reject inputs nothing can read before touching the store, so a
	// bad source leaves no organization row behind.
	if len(bytes.TrimSpace(data)) == 0 {
		return fixtures.ImportSummary{}, parse.EmptyInputError()
	}
	if format == parse.FormatAuto || format == "" {
		var err error
		format, err = parse.DetectFormat(data)
		if err != nil {
			return fixtures.ImportSummary{}, err
		}
	}

	org, err := imp.store.EnsureOrganization(ctx, orgName)
	if err != nil {
		return fixtures.ImportSummary{}, err
	}

	seasonYear := imp.cfg.Import.SeasonYearOrNow(time.Now())

	var summary fixtures.ImportSummary
	err = imp.store.InTx(ctx, org.ID, func(tx storage.Tx) error {
		res, err := newResolver(ctx, tx, imp.matcher, org.ID)
		if err != nil {
			return err
		}

		rows, err := parse.Parse(data, format, parse.Options{
			ManagedTeams: res.managedNames(),
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return parse.EmptyInputError()
		}

		eng, err := newEngine(ctx, tx, res)
		if err != nil {
			return err
		}

		for _, raw := range rows {
			row := normalize.Row(raw, seasonYear)
			if err := eng.apply(ctx, row, &summary); err != nil {
				return err
			}
		}

		summary.Notes = append(summary.Notes, res.notes...)
		return nil
	})
	if err != nil {
		// Pipeline errors already carry a code and message; a raw
		// storage failure gets wrapped so the operator knows the
		// batch rolled back whole.
		var gnErr *gn.Error
		if !errors.As(err, &gnErr) {
			err = RolledBackError(err)
		}
		return fixtures.ImportSummary{}, err
	}

	imp.log.Info("import finished",
		"org", org.Slug,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"unresolved", len(summary.Unresolved),
	)
	return summary, nil
}

func unresolved(s *fixtures.ImportSummary, row int, format string, args ...any) {
	s.Unresolved = append(s.Unresolved, fixtures.UnresolvedRow{
		Row:    row,
		Reason: fmt.Sprintf(format, args...),
	})
}

// sideLabel is used in summary notes.
func sideLabel(side schema.HomeAway) string {
	if side == schema.Home {
		return "home"
	}
	return "away"
}
