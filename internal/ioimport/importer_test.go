package ioimport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/iomem"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/parse"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

const testOrg = "Withdean Youth FC"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Import.SeasonYear = 2025
	return cfg
}

func newTestImporter(store storage.Store) fixtures.Importer {
	return New(store, testConfig(), testLogger())
}

func orgID(t *testing.T, store storage.Store) string {
	t.Helper()
	org, err := store.EnsureOrganization(context.Background(), testOrg)
	require.NoError(t, err)
	return org.ID
}

func allFixtures(t *testing.T, store storage.Store) []schema.Fixture {
	t.Helper()
	var out []schema.Fixture
	err := store.InTx(context.Background(), orgID(t, store),
		func(tx storage.Tx) error {
			var err error
			out, err = tx.Fixtures(context.Background())
			return err
		})
	require.NoError(t, err)
	return out
}

func allTeams(t *testing.T, store storage.Store) []schema.Team {
	t.Helper()
	var out []schema.Team
	err := store.InTx(context.Background(), orgID(t, store),
		func(tx storage.Tx) error {
			var err error
			out, err = tx.Teams(context.Background())
			return err
		})
	require.NoError(t, err)
	return out
}

func activeTasks(t *testing.T, store storage.Store) []schema.Task {
	t.Helper()
	tasks, err := store.Tasks(context.Background(), storage.TaskFilter{
		OrganizationID: orgID(t, store),
	})
	require.NoError(t, err)
	return tasks
}

const csvHeader = "Team,Opposition,Home/Away,Venue,Kick Off\n"

func TestImportCreatesFixturesAndTasks(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)

	data := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n" +
		"Withdean Youth U13,Rottingdean U13,A,,05/10/25 09:30\n" +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n"

	summary, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Unresolved)

	fxs := allFixtures(t, store)
	require.Len(t, fxs, 2)

	tasks := activeTasks(t, store)
	require.Len(t, tasks, 2)

	byType := map[schema.TaskType]schema.Task{}
	for _, task := range tasks {
		byType[task.TaskType] = task
	}
	require.Contains(t, byType, schema.TaskHomeEmail)
	require.Contains(t, byType, schema.TaskAwayEmail)
	assert.Equal(t, schema.StatusPending, byType[schema.TaskHomeEmail].Status)
	assert.Equal(t, schema.StatusWaiting, byType[schema.TaskAwayEmail].Status)

	// The home fixture got its pitch resolved; the away one has none.
	var home schema.Fixture
	for _, f := range fxs {
		if f.HomeAway == schema.Home {
			home = f
		}
	}
	assert.NotEmpty(t, home.PitchID)
	require.NotNil(t, home.KickoffAt)
	assert.Equal(t, "2025-09-28", home.KickoffAt.Format("2006-01-02"))
}

func TestImportIdempotent(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)

	data := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n" +
		"Withdean Youth U13,Rottingdean U13,A,,05/10/25 09:30\n"

	_, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	firstTasks := activeTasks(t, store)
	require.Len(t, firstTasks, 2)

	summary, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 2, summary.Skipped)

	assert.Len(t, allFixtures(t, store), 2)

	secondTasks := activeTasks(t, store)
	require.Len(t, secondTasks, 2)
	for i := range firstTasks {
		assert.Equal(t, firstTasks[i].ID, secondTasks[i].ID)
	}
}

func TestImportPreservesTaskStatus(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	data := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n"

	_, err := imp.Import(ctx, testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	tasks := activeTasks(t, store)
	require.Len(t, tasks, 1)
	task := tasks[0]
	task.Status = schema.StatusInProgress
	require.NoError(t, store.SaveTask(ctx, &task))

	_, err = imp.Import(ctx, testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	after := activeTasks(t, store)
	require.Len(t, after, 1)
	assert.Equal(t, task.ID, after[0].ID)
	assert.Equal(t, schema.StatusInProgress, after[0].Status)
}

func TestImportFlagFlip(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	home := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n"
	away := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,A,,28/09/25 10:00\n"

	_, err := imp.Import(ctx, testOrg, []byte(home), parse.FormatCSV)
	require.NoError(t, err)

	created := allFixtures(t, store)
	require.Len(t, created, 1)
	homeTasks := activeTasks(t, store)
	require.Len(t, homeTasks, 1)
	assert.Equal(t, schema.TaskHomeEmail, homeTasks[0].TaskType)

	summary, err := imp.Import(ctx, testOrg, []byte(away), parse.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Created)
	require.Len(t, summary.Notes, 1)
	assert.Contains(t, summary.Notes[0], "changed to away")

	// Same fixture, corrected flag.
	fxs := allFixtures(t, store)
	require.Len(t, fxs, 1)
	assert.Equal(t, created[0].ID, fxs[0].ID)
	assert.Equal(t, schema.Away, fxs[0].HomeAway)

	// The home task is archived, replaced by a waiting away task.
	active := activeTasks(t, store)
	require.Len(t, active, 1)
	assert.Equal(t, schema.TaskAwayEmail, active[0].TaskType)
	assert.Equal(t, schema.StatusWaiting, active[0].Status)

	all, err := store.Tasks(ctx, storage.TaskFilter{
		OrganizationID: orgID(t, store), IncludeArchived: true,
	})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Flip back. The archived home task stays archived; a fresh home
	// task with a new identity appears.
	_, err = imp.Import(ctx, testOrg, []byte(home), parse.FormatCSV)
	require.NoError(t, err)

	active = activeTasks(t, store)
	require.Len(t, active, 1)
	assert.Equal(t, schema.TaskHomeEmail, active[0].TaskType)
	assert.Equal(t, schema.StatusPending, active[0].Status)
	assert.NotEqual(t, homeTasks[0].ID, active[0].ID)
}

func TestImportFuzzyMatchMergesSpellings(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	first := csvHeader +
		"Withdean Youth U12,Rottingdean FC U12 Blues,H,Preston Park,28/09/25 10:00\n"
	second := csvHeader +
		"Withdean Youth U12,Rottingdean U12 Blues,H,Preston Park,05/10/25 10:00\n"

	_, err := imp.Import(ctx, testOrg, []byte(first), parse.FormatCSV)
	require.NoError(t, err)
	require.Len(t, allTeams(t, store), 2)

	_, err = imp.Import(ctx, testOrg, []byte(second), parse.FormatCSV)
	require.NoError(t, err)

	// The respelled opposition resolved to the existing team.
	teams := allTeams(t, store)
	assert.Len(t, teams, 2)

	fxs := allFixtures(t, store)
	require.Len(t, fxs, 2)
	assert.Equal(t, fxs[0].OppositionTeamID, fxs[1].OppositionTeamID)
}

func TestImportBelowThresholdStaysDistinct(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	data := csvHeader +
		"Withdean Youth U12,Rottingdean U12,H,Preston Park,28/09/25 10:00\n" +
		"Withdean Youth U14,Rottingdean U14,H,Preston Park,28/09/25 12:00\n"

	_, err := imp.Import(ctx, testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	// Different age groups never merge: two managed teams plus two
	// opposition teams.
	assert.Len(t, allTeams(t, store), 4)
}

func TestImportAmbiguousCreatesNewWithNotes(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	setup := csvHeader +
		"Withdean Youth U12,Withdean Youth Hawks Red,H,Preston Park,28/09/25 10:00\n" +
		"Withdean Youth U12,Withdean Youth Hawks Blue,H,Preston Park,05/10/25 10:00\n"
	_, err := imp.Import(ctx, testOrg, []byte(setup), parse.FormatCSV)
	require.NoError(t, err)
	require.Len(t, allTeams(t, store), 3)

	ambiguous := csvHeader +
		"Withdean Youth U12,Withdean Youth Hawks,H,Preston Park,12/10/25 10:00\n"
	summary, err := imp.Import(ctx, testOrg, []byte(ambiguous), parse.FormatCSV)
	require.NoError(t, err)

	// Too close to call between Red and Blue: a new team appears and
	// the summary says why.
	assert.Len(t, allTeams(t, store), 4)
	require.NotEmpty(t, summary.Notes)
	assert.Contains(t, summary.Notes[0], "kept separate from existing")
}

func TestImportPitchAliasResolvesVenue(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	seed := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n"
	_, err := imp.Import(ctx, testOrg, []byte(seed), parse.FormatCSV)
	require.NoError(t, err)

	fxs := allFixtures(t, store)
	require.Len(t, fxs, 1)
	pitchID := fxs[0].PitchID
	require.NotEmpty(t, pitchID)

	org := orgID(t, store)
	err = store.InTx(ctx, org, func(tx storage.Tx) error {
		return AddPitchAlias(ctx, tx, org, "East Brighton Park 3G", pitchID)
	})
	require.NoError(t, err)

	// The alias spelling shares almost nothing with the pitch name, so
	// only the alias table can connect them.
	next := csvHeader +
		"Withdean Youth U9 Red,Rottingdean U9,H,East Brighton Park 3G,12/10/25 10:00\n"
	_, err = imp.Import(ctx, testOrg, []byte(next), parse.FormatCSV)
	require.NoError(t, err)

	fxs = allFixtures(t, store)
	require.Len(t, fxs, 2)
	for _, f := range fxs {
		assert.Equal(t, pitchID, f.PitchID)
	}
}

func TestImportVenueFilledLater(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	bare := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,,28/09/25 10:00\n"
	withVenue := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n"

	_, err := imp.Import(ctx, testOrg, []byte(bare), parse.FormatCSV)
	require.NoError(t, err)

	created := allFixtures(t, store)
	require.Len(t, created, 1)
	assert.Empty(t, created[0].PitchID)

	tasks := activeTasks(t, store)
	require.Len(t, tasks, 1)
	task := tasks[0]
	task.Status = schema.StatusInProgress
	require.NoError(t, store.SaveTask(ctx, &task))

	summary, err := imp.Import(ctx, testOrg, []byte(withVenue), parse.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	fxs := allFixtures(t, store)
	require.Len(t, fxs, 1)
	assert.Equal(t, created[0].ID, fxs[0].ID)
	assert.NotEmpty(t, fxs[0].PitchID)
	require.NotNil(t, fxs[0].KickoffAt)
	assert.True(t, created[0].KickoffAt.Equal(*fxs[0].KickoffAt))

	after := activeTasks(t, store)
	require.Len(t, after, 1)
	assert.Equal(t, schema.StatusInProgress, after[0].Status)
}

func TestImportUnparsableKickoffKeepsRow(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)

	data := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,TBC\n"

	summary, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	require.Len(t, summary.Unresolved, 1)
	assert.Contains(t, summary.Unresolved[0].Reason, "TBC")

	fxs := allFixtures(t, store)
	require.Len(t, fxs, 1)
	assert.Nil(t, fxs[0].KickoffAt)
	assert.Equal(t, "TBC", fxs[0].KickoffTimeText)
}

func TestImportTextAfterDirectoryExists(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)
	ctx := context.Background()

	seed := csvHeader +
		"Withdean Youth U9 Red,Saltdean United U9,H,Stanley Deason 3G,21/09/25 10:00\n"
	_, err := imp.Import(ctx, testOrg, []byte(seed), parse.FormatCSV)
	require.NoError(t, err)

	// An FA full-time line: the managed team appears on the away side,
	// so the fixture is away.
	text := "28/09/25 10:00 Hassocks Juniors U9 Robins vs Withdean Youth U9 Red Hassocks Rec Under 9 Group B\n"
	summary, err := imp.Import(ctx, testOrg, []byte(text), parse.FormatText)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)

	fxs := allFixtures(t, store)
	require.Len(t, fxs, 2)

	var latest schema.Fixture
	for _, f := range fxs {
		if f.OppositionName == "Hassocks Juniors U9 Robins" {
			latest = f
		}
	}
	require.NotEmpty(t, latest.ID)
	assert.Equal(t, schema.Away, latest.HomeAway)
}

func TestImportEmptyInput(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)

	_, err := imp.Import(
		context.Background(), testOrg, []byte("\n\n"), parse.FormatText)
	assert.Error(t, err)
	assert.Empty(t, allFixtures(t, store))
}

func TestImportPunctuationOnlyNamesSkipped(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)

	data := csvHeader +
		"---,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n" +
		"Withdean Youth U9 Red,???,H,Stanley Deason 3G,28/09/25 10:00\n" +
		"Withdean Youth U13,Rottingdean U13,A,,05/10/25 09:30\n"

	summary, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	// Names made of punctuation alone skip with a warning; the good
	// row still lands.
	assert.Equal(t, 1, summary.Created)
	require.Len(t, summary.Unresolved, 2)
	assert.Contains(t, summary.Unresolved[0].Reason, "---")
	assert.Contains(t, summary.Unresolved[1].Reason, "???")
	assert.Len(t, allFixtures(t, store), 1)
}

func TestImportUnrecognizedInputWritesNothing(t *testing.T) {
	store := iomem.New()
	imp := newTestImporter(store)

	_, err := imp.Import(context.Background(), testOrg,
		[]byte("%PDF-1.4 binary soup"), parse.FormatAuto)
	require.Error(t, err)

	// A rejected source must not leave an organization row behind.
	assert.Empty(t, store.Organizations())
}

// failingStore lets one SaveFixture call through and fails the next,
// to observe transactional rollback.
type failingStore struct {
	*iomem.Store
	remaining int
}

func (f *failingStore) InTx(
	ctx context.Context, orgID string, fn func(tx storage.Tx) error,
) error {
	return f.Store.InTx(ctx, orgID, func(tx storage.Tx) error {
		return fn(&failingTx{Tx: tx, store: f})
	})
}

type failingTx struct {
	storage.Tx
	store *failingStore
}

func (t *failingTx) SaveFixture(ctx context.Context, f *schema.Fixture) error {
	if t.store.remaining == 0 {
		return errors.New("disk full")
	}
	t.store.remaining--
	return t.Tx.SaveFixture(ctx, f)
}

func TestImportRollsBackOnError(t *testing.T) {
	mem := iomem.New()
	store := &failingStore{Store: mem, remaining: 1}
	imp := newTestImporter(store)

	data := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n" +
		"Withdean Youth U13,Rottingdean U13,A,,05/10/25 09:30\n"

	_, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ImportAtomicityError, gnErr.Code)

	// The first row's fixture, teams and task rolled back with the rest.
	assert.Empty(t, allFixtures(t, mem))
	assert.Empty(t, allTeams(t, mem))
	assert.Empty(t, activeTasks(t, mem))
}
