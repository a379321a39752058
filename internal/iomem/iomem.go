// Package iomem is an in-memory storage.Store. It backs the pipeline
// tests and dry runs; data lives for the process only. Rollback works
// by snapshotting all maps before a transaction and restoring them when
// the callback errors.
package iomem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gnames/gnuuid"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

type Store struct {
	mu sync.Mutex

	orgs      map[string]schema.Organization // by id
	teams     map[string]schema.Team
	pitches   map[string]schema.Pitch
	aliases   map[string]schema.PitchAlias
	fixtures  map[string]schema.Fixture
	tasks     map[string]schema.Task
	contacts  map[string]schema.TeamContact
	coaches   map[string]schema.TeamCoach
	templates map[string]schema.EmailTemplate
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		orgs:      make(map[string]schema.Organization),
		teams:     make(map[string]schema.Team),
		pitches:   make(map[string]schema.Pitch),
		aliases:   make(map[string]schema.PitchAlias),
		fixtures:  make(map[string]schema.Fixture),
		tasks:     make(map[string]schema.Task),
		contacts:  make(map[string]schema.TeamContact),
		coaches:   make(map[string]schema.TeamCoach),
		templates: make(map[string]schema.EmailTemplate),
	}
}

func (s *Store) InTx(
	ctx context.Context, orgID string, fn func(tx storage.Tx) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	tx := &memTx{store: s, orgID: orgID}
	if err := fn(tx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) EnsureOrganization(
	_ context.Context, name string,
) (*schema.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := Slugify(name)
	for _, org := range s.orgs {
		if org.Slug == slug {
			org := org
			return &org, nil
		}
	}
	org := schema.Organization{
		ID:        gnuuid.New("org|" + slug).String(),
		Name:      strings.TrimSpace(name),
		Slug:      slug,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.orgs[org.ID] = org
	return &org, nil
}

func (s *Store) Task(_ context.Context, id string) (*schema.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *Store) Tasks(
	_ context.Context, filter storage.TaskFilter,
) ([]schema.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []schema.Task
	for _, t := range s.tasks {
		if filter.OrganizationID != "" &&
			t.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.TaskType != filter.Type {
			continue
		}
		if !filter.IncludeArchived && t.IsArchived {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out)
	return out, nil
}

func (s *Store) SaveTask(_ context.Context, t *schema.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saveTask(s, t)
	return nil
}

func (s *Store) Fixture(_ context.Context, id string) (*schema.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fixtures[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (s *Store) Team(_ context.Context, id string) (*schema.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *Store) Pitch(_ context.Context, id string) (*schema.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pitches[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) TeamContactByName(
	_ context.Context, orgID, teamName string,
) (*schema.TeamContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalize.Key(teamName)
	for _, c := range s.contacts {
		if c.OrganizationID == orgID && normalize.Key(c.TeamName) == key {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) CoachesByTeam(
	_ context.Context, teamID string,
) ([]schema.TeamCoach, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []schema.TeamCoach
	for _, c := range s.coaches {
		if c.TeamID == teamID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) Template(
	_ context.Context, orgID, templateType string,
) (*schema.EmailTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.templates {
		if t.OrganizationID == orgID && t.TemplateType == templateType {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

// Organizations lists every stored organization.
func (s *Store) Organizations() []schema.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]schema.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		out = append(out, org)
	}
	return out
}

// SeedContact inserts a team contact, for tests and fixtures setup.
func (s *Store) SeedContact(c schema.TeamContact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = gnuuid.New("contact|" + c.OrganizationID + "|" + c.TeamName).String()
	}
	s.contacts[c.ID] = c
}

// SeedCoach inserts a coach record.
func (s *Store) SeedCoach(c schema.TeamCoach) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = gnuuid.New("coach|" + c.TeamID + "|" + c.CoachName).String()
	}
	s.coaches[c.ID] = c
}

// SeedTemplate inserts an email template.
func (s *Store) SeedTemplate(t schema.EmailTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = gnuuid.New("tmpl|" + t.OrganizationID + "|" + t.TemplateType).String()
	}
	s.templates[t.ID] = t
}

// Slugify reduces an organization name to its slug form.
func Slugify(name string) string {
	return strings.ReplaceAll(normalize.Key(name), " ", "-")
}

type snapshot struct {
	teams     map[string]schema.Team
	pitches   map[string]schema.Pitch
	aliases   map[string]schema.PitchAlias
	fixtures  map[string]schema.Fixture
	tasks     map[string]schema.Task
	contacts  map[string]schema.TeamContact
	coaches   map[string]schema.TeamCoach
	templates map[string]schema.EmailTemplate
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		teams:     cloneMap(s.teams),
		pitches:   cloneMap(s.pitches),
		aliases:   cloneMap(s.aliases),
		fixtures:  cloneMap(s.fixtures),
		tasks:     cloneMap(s.tasks),
		contacts:  cloneMap(s.contacts),
		coaches:   cloneMap(s.coaches),
		templates: cloneMap(s.templates),
	}
}

func (s *Store) restore(snap snapshot) {
	s.teams = snap.teams
	s.pitches = snap.pitches
	s.aliases = snap.aliases
	s.fixtures = snap.fixtures
	s.tasks = snap.tasks
	s.contacts = snap.contacts
	s.coaches = snap.coaches
	s.templates = snap.templates
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func saveTask(s *Store, t *schema.Task) {
	now := time.Now()
	if _, ok := s.tasks[t.ID]; !ok {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	s.tasks[t.ID] = *t
}

func sortTasks(tasks []schema.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}
