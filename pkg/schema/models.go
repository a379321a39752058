// Package schema provides database models for the fixtures pipeline.
package schema

import (
	"time"
)

// HomeAway marks which side of a fixture the managed team plays.
type HomeAway string

const (
	Home HomeAway = "Home"
	Away HomeAway = "Away"
)

// TaskType identifies the communication obligation a task represents.
type TaskType string

const (
	// TaskHomeEmail: send fixture details to the opposition.
	TaskHomeEmail TaskType = "home_email"
	// TaskAwayEmail: await the opposition email and forward it on.
	TaskAwayEmail TaskType = "away_email"
)

// ForSide returns the task type implied by a fixture's home/away flag.
func ForSide(side HomeAway) TaskType {
	if side == Home {
		return TaskHomeEmail
	}
	return TaskAwayEmail
}

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusWaiting    TaskStatus = "waiting"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// CanTransition reports whether a manual status change is allowed.
// The workflow only moves forward: pending → waiting → in_progress →
// completed. Imports never call this; re-imports leave status alone.
func (s TaskStatus) CanTransition(to TaskStatus) bool {
	order := map[TaskStatus]int{
		StatusPending:    0,
		StatusWaiting:    1,
		StatusInProgress: 2,
		StatusCompleted:  3,
	}
	from, ok1 := order[s]
	next, ok2 := order[to]
	return ok1 && ok2 && next > from
}

// InitialStatus returns the status a freshly derived task starts in.
// Home tasks start pending (we owe the email); away tasks start waiting
// (the opposition owes us one).
func (t TaskType) InitialStatus() TaskStatus {
	if t == TaskAwayEmail {
		return StatusWaiting
	}
	return StatusPending
}

// Organization scopes every other record. Clubs never see each other's
// directories or fixtures.
type Organization struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Slug      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Team is a directory entry for a managed or opposition team.
// NameKey is the normalized form used for identity; it is unique within
// an organization.
type Team struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OrganizationID string `gorm:"type:uuid;not null;uniqueIndex:idx_team_org_key,priority:1"`
	Name           string `gorm:"size:255;not null"`
	NameKey        string `gorm:"size:255;not null;uniqueIndex:idx_team_org_key,priority:2"`
	IsManaged      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Pitch is a venue directory entry. ParkingInfo defaults to the play
// address when empty; whether parking differs is always derived by
// comparing the two addresses, never stored.
type Pitch struct {
	ID                  string `gorm:"type:uuid;primaryKey"`
	OrganizationID      string `gorm:"type:uuid;not null;uniqueIndex:idx_pitch_org_key,priority:1"`
	Name                string `gorm:"size:255;not null"`
	NameKey             string `gorm:"size:255;not null;uniqueIndex:idx_pitch_org_key,priority:2"`
	Address             string `gorm:"type:text"`
	ParkingInfo         string `gorm:"type:text"`
	ToiletInfo          string `gorm:"type:text"`
	OpeningNotes        string `gorm:"type:text"`
	WarmUpNotes         string `gorm:"type:text"`
	SpecialInstructions string `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PitchAlias links an alternate spelling to a pitch, consulted before
// any fuzzy matching.
type PitchAlias struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OrganizationID string `gorm:"type:uuid;not null;uniqueIndex:idx_alias_org_key,priority:1"`
	AliasKey       string `gorm:"size:255;not null;uniqueIndex:idx_alias_org_key,priority:2"`
	PitchID        string `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
}

// Fixture is one scheduled match for a managed team.
// KickoffTimeText keeps whatever the source said, so unparsable times
// survive for manual follow-up.
type Fixture struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	OrganizationID   string `gorm:"type:uuid;not null;index"`
	TeamID           string `gorm:"type:uuid;not null;index"`
	OppositionTeamID string `gorm:"type:uuid"`
	OppositionName   string `gorm:"size:255"`
	HomeAway         HomeAway   `gorm:"size:10;not null"`
	PitchID          string     `gorm:"type:uuid"`
	KickoffAt        *time.Time `gorm:"index"`
	KickoffTimeText  string     `gorm:"size:100"`
	MatchFormat      string     `gorm:"size:100"`
	FixtureLength    string     `gorm:"size:50"`
	EachWay          string     `gorm:"size:50"`
	RefereeInfo      string     `gorm:"size:255"`
	Instructions     string     `gorm:"type:text"`
	HomeManager      string     `gorm:"size:255"`
	FixturesSec      string     `gorm:"size:255"`
	ManagerMobile    string     `gorm:"size:50"`
	Contact1         string     `gorm:"size:255"`
	Contact2         string     `gorm:"size:255"`
	Contact3         string     `gorm:"size:255"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Task is the workflow unit derived from a fixture.
type Task struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	OrganizationID string     `gorm:"type:uuid;not null;index"`
	FixtureID      string     `gorm:"type:uuid;not null;index"`
	TaskType       TaskType   `gorm:"size:50;not null"`
	Status         TaskStatus `gorm:"size:50;not null"`
	Notes          string     `gorm:"type:text"`
	CompletedAt    *time.Time
	IsArchived     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TeamContact holds contact details for an external team, keyed by the
// team's name within an organization.
type TeamContact struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OrganizationID string `gorm:"type:uuid;not null;uniqueIndex:idx_contact_org_team,priority:1"`
	TeamName       string `gorm:"size:255;not null;uniqueIndex:idx_contact_org_team,priority:2"`
	ContactName    string `gorm:"size:255"`
	Email          string `gorm:"size:255"`
	Phone          string `gorm:"size:50"`
	Notes          string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TeamCoach holds contact details for internal coaching staff.
type TeamCoach struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OrganizationID string `gorm:"type:uuid;not null;index"`
	TeamID         string `gorm:"type:uuid;not null;index"`
	CoachName      string `gorm:"size:255;not null"`
	Email          string `gorm:"size:255"`
	Phone          string `gorm:"size:50"`
	Role           string `gorm:"size:100;default:Coach"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmailTemplate is an organization's custom template for a template
// type; absent rows fall back to the built-in default.
type EmailTemplate struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OrganizationID string `gorm:"type:uuid;not null;uniqueIndex:idx_tmpl_org_type,priority:1"`
	TemplateType   string `gorm:"size:50;not null;uniqueIndex:idx_tmpl_org_type,priority:2"`
	Name           string `gorm:"size:255;not null"`
	Content        string `gorm:"type:text;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
