// Package ioemail assembles fixture emails from a task's full context:
// fixture, team, pitch, contacts, maps and the organization's template.
package ioemail

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/maps"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

var unknownRe = regexp.MustCompile(`\{\{[a-z_]+\}\}`)

type assembler struct {
	store  storage.Store
	tasks  taskstore.Store
	mapper maps.Mapper
	cfg    *config.Config
}

var _ fixtures.Assembler = (*assembler)(nil)

// New creates an Assembler. tasks may be the dual-store syncer so that
// reading a task repairs a diverged secondary; when nil, tasks come
// straight from the database.
func New(
	store storage.Store, tasks taskstore.Store,
	mapper maps.Mapper, cfg *config.Config,
) fixtures.Assembler {
	return &assembler{store: store, tasks: tasks, mapper: mapper, cfg: cfg}
}

// Assemble builds the email for a task. A home_email task addresses
// the opposition's listed contact; an away_email task addresses the
// team's own coach, who forwards the details on.
func (a *assembler) Assemble(
	ctx context.Context, taskID string,
) (fixtures.Email, error) {
	task, err := a.loadTask(ctx, taskID)
	if err != nil {
		return fixtures.Email{}, err
	}
	if task == nil {
		return fixtures.Email{}, TaskContextError(taskID, "task not found")
	}

	fixture, err := a.store.Fixture(ctx, task.FixtureID)
	if err != nil {
		return fixtures.Email{}, err
	}
	if fixture == nil {
		return fixtures.Email{}, TaskContextError(taskID,
			"task points at a missing fixture")
	}
	team, err := a.store.Team(ctx, fixture.TeamID)
	if err != nil {
		return fixtures.Email{}, err
	}
	if team == nil {
		return fixtures.Email{}, TaskContextError(taskID,
			"fixture points at a missing team")
	}

	var pitch *schema.Pitch
	if fixture.PitchID != "" {
		if pitch, err = a.store.Pitch(ctx, fixture.PitchID); err != nil {
			return fixtures.Email{}, err
		}
	}

	opposition := fixture.OppositionName
	if opposition == "" {
		if opp, err := a.store.Team(ctx, fixture.OppositionTeamID); err != nil {
			return fixtures.Email{}, err
		} else if opp != nil {
			opposition = opp.Name
		}
	}

	contact, err := a.contact(ctx, task, fixture, opposition)
	if err != nil {
		return fixtures.Email{}, err
	}

	values := a.values(team, opposition, fixture, pitch, contact)

	tmpl := defaultTemplate
	custom, err := a.store.Template(
		ctx, fixture.OrganizationID, TemplateTypeFixture)
	if err != nil {
		return fixtures.Email{}, TemplateError(fixture.OrganizationID, err)
	}
	if custom != nil {
		tmpl = custom.Content
	}

	return fixtures.Email{
		Subject: subject(team.Name, opposition, fixture),
		Body:    strings.TrimSpace(render(tmpl, values)),
	}, nil
}

func (a *assembler) contact(
	ctx context.Context, task *schema.Task, fixture *schema.Fixture,
	opposition string,
) (*schema.TeamContact, error) {
	if task.TaskType == schema.TaskAwayEmail {
		coaches, err := a.store.CoachesByTeam(ctx, fixture.TeamID)
		if err != nil || len(coaches) == 0 {
			return nil, err
		}
		return &schema.TeamContact{
			ContactName: coaches[0].CoachName,
			Email:       coaches[0].Email,
			Phone:       coaches[0].Phone,
		}, nil
	}
	return a.store.TeamContactByName(ctx, fixture.OrganizationID, opposition)
}

func (a *assembler) loadTask(
	ctx context.Context, id string,
) (*schema.Task, error) {
	if a.tasks != nil {
		rec, err := a.tasks.Load(ctx, id)
		if err != nil || rec == nil {
			return nil, err
		}
		task := rec.Task()
		return &task, nil
	}
	return a.store.Task(ctx, id)
}

func (a *assembler) values(
	team *schema.Team, opposition string, f *schema.Fixture,
	pitch *schema.Pitch, contact *schema.TeamContact,
) map[string]string {
	values := map[string]string{
		"team":         team.Name,
		"opposition":   opposition,
		"date":         dateDisplay(f),
		"kickoff":      kickoffDisplay(f),
		"match_format": formatDisplay(f),
		"home_colours": a.cfg.Email.HomeColours,
		"referee_note": refereeDisplay(f, a.cfg.Email.RefereeNote),
		"instructions": f.Instructions,
		"signature":    a.cfg.Email.Signature,
	}

	if pitch != nil {
		parking := pitch.ParkingInfo
		if parking == "" {
			// Parking defaults to the play address.
			parking = pitch.Address
		}
		values["pitch"] = pitch.Name
		values["pitch_address"] = pitch.Address
		values["pitch_parking"] = parking
		values["pitch_toilets"] = pitch.ToiletInfo
		values["pitch_opening_notes"] = pitch.OpeningNotes
		values["pitch_warm_up_notes"] = pitch.WarmUpNotes
		values["pitch_special_instructions"] = pitch.SpecialInstructions

		refs := a.mapper.Render(pitch.Address, pitch.ParkingInfo)
		values["map_image"] = refs.ImageURL
		values["map_link"] = refs.LinkURL
		values["parking_map_image"] = refs.ParkingImageURL
	}

	if contact != nil {
		values["contact_name"] = contact.ContactName
		values["contact_detail"] = contactDetail(contact)
	}
	return values
}

func contactDetail(c *schema.TeamContact) string {
	var parts []string
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	return strings.Join(parts, ", ")
}

func dateDisplay(f *schema.Fixture) string {
	if f.KickoffAt == nil {
		return f.KickoffTimeText
	}
	return f.KickoffAt.Format("Monday 2 January 2006")
}

func kickoffDisplay(f *schema.Fixture) string {
	if f.KickoffAt == nil ||
		(f.KickoffAt.Hour() == 0 && f.KickoffAt.Minute() == 0) {
		return ""
	}
	return f.KickoffAt.Format("3:04pm")
}

// formatDisplay joins format, length and each-way into one line, the
// way the fixtures sheet describes a match.
func formatDisplay(f *schema.Fixture) string {
	var parts []string
	if f.MatchFormat != "" {
		parts = append(parts, f.MatchFormat)
	}
	if f.FixtureLength != "" {
		parts = append(parts, f.FixtureLength+" minutes")
	}
	if f.EachWay != "" {
		parts = append(parts, f.EachWay+" each way")
	}
	return strings.Join(parts, " - ")
}

func refereeDisplay(f *schema.Fixture, fallback string) string {
	if f.RefereeInfo != "" {
		return f.RefereeInfo
	}
	return fallback
}

// subject builds "Team vs Opposition - 14 September - Fixture Details";
// the date section drops out when the kickoff never parsed.
func subject(team, opposition string, f *schema.Fixture) string {
	if f.KickoffAt == nil {
		return fmt.Sprintf("%s vs %s - Fixture Details", team, opposition)
	}
	return fmt.Sprintf("%s vs %s - %s - Fixture Details",
		team, opposition, f.KickoffAt.Format("2 January"))
}
