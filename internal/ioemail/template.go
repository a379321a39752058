package ioemail

import "strings"

// placeholderUnknown replaces any placeholder the context could not
// fill. A typo in a custom template degrades to this marker instead of
// failing the whole email.
const placeholderUnknown = "[to be confirmed]"

// TemplateTypeFixture is the template_type key for fixture emails.
const TemplateTypeFixture = "fixture_email"

// defaultTemplate is the built-in fixture email used when an
// organization has no custom template stored.
const defaultTemplate = `In the event of any issues impacting your fixture please communicate directly with your opposition manager - This email will NOT be monitored

Dear Fixtures Secretary

Please find details of your upcoming fixture at {{team}}

Please confirm receipt: Please copy the relevant {{team}} manager to your response.

Any issues: Managers please contact your opposition directly using the contact details supplied if you have any issues that will impact your attendance (ideally by phone call or text message).

FIXTURE DETAILS

Date: {{date}}
Kick-off Time: {{kickoff}}
Pitch Location: {{pitch}}
Home Colours: {{home_colours}}
Match Format: {{match_format}}
Referees: {{referee_note}}

VENUE INFORMATION

Address: {{pitch_address}}
Parking: {{pitch_parking}}
Toilets: {{pitch_toilets}}
Arrival & Setup: {{pitch_opening_notes}}
Warm-up: {{pitch_warm_up_notes}}

{{pitch_special_instructions}}

Map: {{map_link}}
{{map_image}}

CONTACT INFORMATION

Contact: {{contact_name}}
Details: {{contact_detail}}

{{instructions}}

{{signature}}`

// render substitutes {{placeholder}} markers with context values.
// Placeholders without a value, including misspelled ones, become the
// neutral marker.
func render(template string, values map[string]string) string {
	out := template
	for field, value := range values {
		if value == "" {
			value = placeholderUnknown
		}
		out = strings.ReplaceAll(out, "{{"+field+"}}", value)
	}
	return unknownRe.ReplaceAllString(out, placeholderUnknown)
}
