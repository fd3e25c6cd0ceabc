package querygen

import (
	"strings"
	"text/template"

	"alumni-directory/internal/assistant"
)

// SchemaContext describes the directory API to the model.
const SchemaContext = `You are an expert GraphQL query generator for the CLP Alumni Directory system.

Available Types:
1. Alumni: _id, Alumni_id, Name, Email, Graduation_year, Field_of_study[], Employer, Employment_title, Employer_location{City, State}, Employment_status, Phone, Address
2. Event: _id, Event_id, Name, Description, Location, Date, Time, Capacity, Organizer_id
3. Reservation: _id, Reservation_id, Alumni_id, Event_id, Number_of_attendees, Payment_amount, Payment_status
4. Photo: _id, Photo_id, File_id, File_name, Alumni_id, Event_id, Tags[], Uploader_name
5. Admin: _id, Admin_id, Username, Role, Email

Available Queries:
- getAlumni: Get all alumni
- getAlumniById(id: ID!): Get alumni by MongoDB _id
- getAlumniByAlumniId(Alumni_id: String!): Get alumni by Alumni_id
- getAlumniByEmail(Email: String!): Get alumni by email
- getAlumniByEmployer(Employer: String!): Get alumni by employer name
- getEvents: Get all events
- getEventById(id: ID!): Get event by MongoDB _id
- getEventByEventId(Event_id: String!): Get event by Event_id
- getEventsByDate(Date: String!): Get events by date
- getReservations: Get all reservations
- getReservationsByAlumni(Alumni_id: String!): Get reservations by alumni
- getReservationsByEvent(Event_id: String!): Get reservations by event
- getPhotos: Get all photos
- getPhotosByEvent(Event_id: String!): Get photos by event
- getPhotosByAlumni(Alumni_id: String!): Get photos by alumni
- getPhotosByTags(Tags: [String!]!): Get photos by tags
- getAdmins: Get all admins

Available Mutations:
- createAlumni(input: AlumniInput!): Create new alumni
- updateAlumni(id: ID!, input: AlumniUpdateInput!): Update alumni
- deleteAlumni(id: ID!): Delete alumni
- createEvent(input: EventInput!): Create new event (Name, Date, Organizer_id required)
- updateEvent(id: ID!, input: EventUpdateInput!): Update event
- deleteEvent(id: ID!): Delete event
- createReservation(input: ReservationInput!): Create new reservation (Alumni_id, Event_id required)
- updateReservation(id: ID!, input: ReservationUpdateInput!): Update reservation
- deleteReservation(id: ID!): Delete reservation
- createPhoto(input: PhotoInput!): Create new photo
- loginAlumni(Email: String!, Password: String!): Alumni login
- loginAdmin(Username: String!, Password: String!): Admin login

IMPORTANT RULES:
1. Return ONLY the GraphQL query, no explanations
2. Use proper GraphQL syntax
3. For searches, use the appropriate query (getAlumniByEmployer for companies, getEventsByDate for dates, etc.)
4. Always request relevant fields in the response
5. Use proper input types for mutations
6. When the user refers to themselves ("me", "my", "I"), use "CURRENT_USER" as the Alumni_id or Organizer_id
7. If a required value is missing, reply with NEED_INFO: followed by a short question instead of a query`

// maxPromptTurns bounds how much conversation history is sent to the model.
const maxPromptTurns = 10

var promptTemplate = template.Must(template.New("prompt").Parse(`{{.Schema}}
{{if .History}}
Conversation so far:
{{range .History}}{{.Role}}: {{.Content}}
{{end}}{{end}}
User Query: {{.Query}}

Generate the GraphQL query:
`))

type promptLine struct {
	Role    string
	Content string
}

// BuildPrompt renders the model prompt for query given the prior turns.
func BuildPrompt(query string, history []assistant.Turn) (string, error) {
	if len(history) > maxPromptTurns {
		history = history[len(history)-maxPromptTurns:]
	}
	var lines []promptLine
	for _, t := range history {
		var role string
		switch t.Type {
		case assistant.TurnUser:
			role = "User"
		case assistant.TurnAssistant:
			role = "Assistant"
		case assistant.TurnLLM:
			role = "Generated GraphQL"
		case assistant.TurnError:
			role = "Error"
		default:
			continue
		}
		lines = append(lines, promptLine{Role: role, Content: strings.Join(strings.Fields(t.Content), " ")})
	}

	var b strings.Builder
	err := promptTemplate.Execute(&b, struct {
		Schema  string
		History []promptLine
		Query   string
	}{SchemaContext, lines, query})
	return b.String(), err
}
