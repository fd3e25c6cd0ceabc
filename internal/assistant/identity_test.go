package assistant

import (
	"errors"
	"strings"
	"testing"
)

func TestInjectIdentityStrict(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		caller   Caller
		contains string
		reject   bool
	}{
		{
			name:     "placeholder in nested input",
			doc:      `mutation { createReservation(input: {Alumni_id: "CURRENT_USER", Event_id: "E1001"}) { Reservation_id } }`,
			caller:   Caller{AlumniID: "A1001"},
			contains: `Alumni_id: "A1001"`,
		},
		{
			name:     "placeholder as top-level argument",
			doc:      `query { getReservationsByAlumni(Alumni_id: "CURRENT_USER") { Event_id } }`,
			caller:   Caller{AlumniID: "A1001"},
			contains: `getReservationsByAlumni(Alumni_id: "A1001")`,
		},
		{
			name:     "placeholder outside identity arguments",
			doc:      `query { getPhotosByTags(Tags: ["CURRENT_USER", "gala"]) { Photo_id } }`,
			caller:   Caller{AlumniID: "A1001"},
			contains: `Tags: ["A1001", "gala"]`,
		},
		{
			name:     "own literal kept",
			doc:      `mutation { createEvent(input: {Name: "Gala", Date: "2025-12-25", Organizer_id: "A1001"}) { Event_id } }`,
			caller:   Caller{AlumniID: "A1001"},
			contains: `Organizer_id: "A1001"`,
		},
		{
			name:     "queries may name others",
			doc:      `query { getReservationsByAlumni(Alumni_id: "A2000") { Event_id } }`,
			caller:   Caller{AlumniID: "A1001"},
			contains: `Alumni_id: "A2000"`,
		},
		{
			name:     "admin may name anyone",
			doc:      `mutation { createEvent(input: {Name: "Gala", Date: "2025-12-25", Organizer_id: "A2000"}) { Event_id } }`,
			caller:   Caller{Admin: true},
			contains: `Organizer_id: "A2000"`,
		},
		{
			name:   "mutation naming another alumni",
			doc:    `mutation { createReservation(input: {Alumni_id: "A2000", Event_id: "E1001"}) { Reservation_id } }`,
			caller: Caller{AlumniID: "A1001"},
			reject: true,
		},
		{
			name:   "placeholder without a person identity",
			doc:    `mutation { createEvent(input: {Name: "Gala", Date: "2025-12-25", Organizer_id: "CURRENT_USER"}) { Event_id } }`,
			caller: Caller{Admin: true},
			reject: true,
		},
		{
			name:   "variable on identity field",
			doc:    `mutation ($who: String!) { createReservation(input: {Alumni_id: $who, Event_id: "E1001"}) { Reservation_id } }`,
			caller: Caller{AlumniID: "A1001"},
			reject: true,
		},
		{
			name:   "identity inside a list of objects",
			doc:    `mutation { bulk(items: [{Alumni_id: "A1001"}, {Alumni_id: "A3000"}]) { ok } }`,
			caller: Caller{AlumniID: "A1001"},
			reject: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := InjectIdentity(tt.doc, tt.caller, PolicyStrict)
			if tt.reject {
				var policy *PolicyError
				if !errors.As(err, &policy) {
					t.Fatalf("expected PolicyError, got %q, %v", out, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output %q does not contain %q", out, tt.contains)
			}
		})
	}
}

func TestInjectIdentityLeavesUntouchedDocumentsAlone(t *testing.T) {
	doc := `query { getEvents { Name Date } }`
	out, err := InjectIdentity(doc, Caller{AlumniID: "A1001"}, PolicyStrict)
	if err != nil || out != doc {
		t.Errorf("got %q, %v", out, err)
	}
}

func TestInjectIdentityRewrite(t *testing.T) {
	doc := `mutation { createEvent(input: {Name: "Gala", Date: "2025-12-25", Organizer_id: "A2000"}) { Event_id } }`
	out, err := InjectIdentity(doc, Caller{AlumniID: "A1001"}, PolicyRewrite)
	if err != nil {
		t.Fatalf("rewrite must not reject: %v", err)
	}
	if !strings.Contains(out, `Organizer_id: "A1001"`) || strings.Contains(out, "A2000") {
		t.Errorf("literal not overwritten: %q", out)
	}

	out, _ = InjectIdentity(doc, Caller{Admin: true}, PolicyRewrite)
	if out != doc {
		t.Errorf("callers without an alumni ID leave the document as is, got %q", out)
	}
}

func TestInjectIdentityFallsBackToText(t *testing.T) {
	doc := `mutation { createReservation(input: {Alumni_id: "CURRENT_USER", Event_id: "E1001"`
	out, err := InjectIdentity(doc, Caller{AlumniID: "A1001"}, PolicyStrict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `mutation { createReservation(input: {Alumni_id: "A1001", Event_id: "E1001"` {
		t.Errorf("fallback produced %q", out)
	}

	out, _ = InjectIdentity(`mutation { x(Organizer_id: "A9"`, Caller{AlumniID: "A1001"}, PolicyRewrite)
	if out != `mutation { x(Organizer_id: "A1001"` {
		t.Errorf("rewrite fallback produced %q", out)
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy(""); err != nil || p != PolicyStrict {
		t.Errorf("empty policy = %q, %v", p, err)
	}
	if p, err := ParsePolicy("Rewrite"); err != nil || p != PolicyRewrite {
		t.Errorf("Rewrite = %q, %v", p, err)
	}
	if _, err := ParsePolicy("lenient"); err == nil {
		t.Error("unknown policy accepted")
	}
}

func TestClarificationAndClassification(t *testing.T) {
	if !IsClarification("NEED_INFO: which date?") || !IsClarification("Please provide a name") {
		t.Error("sentinels not detected")
	}
	if IsClarification("query { getEvents { Name } }") {
		t.Error("document treated as clarification")
	}
	if got := ClarificationText("  NEED_INFO:  which date? "); got != "which date?" {
		t.Errorf("ClarificationText = %q", got)
	}
	if got := Normalize(" query {\n\tgetEvents  { Name }\n}\n"); got != "query { getEvents { Name } }" {
		t.Errorf("Normalize = %q", got)
	}
	if Classify("  Mutation { deleteEvent(id: \"1\") }") != KindMutation || Classify("{ getEvents { Name } }") != KindQuery {
		t.Error("classification mismatch")
	}
}
