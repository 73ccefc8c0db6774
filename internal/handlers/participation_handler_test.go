package handlers

import "testing"

func TestParseParticipating(t *testing.T) {
	if !parseParticipating("true") {
		t.Fatal(`"true" must opt in`)
	}
	// Only the literal form field value counts; everything else opts out.
	for _, raw := range []string{"false", "", "True", "1", "on", "yes", " true"} {
		if parseParticipating(raw) {
			t.Fatalf("%q must opt out", raw)
		}
	}
}
