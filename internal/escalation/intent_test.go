package escalation

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"yes", IntentAffirm},
		{"Yes", IntentAffirm},
		{"YES", IntentAffirm},
		{"  ok  ", IntentAffirm},
		{"Okay", IntentAffirm},
		{"no", IntentDecline},
		{"No", IntentDecline},
		{"not now", IntentDecline},
		{"Not Now", IntentDecline},
		{"maybe", IntentUnrecognized},
		{"yes please", IntentUnrecognized},
		{"nope", IntentUnrecognized},
		{"", IntentUnrecognized},
		{"what about hotels?", IntentUnrecognized},
	}

	for _, tt := range tests {
		if got := ClassifyIntent(tt.input); got != tt.want {
			t.Errorf("ClassifyIntent(%q) got %v, want %v", tt.input, got, tt.want)
		}
	}
}
