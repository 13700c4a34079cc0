package escalation

import "strings"

// Intent is the classified meaning of an input received while consent is
// pending. Keeping this an explicit enum keeps the transition table testable
// apart from the exact token lists.
type Intent int

const (
	IntentUnrecognized Intent = iota
	IntentAffirm
	IntentDecline
)

var affirmTokens = map[string]struct{}{
	"yes":  {},
	"okay": {},
	"ok":   {},
}

var declineTokens = map[string]struct{}{
	"no":      {},
	"not now": {},
}

func ClassifyIntent(input string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if _, ok := affirmTokens[normalized]; ok {
		return IntentAffirm
	}
	if _, ok := declineTokens[normalized]; ok {
		return IntentDecline
	}
	return IntentUnrecognized
}
