package escalation

import "github.com/anukol/sitechat/internal/config"

// All user-visible fixed strings of the consent flow live here so the state
// machine and its tests agree on them.
const (
	ConsentPromptMessage = "The information is not available on the website. " +
		"Would you like us to fetch this information from external resources? " +
		"Please respond with 'yes' or 'no'."

	DeclineAckMessage = "Understood. If you need further assistance, feel free to ask."

	RePromptMessage = "Please respond with 'yes' or 'no' to proceed."

	NoPendingConsentMessage = "There is nothing waiting for your confirmation. Ask me a question about the website."

	ScopeRefusalMessage = "Only questions about the website '" + config.AllowedRootURL + "' are allowed."

	DegradedMessage = "Sorry, something went wrong."
)
