package chatModel

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type AnswerKind string

const (
	// AnswerAnswered means the model produced a grounded answer.
	AnswerAnswered AnswerKind = "Answered"
	// AnswerInsufficient means the retrieved context did not hold the answer.
	// This is a policy signal, not an error - it drives the consent flow.
	AnswerInsufficient AnswerKind = "Insufficient"
	// AnswerFailed means the generation capability itself broke or timed out.
	AnswerFailed AnswerKind = "Failed"
)

// AnswerResult is a tagged result so callers branch on Kind instead of
// sniffing empty strings.
type AnswerResult struct {
	Kind    AnswerKind
	Text    string
	Sources []string
	Reason  error
}

func Answered(text string, sources []string) AnswerResult {
	return AnswerResult{Kind: AnswerAnswered, Text: text, Sources: sources}
}

func Insufficient() AnswerResult {
	return AnswerResult{Kind: AnswerInsufficient}
}

func Failed(reason error) AnswerResult {
	return AnswerResult{Kind: AnswerFailed, Reason: reason}
}
