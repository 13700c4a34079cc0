package api

// AskRequest carries the user's question. /handle_consent/ reuses the field
// for the yes/no reply.
type AskRequest struct {
	Question string `json:"question" validate:"required" example:"What restaurants are in Lisbon?"`
}

type AnswerResponse struct {
	Answer string `json:"answer" example:"The website lists three restaurants in Lisbon..."`
}

type LinksResponse struct {
	Links []string `json:"links"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Only the configured website can be crawled"`
}
