package chatModel

import "fmt"

// InvalidScopeError is returned when a caller asks to crawl or index a root
// URL other than the single configured one.
type InvalidScopeError struct {
	URL string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("url %q is outside the allowed root", e.URL)
}

// FetchError wraps a network or HTTP failure while fetching a page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ScopeViolationError marks a question that embeds a URL. These are rejected
// before any retrieval work happens.
type ScopeViolationError struct {
	Question string
}

func (e *ScopeViolationError) Error() string {
	return "question contains a URL and was rejected"
}

// GenerationFailure wraps an error from the answer or fallback generation
// capability. Handlers convert it to a fixed degraded message.
type GenerationFailure struct {
	Stage string
	Err   error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }
