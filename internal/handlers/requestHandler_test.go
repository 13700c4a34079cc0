package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anukol/sitechat/internal/api"
	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/handlers"
)

// MockService implements chat.Service
type MockService struct {
	OnAsk     func(ctx context.Context, sessionID string, question string) string
	OnConsent func(ctx context.Context, sessionID string, reply string) string
	OnLinks   func(ctx context.Context) ([]string, error)
}

func (m *MockService) Ask(ctx context.Context, sessionID string, question string) string {
	if m.OnAsk != nil {
		return m.OnAsk(ctx, sessionID, question)
	}
	return "mock answer"
}

func (m *MockService) Consent(ctx context.Context, sessionID string, reply string) string {
	if m.OnConsent != nil {
		return m.OnConsent(ctx, sessionID, reply)
	}
	return "mock consent answer"
}

func (m *MockService) Links(ctx context.Context) ([]string, error) {
	if m.OnLinks != nil {
		return m.OnLinks(ctx)
	}
	return []string{"https://www.travellofoodie.com/about"}, nil
}

var mockService = &MockService{}

func init() {
	handlers.InitChatHandlers(mockService)
}

func newRequest(method string, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, "test-trace")
	return req.WithContext(ctx)
}

func TestGetResponseHandler_PassesSessionAndQuestion(t *testing.T) {
	var gotSession, gotQuestion string
	mockService.OnAsk = func(ctx context.Context, sessionID string, question string) string {
		gotSession, gotQuestion = sessionID, question
		return "an answer"
	}
	defer func() { mockService.OnAsk = nil }()

	req := newRequest(http.MethodPost, "/get_response/", `{"question":"where to eat?"}`)
	req.Header.Set("X-Session-Id", "abc-123")
	rec := httptest.NewRecorder()

	handlers.GetResponseHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status got %d, want 200", rec.Code)
	}
	if gotSession != "abc-123" || gotQuestion != "where to eat?" {
		t.Errorf("Service received session=%q question=%q", gotSession, gotQuestion)
	}

	var resp api.AnswerResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding response: %v", err)
	}
	if resp.Answer != "an answer" {
		t.Errorf("Answer got %q, want %q", resp.Answer, "an answer")
	}
}

func TestGetResponseHandler_DefaultsSession(t *testing.T) {
	var gotSession string
	mockService.OnAsk = func(ctx context.Context, sessionID string, question string) string {
		gotSession = sessionID
		return "ok"
	}
	defer func() { mockService.OnAsk = nil }()

	rec := httptest.NewRecorder()
	handlers.GetResponseHandler(rec, newRequest(http.MethodPost, "/get_response/", `{"question":"hi"}`))

	if gotSession != "default" {
		t.Errorf("Session got %q, want the default", gotSession)
	}
}

func TestGetResponseHandler_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Malformed_JSON", `{"question":`},
		{"Empty_Question", `{"question":""}`},
		{"Empty_Body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.GetResponseHandler(rec, newRequest(http.MethodPost, "/get_response/", tt.body))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status got %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleConsentHandler_Delegates(t *testing.T) {
	mockService.OnConsent = func(ctx context.Context, sessionID string, reply string) string {
		return "consent handled: " + reply
	}
	defer func() { mockService.OnConsent = nil }()

	rec := httptest.NewRecorder()
	handlers.HandleConsentHandler(rec, newRequest(http.MethodPost, "/handle_consent/", `{"question":"yes"}`))

	var resp api.AnswerResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding response: %v", err)
	}
	if resp.Answer != "consent handled: yes" {
		t.Errorf("Answer got %q", resp.Answer)
	}
}

func TestGetAllLinksHandler_ReturnsLinks(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.GetAllLinksHandler(rec, newRequest(http.MethodPost, "/get_all_links/", ``))

	if rec.Code != http.StatusOK {
		t.Fatalf("Status got %d, want 200", rec.Code)
	}
	var resp api.LinksResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding response: %v", err)
	}
	if len(resp.Links) != 1 || resp.Links[0] != "https://www.travellofoodie.com/about" {
		t.Errorf("Links got %v", resp.Links)
	}
}
