package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/anukol/sitechat/internal/api"
	"github.com/anukol/sitechat/internal/chat"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/pkg/logger_i"
)

var (
	handlerInstance *chatHandler //private singleton
	once            sync.Once
	logRH           *logger_i.Logger
)

type chatHandler struct {
	service chat.Service
}

func InitChatHandlers(service chat.Service) {
	once.Do(func() {
		handlerInstance = &chatHandler{service: service}
		logRH = logger_i.NewLogger("RequestHandler")
		logRH.Info("Chat handlers initialized")
	})
}

// GetResponseHandler godoc
// @Summary      Ask a question about the website
// @Description  Answers from the site's knowledge index, or asks for consent to run the research fallback when the site content is insufficient.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        X-Session-Id  header    string          false  "Session identifier (a new conversation starts when omitted)"
// @Param        request       body      api.AskRequest  true   "User question"
// @Success      200           {object}  api.AnswerResponse
// @Failure      400           {object}  api.ErrorResponse  "Malformed request body"
// @Router       /get_response/ [post]
func GetResponseHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid context by request ", "remote", r.RemoteAddr)
		return
	}

	question, ok := decodeAskRequest(w, r)
	if !ok {
		return
	}

	answer := handlerInstance.service.Ask(r.Context(), sessionID(r), question)
	writeJsonResponse(w, http.StatusOK, api.AnswerResponse{Answer: answer})
}

// HandleConsentHandler godoc
// @Summary      Answer the pending escalation consent question
// @Description  Drives the yes/no consent transition; "yes" runs the external research pipeline for the remembered question.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        X-Session-Id  header    string          false  "Session identifier"
// @Param        request       body      api.AskRequest  true   "Consent reply (question field carries the yes/no)"
// @Success      200           {object}  api.AnswerResponse
// @Failure      400           {object}  api.ErrorResponse  "Malformed request body"
// @Router       /handle_consent/ [post]
func HandleConsentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid context by request ", "remote", r.RemoteAddr)
		return
	}

	reply, ok := decodeAskRequest(w, r)
	if !ok {
		return
	}

	answer := handlerInstance.service.Consent(r.Context(), sessionID(r), reply)
	writeJsonResponse(w, http.StatusOK, api.AnswerResponse{Answer: answer})
}

// GetAllLinksHandler godoc
// @Summary      List the discovered site links
// @Description  Fetches the configured root page and returns its same-domain links.
// @Tags         Crawl
// @Produce      json
// @Success      200  {object}  api.LinksResponse
// @Failure      400  {object}  api.ErrorResponse  "Root URL out of scope"
// @Failure      502  {object}  api.ErrorResponse  "Root page could not be fetched"
// @Router       /get_all_links/ [post]
func GetAllLinksHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid context by request ", "remote", r.RemoteAddr)
		return
	}

	links, err := handlerInstance.service.Links(r.Context())
	if err != nil {
		var scopeErr *chatModel.InvalidScopeError
		if errors.As(err, &scopeErr) {
			WriteErrorResponse(w, http.StatusBadRequest, "Only the configured website can be crawled")
			return
		}
		logRH.Error("Link discovery failed", "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "Failed to fetch links")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.LinksResponse{Links: links})
}

func decodeAskRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the request body reader :", "error", err)
		}
	}(r.Body)

	var requestData api.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return "", false
	}
	return requestData.Question, true
}
