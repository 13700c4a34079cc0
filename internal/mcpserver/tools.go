package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskSiteInput is the input schema for the ask_site tool.
type AskSiteInput struct {
	Question  string `json:"question" jsonschema:"the question to answer from the website content"`
	SessionID string `json:"session_id,omitempty" jsonschema:"conversation to continue (a new one starts when omitted)"`
}

// AskSiteOutput is the output schema for the ask_site tool.
type AskSiteOutput struct {
	Answer string `json:"answer"`
}

// ListLinksOutput is the output schema for the list_links tool.
type ListLinksOutput struct {
	Links []string `json:"links"`
	Count int      `json:"count"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_site",
		Description: "Answer a question from the configured website's pages",
	}, s.handleAskSite)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_links",
		Description: "List the same-domain links discovered on the website's root page",
	}, s.handleListLinks)
}

func (s *Server) handleAskSite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskSiteInput,
) (*mcp.CallToolResult, AskSiteOutput, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = "mcp-default"
	}

	answer := s.service.Ask(ctx, sessionID, input.Question)
	return nil, AskSiteOutput{Answer: answer}, nil
}

func (s *Server) handleListLinks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListLinksOutput, error) {
	links, err := s.service.Links(ctx)
	if err != nil {
		return nil, ListLinksOutput{}, err
	}
	return nil, ListLinksOutput{Links: links, Count: len(links)}, nil
}
