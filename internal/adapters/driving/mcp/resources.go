package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Legalis resources.
	uriScheme = "legalis://"

	// historyResourceLimit caps how many exchanges the history resource returns.
	historyResourceLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the recent question/answer transcript.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent question/answer exchanges, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleHistoryResource returns the recent exchange transcript.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	exchanges, err := s.ports.History.Recent(ctx, historyResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	// Build simplified exchange list.
	type exchangeInfo struct {
		Question string    `json:"question"`
		Answer   string    `json:"answer"`
		Model    string    `json:"model,omitempty"`
		AskedAt  time.Time `json:"asked_at"`
	}

	infos := make([]exchangeInfo, len(exchanges))
	for i, ex := range exchanges {
		infos[i] = exchangeInfo{
			Question: ex.Question,
			Answer:   ex.Answer,
			Model:    ex.Model,
			AskedAt:  ex.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
