// Package mcp exposes pull request scoring as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/services"
	"github.com/sourcepay/prscore/internal/version"
)

// ContributionScorer is the part of the contribution service the tools call.
type ContributionScorer interface {
	ScorePullRequest(ctx context.Context, rawURL string, opts services.ScoreOptions) (*services.ScoreOutcome, error)
	ValidatePullRequest(ctx context.Context, rawURL string) (*models.PRDetails, error)
}

// NewMCPServer builds the server without starting it.
func NewMCPServer(svc ContributionScorer) *server.MCPServer {
	s := server.NewMCPServer(
		"prscore",
		version.Version,
		server.WithLogging(),
	)

	h := &toolHandler{svc: svc}

	s.AddTool(mcp.NewTool("score_pull_request",
		mcp.WithDescription("Score a GitHub pull request from 0 to 100 across six quality dimensions."),
		mcp.WithString("url", mcp.Description("Pull request URL, e.g. https://github.com/owner/repo/pull/123."), mcp.Required()),
		mcp.WithBoolean("no_cache", mcp.Description("Ignore any cached score.")),
		mcp.WithNumber("bounty", mcp.Description("Optional bounty in MUSD; adds the payout decision to the result.")),
	), h.handleScorePullRequest)

	s.AddTool(mcp.NewTool("validate_pull_request",
		mcp.WithDescription("Check that a URL points to an existing GitHub pull request."),
		mcp.WithString("url", mcp.Description("Pull request URL."), mcp.Required()),
	), h.handleValidatePullRequest)

	s.AddTool(mcp.NewTool("evaluate_payout",
		mcp.WithDescription("Apply the payout policy to a bounty and a score."),
		mcp.WithNumber("bounty", mcp.Description("Bounty in MUSD."), mcp.Required()),
		mcp.WithNumber("score", mcp.Description("Score between 0 and 100."), mcp.Required()),
	), h.handleEvaluatePayout)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, svc ContributionScorer) error {
	s := NewMCPServer(svc)
	return server.ServeStdio(s)
}
