package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/payout"
	"github.com/sourcepay/prscore/internal/services"
)

type toolHandler struct {
	svc ContributionScorer
}

type scoreResponse struct {
	RunID      string             `json:"runId"`
	PR         string             `json:"pr"`
	Result     models.ScoreResult `json:"result"`
	CacheHit   bool               `json:"cacheHit"`
	DurationMs int64              `json:"durationMs"`
	Decision   *payout.Decision   `json:"decision,omitempty"`
}

type validateResponse struct {
	Valid   bool              `json:"valid"`
	Details *models.PRDetails `json:"details"`
}

func (h *toolHandler) handleScorePullRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := strings.TrimSpace(request.GetString("url", ""))
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	var decision *payout.Decision
	bounty := request.GetFloat("bounty", 0)
	if bounty != 0 {
		// Validate the bounty before calling GitHub.
		if _, err := payout.Evaluate(bounty, 0); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid bounty: %v", err)), nil
		}
	}

	outcome, err := h.svc.ScorePullRequest(ctx, url, services.ScoreOptions{
		SkipCache: request.GetBool("no_cache", false),
	})
	if err != nil {
		logger.Warn(ctx, "mcp score failed", "url", url, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	if bounty != 0 {
		d, err := payout.Evaluate(bounty, outcome.Result.Score)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("payout failed: %v", err)), nil
		}
		decision = &d
	}

	return jsonResult(scoreResponse{
		RunID:      outcome.RunID,
		PR:         outcome.Ref.String(),
		Result:     outcome.Result,
		CacheHit:   outcome.CacheHit,
		DurationMs: outcome.Duration.Milliseconds(),
		Decision:   decision,
	})
}

func (h *toolHandler) handleValidatePullRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if strings.TrimSpace(url) == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	details, err := h.svc.ValidatePullRequest(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	return jsonResult(validateResponse{Valid: true, Details: details})
}

func (h *toolHandler) handleEvaluatePayout(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if _, ok := args["bounty"]; !ok {
		return mcp.NewToolResultError("bounty is required"), nil
	}
	if _, ok := args["score"]; !ok {
		return mcp.NewToolResultError("score is required"), nil
	}

	d, err := payout.Evaluate(request.GetFloat("bounty", 0), request.GetInt("score", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid payout input: %v", err)), nil
	}

	return jsonResult(struct {
		payout.Decision
		Message string `json:"message"`
	}{d, d.Message()})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
