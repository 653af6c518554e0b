package llm

import (
	"context"
	"fmt"

	"github.com/yuidev/adcomply/internal/model"
)

// Reviewer wraps a provider and produces the optional LLMReview block
// for a report. The review runs after aggregation and scoring and
// never feeds back into them.
type Reviewer struct {
	provider Provider
	config   Config
}

// NewReviewer creates a reviewer from configuration. A blank provider
// name yields (nil, nil): the reviewer is simply disabled.
func NewReviewer(config Config) (*Reviewer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Reviewer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (r *Reviewer) IsEnabled() bool {
	return r != nil && r.provider != nil
}

// GenerateReview produces the semantic review for a finished report.
// The flagged-keyword allowlist comes from the deterministic result.
func (r *Reviewer) GenerateReview(ctx context.Context, report model.Report) (*model.LLMReview, error) {
	req := ReviewRequest{
		Report:          report,
		FlaggedKeywords: report.Overall.UniqueFlaggedKeywords,
		Model:           r.config.Model,
		MaxTokens:       r.config.MaxTokens,
	}

	resp, err := r.provider.Review(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s review: %w", r.provider.Name(), err)
	}

	return &model.LLMReview{
		Enabled:     true,
		Provider:    r.provider.Name(),
		Model:       resp.Model,
		StrictHints: r.config.StrictHints,
		ReviewMD:    resp.Review,
	}, nil
}

// RenderSeparateMarkdown renders the review as a standalone Markdown
// document, clearly separated from the deterministic report.
func RenderSeparateMarkdown(review *model.LLMReview) string {
	if review == nil || !review.Enabled {
		return ""
	}

	md := "# Semantic Review (LLM)\n\n"
	md += fmt.Sprintf("> Generated by %s/%s. This review is advisory only and never affects the deterministic rule findings or the risk index.\n\n", review.Provider, review.Model)
	md += review.ReviewMD
	md += "\n"

	if len(review.Warnings) > 0 {
		md += "\n## Warnings\n\n"
		for _, w := range review.Warnings {
			md += fmt.Sprintf("- %s\n", w)
		}
	}

	return md
}
