package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuidev/adcomply/internal/model"
)

// Provider defines the interface for semantic review providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Review generates a semantic review of the pre-filter report
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ReviewRequest contains the input for the semantic review
type ReviewRequest struct {
	// Report is the deterministic pre-filter result to review
	Report model.Report

	// FlaggedKeywords is the STRICT allowlist of regulated terms the
	// reviewer may cite as rule violations. It prevents the model from
	// inventing deterministic findings the pre-filter never made.
	FlaggedKeywords []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ReviewResponse contains the reviewer's output
type ReviewResponse struct {
	// Review is the generated review text
	Review string

	// CitedKeywords are the 「」-quoted terms the model actually cited
	CitedKeywords []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds reviewer provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// StrictHints enforces the flagged-keyword allowlist
	StrictHints bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "",
		Timeout:     30,
		StrictHints: true,
		MaxTokens:   1000,
	}
}

// BuildPrompt constructs the default review prompt. The deterministic
// result is already final; the reviewer only adds context the rules
// cannot see (tone, implied claims, borderline phrasing).
func BuildPrompt(report model.Report, flagged []string) string {
	prompt := fmt.Sprintf(`You are reviewing a Japanese advertising compliance pre-filter report. The rule-based findings below are FINAL and deterministic - you never overturn or re-score them.

CRITICAL RULES:
1. When citing a rule violation keyword, you MUST ONLY cite terms from this list (write them in 「」 quotes):
%s

2. DO NOT invent new rule violations. Semantic concerns outside the list must be phrased as "worth human review", never as violations.
3. Focus on what the keyword rules cannot see: implied efficacy, overall tone, before/after framing, testimonial pressure.
4. If the pre-filter found nothing, say so and limit yourself to borderline observations.

Pre-filter summary:
- Subject: %s
- Risk index: %d/100 (%s)
- Violations: %d total (%d absolute, %d conditional, %d context-dependent)
- Segments analyzed: %d

Key signals:
`, joinKeywords(flagged), report.Subject, report.Risk.Index, report.Risk.Level,
		report.Overall.Summary.Total,
		report.Overall.Summary.ByTier[model.TierAbsolute],
		report.Overall.Summary.ByTier[model.TierConditional],
		report.Overall.Summary.ByTier[model.TierContext],
		len(report.Segments))

	// Add top 3 signals
	for i, signal := range report.Risk.Signals {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
	}

	prompt += "\nSegments:\n"
	for i, seg := range report.Segments {
		if i >= 20 { // Limit to avoid token bloat
			prompt += fmt.Sprintf("... and %d more segments\n", len(report.Segments)-20)
			break
		}
		prompt += fmt.Sprintf("[%s/%s] %s\n", seg.ID, seg.Type, strings.TrimSpace(seg.Text))
	}

	prompt += "\nProvide a 3-5 sentence review in Japanese focusing on semantic risk the keyword rules cannot capture."

	return prompt
}

// Helper functions

func joinKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return "(No flagged keywords - the pre-filter found no violations)"
	}
	result := ""
	for i, kw := range keywords {
		if i >= 30 { // Limit to avoid token bloat
			result += fmt.Sprintf("\n... and %d more terms", len(keywords)-30)
			break
		}
		result += fmt.Sprintf("\n- 「%s」", kw)
	}
	return result
}

// extractCitedKeywords pulls the 「」-quoted terms out of review text
func extractCitedKeywords(text string) []string {
	pattern := regexp.MustCompile(`「([^」]+)」`)
	matches := pattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		kw := strings.TrimSpace(m[1])
		if kw != "" && !seen[kw] {
			seen[kw] = true
			unique = append(unique, kw)
		}
	}
	return unique
}

// checkHintLeak verifies the strict-hints contract: every cited term
// must be in the allowlist or appear verbatim in the ad copy itself.
func checkHintLeak(resp *ReviewResponse, req ReviewRequest) error {
	for _, cited := range resp.CitedKeywords {
		if contains(req.FlaggedKeywords, cited) {
			continue
		}
		if segmentsContain(req.Report.Segments, cited) {
			continue
		}
		return fmt.Errorf("HINT LEAK: reviewer cited term outside the allowlist: %s", cited)
	}
	return nil
}

func segmentsContain(segments []model.Segment, term string) bool {
	for _, seg := range segments {
		if strings.Contains(seg.Text, term) {
			return true
		}
	}
	return false
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
