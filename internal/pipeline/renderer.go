package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yuidev/adcomply/internal/model"
)

// Renderer writes reports as JSON, Markdown, and a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable findings document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Compliance Check: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **Source**: %s\n", report.Source)
	if report.Product != "" {
		fmt.Fprintf(&b, "- **Product rules**: %s\n", report.Product)
	}
	fmt.Fprintf(&b, "- **Checked**: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Risk index**: %d/100 (%s)\n\n", report.Risk.Index, report.Risk.Level)

	b.WriteString("## Summary\n\n")
	s := report.Overall.Summary
	fmt.Fprintf(&b, "| Tier | Violations |\n|------|------------|\n")
	fmt.Fprintf(&b, "| Absolute | %d |\n", s.ByTier[model.TierAbsolute])
	fmt.Fprintf(&b, "| Conditional (unannotated) | %d |\n", s.ByTier[model.TierConditional])
	fmt.Fprintf(&b, "| Context-dependent | %d |\n", s.ByTier[model.TierContext])
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", s.Total)

	if len(report.Overall.UniqueFlaggedKeywords) > 0 {
		b.WriteString("Flagged terms: ")
		for i, kw := range report.Overall.UniqueFlaggedKeywords {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "「%s」", kw)
		}
		b.WriteString("\n\n")
	}

	b.WriteString("## Findings by Segment\n\n")
	segByID := make(map[string]model.Segment, len(report.Segments))
	for _, seg := range report.Segments {
		segByID[seg.ID] = seg
	}

	clean := true
	for _, res := range report.Results {
		if !res.Result.HasViolations {
			continue
		}
		clean = false
		seg := segByID[res.SegmentID]
		fmt.Fprintf(&b, "### %s (%s)\n\n", res.SegmentID, seg.Type)
		fmt.Fprintf(&b, "> %s\n\n", strings.TrimSpace(seg.Text))
		for _, m := range res.Result.Matches {
			fmt.Fprintf(&b, "- 「%s」 — %s / %s / %s\n", m.Keyword, m.Tier, m.Severity, m.RegulatoryClass)
			if m.Rationale != "" {
				fmt.Fprintf(&b, "  - %s\n", m.Rationale)
			}
			if m.ReferenceHint != "" {
				fmt.Fprintf(&b, "  - Reference: %s\n", m.ReferenceHint)
			}
		}
		b.WriteString("\n")
	}
	if clean {
		b.WriteString("No violations found.\n\n")
	}

	b.WriteString("## Risk Signals\n\n")
	for _, sig := range report.Risk.Signals {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", sig.Type, sig.Severity, sig.Description)
	}
	b.WriteString("\n")

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Deterministic pre-filter output. Findings indicate terms that need legal review, not a legal judgment. A clean result does not certify compliance.*\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderLLMMarkdown writes the semantic review to its own file
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if markdown == "" {
		return nil
	}
	return os.WriteFile(path, []byte(markdown), 0o644)
}

// RenderSummary prints a compact result to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Overall.Summary

	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("Risk index: %d/100 (%s)\n", report.Risk.Index, report.Risk.Level)

	if !report.Overall.HasViolations {
		fmt.Println("✓ No violations found")
		return
	}

	fmt.Printf("✗ %d violation(s): %d absolute, %d conditional, %d context-dependent\n",
		s.Total,
		s.ByTier[model.TierAbsolute],
		s.ByTier[model.TierConditional],
		s.ByTier[model.TierContext])

	for i, kw := range report.Overall.UniqueFlaggedKeywords {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(report.Overall.UniqueFlaggedKeywords)-10)
			break
		}
		fmt.Printf("  - 「%s」\n", kw)
	}
}
