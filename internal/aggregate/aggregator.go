package aggregate

import (
	"strings"

	"github.com/yuidev/adcomply/internal/model"
)

// Aggregate combines raw keyword matches with annotation bindings into
// the final structured result. It is pure: no I/O, and neither input
// slice is mutated.
//
// A conditional-tier match is dropped when a valid binding covers its
// keyword. Absolute-tier and context-dependent matches are never
// suppressed by annotations.
func Aggregate(matches []model.KeywordMatch, bindings []model.Binding) model.ValidationResult {
	kept := make([]model.KeywordMatch, 0, len(matches))
	for _, m := range matches {
		if m.Tier == model.TierConditional && annotated(m.Keyword, bindings) {
			continue
		}
		kept = append(kept, m)
	}

	summary := model.Summary{
		ByTier:     make(map[model.RuleTier]int),
		BySeverity: make(map[model.Severity]int),
	}
	seen := make(map[string]bool)
	var unique []string
	for _, m := range kept {
		summary.ByTier[m.Tier]++
		summary.BySeverity[m.Severity]++
		summary.Total++
		if !seen[m.Keyword] {
			seen[m.Keyword] = true
			unique = append(unique, m.Keyword)
		}
	}

	return model.ValidationResult{
		HasViolations:         summary.Total > 0,
		Matches:               kept,
		Summary:               summary,
		UniqueFlaggedKeywords: unique,
	}
}

// annotated reports whether a valid binding covers the keyword. The
// analyzer extracts the same-script run before a marker, so a compound
// like 直注入 covers the rule keyword 注入, and the kanji run 酸 after
// ヒアルロン covers ヒアルロン酸: the binding keyword and the match
// keyword must contain one another in either direction.
func annotated(keyword string, bindings []model.Binding) bool {
	for _, b := range bindings {
		if !b.IsValid || b.Keyword == "" {
			continue
		}
		if strings.Contains(b.Keyword, keyword) || strings.Contains(keyword, b.Keyword) {
			return true
		}
	}
	return false
}

// Merge folds per-segment results into one document-level result. The
// segment order is preserved in the merged match list.
func Merge(results []model.ValidationResult) model.ValidationResult {
	var all []model.KeywordMatch
	for _, r := range results {
		all = append(all, r.Matches...)
	}
	// Matches here are already suppression-filtered per segment
	return Aggregate(all, nil)
}
