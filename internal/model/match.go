package model

// KeywordMatch is one raw rule hit. The matcher reports every table
// that lists the keyword; cross-tier deduplication is intentionally
// left to consumers.
type KeywordMatch struct {
	Keyword         string          `json:"keyword"`                  // The rule keyword (or synonym) that matched
	Tier            RuleTier        `json:"tier"`                     // Tier of the rule that fired
	Category        string          `json:"category"`                 // Rule category
	Severity        Severity        `json:"severity"`                 // Rule severity
	RegulatoryClass RegulatoryClass `json:"regulatory_class"`         // Law/policy enforced
	Rationale       string          `json:"rationale"`                // Why the term is regulated
	ReferenceHint   string          `json:"reference_hint,omitempty"` // Pointer into the knowledge base
}

// Summary tabulates aggregated matches
type Summary struct {
	ByTier     map[RuleTier]int `json:"by_tier"`
	BySeverity map[Severity]int `json:"by_severity"`
	Total      int              `json:"total"`
}

// ValidationResult is the aggregator's output for one text unit
type ValidationResult struct {
	HasViolations         bool           `json:"has_violations"`
	Matches               []KeywordMatch `json:"matches"`
	Summary               Summary        `json:"summary"`
	UniqueFlaggedKeywords []string       `json:"unique_flagged_keywords"` // Deduplicated, first-seen order
}
