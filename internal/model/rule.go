package model

// RuleTier determines how a keyword rule is evaluated
type RuleTier string

const (
	TierAbsolute    RuleTier = "absolute"          // Forbidden in any context; never suppressible
	TierConditional RuleTier = "conditional"       // Permitted only with a correctly bound footnote
	TierContext     RuleTier = "context-dependent" // Forbidden only with a co-occurring qualifier pattern
)

// Severity ranks how serious a violation is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RegulatoryClass identifies the law or policy a rule enforces
type RegulatoryClass string

const (
	ClassPharmaceutical RegulatoryClass = "pharmaceutical-affairs"           // 薬機法
	ClassFairDisplay    RegulatoryClass = "fair-display"                     // 景品表示法
	ClassCommercial     RegulatoryClass = "specified-commercial-transactions" // 特定商取引法
)

// KeywordRule is one data-driven rule record. Rules are loaded once at
// startup and read-only for the process lifetime.
type KeywordRule struct {
	Keywords          []string        `json:"keywords" yaml:"keywords"`                                   // Term plus listed synonyms; matched verbatim
	Tier              RuleTier        `json:"tier" yaml:"tier"`                                           // Evaluation policy
	Category          string          `json:"category" yaml:"category"`                                   // Domain category (e.g., "efficacy", "safety")
	Severity          Severity        `json:"severity" yaml:"severity"`                                   // Violation severity
	RegulatoryClass   RegulatoryClass `json:"regulatory_class" yaml:"regulatory_class"`                   // Law/policy enforced
	Rationale         string          `json:"rationale" yaml:"rationale"`                                 // Why the term is regulated
	ReferenceHint     string          `json:"reference_hint,omitempty" yaml:"reference_hint,omitempty"`   // Pointer into the knowledge base
	AcceptableRewrite string          `json:"acceptable_rewrite,omitempty" yaml:"acceptable_rewrite,omitempty"` // Suggested compliant phrasing
	Qualifiers        []string        `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`           // Context tier only: co-occurrence patterns (regexp)
}
