package model

import "time"

// Report is the complete check result for one advertisement
type Report struct {
	ID        string     `json:"id"`                   // Report UUID
	Subject   string     `json:"subject"`              // Subject of the check (filename, URL slug, or "stdin")
	Source    string     `json:"source"`               // File path, URL, or "-"
	Product   string     `json:"product,omitempty"`    // Product identifier selecting the rule table variant
	CheckedAt time.Time  `json:"checked_at"`           // When the check ran
	FetchMeta *FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata when the source was a URL

	Segments []Segment       `json:"segments"`        // Ordered, lossless segmentation of the input
	Results  []SegmentResult `json:"segment_results"` // Per-segment analysis, same order as Segments

	Overall ValidationResult `json:"overall"` // Aggregated across all segments
	Risk    RiskScore        `json:"risk"`    // Transparent risk index derived from Overall

	LLM *LLMReview `json:"llm,omitempty"` // Optional semantic review (never affects Overall or Risk)
}

// SegmentResult pairs one segment with its deterministic analysis
type SegmentResult struct {
	SegmentID   string             `json:"segment_id"`
	Annotations AnnotationAnalysis `json:"annotations"`
	Result      ValidationResult   `json:"result"`
}

// FetchMeta contains HTTP metadata from fetching the source page
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// RiskScore is the transparent 0-100 compliance risk breakdown
type RiskScore struct {
	Index   int      `json:"index"`   // 0 = clean, 100 = maximal risk
	Level   string   `json:"level"`   // "clean", "low", "medium", "high", "critical"
	Signals []Signal `json:"signals"` // Diagnostic signals with transparent data
}

// Signal is one diagnostic observation with its scoring inputs exposed
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the diagnostic signal
type SignalType string

const (
	SignalAbsoluteViolations SignalType = "absolute_violations" // Absolute-tier hits present
	SignalSeverityMix        SignalType = "severity_mix"        // Distribution across severities
	SignalConditionalDensity SignalType = "conditional_density" // Unannotated conditional hits per segment
	SignalAnnotationCoverage SignalType = "annotation_coverage" // How many conditional terms carried valid footnotes
	SignalContextViolations  SignalType = "context_violations"  // Context-dependent hits present
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SignalInfo     SignalSeverity = "info"
	SignalWarning  SignalSeverity = "warning"
	SignalCritical SignalSeverity = "critical"
)

// LLMReview contains the optional semantic review output.
// It is generated after aggregation and never feeds back into it.
type LLMReview struct {
	Enabled     bool     `json:"enabled"`
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	StrictHints bool     `json:"strict_hints"`          // Whether the prompt was fenced to pre-computed hints
	ReviewMD    string   `json:"review_md,omitempty"`   // Markdown review text
	Warnings    []string `json:"warnings,omitempty"`
}
