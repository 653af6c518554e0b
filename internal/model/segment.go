package model

// Position is a half-open [Start, End) byte span over the original input
type Position struct {
	Start int `json:"start"` // Byte offset of the first byte
	End   int `json:"end"`   // Byte offset one past the last byte
}

// Segment is a contiguous, type-classified unit of the advertising text.
// Segments are produced in source order; concatenating Text fields in
// order reproduces the original input exactly.
type Segment struct {
	ID       string      `json:"id"`       // Sequential identifier (e.g., "seg-3")
	Text     string      `json:"text"`     // Verbatim substring of the input
	Type     SegmentType `json:"type"`     // Inferred segment type
	Position Position    `json:"position"` // Span within the input
}

// SegmentType categorizes the role a segment plays in the advertisement
type SegmentType string

const (
	SegmentTypeClaim       SegmentType = "claim"       // Assertive/declarative product claim
	SegmentTypeExplanation SegmentType = "explanation" // Explanatory or connective copy
	SegmentTypeEvidence    SegmentType = "evidence"    // Numeric/statistical backing
	SegmentTypeCTA         SegmentType = "cta"         // Call to action
	SegmentTypeDisclaimer  SegmentType = "disclaimer"  // Footnote or caveat text
	SegmentTypeUnknown     SegmentType = "unknown"     // Could not be classified
)
