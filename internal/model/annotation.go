package model

// FootnoteScope records where a footnote was found
type FootnoteScope string

const (
	ScopeSegment  FootnoteScope = "segment"
	ScopeFullText FootnoteScope = "fullText"
)

// MarkerOccurrence is a keyword immediately followed by a footnote
// marker in the running text (e.g., ヒアルロン酸※1).
type MarkerOccurrence struct {
	Keyword  string   `json:"keyword"`  // Preceding same-script run bound to the marker
	Marker   string   `json:"marker"`   // Normalized marker (e.g., "※1")
	Position Position `json:"position"` // Span of the marker in the text
}

// Footnote is a marker plus its explanation text (e.g., ※1保湿成分)
type Footnote struct {
	Marker   string        `json:"marker"`
	Text     string        `json:"text"`
	Position Position      `json:"position"`
	Scope    FootnoteScope `json:"scope"`
}

// Binding is the resolved association between a marker occurrence and
// its footnote. Segment scope takes precedence over full-text scope.
type Binding struct {
	Keyword      string        `json:"keyword"`
	Marker       string        `json:"marker"`
	FootnoteText string        `json:"footnote_text,omitempty"`
	Scope        FootnoteScope `json:"scope,omitempty"`
	IsValid      bool          `json:"is_valid"`
}

// AnnotationAnalysis is the analyzer's output for one segment
type AnnotationAnalysis struct {
	MarkerOccurrences    []MarkerOccurrence `json:"marker_occurrences"`
	Footnotes            []Footnote         `json:"footnotes"`
	Bindings             []Binding          `json:"bindings"`
	HasAnnotatedKeywords bool               `json:"has_annotated_keywords"`
}
