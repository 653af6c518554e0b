package annotation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuidev/adcomply/internal/model"
)

// Analyzer extracts footnote markers and footnote bodies from ad copy
// and binds each marker occurrence to its explanation. It is pure:
// analyzing the same text twice yields identical results.
type Analyzer struct{}

// NewAnalyzer creates a new annotation analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Marker families: the dedicated symbol ※, the ASCII alternate * (and
// its full-width form ＊), and the word marker 注 — each followed by
// an ASCII or full-width numeral.
var markerPattern = regexp.MustCompile(`(※|[*＊]|注)([0-9０-９]+)`)

// Footnote shapes, evaluated exhaustively in order; results are merged
// and the binding step resolves ties by scope precedence.
var footnotePatterns = []*regexp.Regexp{
	// 1. Bracket-enclosed marker plus explanation: （※1 保湿成分）
	regexp.MustCompile(`[（(【「\[][\s　]*(※|[*＊]|注)([0-9０-９]+)[\s　]*[:：]?[\s　]*([^）)】」\]]+)[）)】」\]]`),
	// 2. Marker after whitespace, bare explanation: ... ※1保湿成分
	regexp.MustCompile(`(?:^|[\s　])(※|[*＊]|注)([0-9０-９]+)[\s　]*[:：]?[\s　]*([^\s　※＊*]+)`),
	// 3. Marker at line start with colon/space separator: ※1: 保湿成分
	regexp.MustCompile(`(?m)^[\s　]*(※|[*＊]|注)([0-9０-９]+)[:：\s　]+(.+)$`),
}

// Analyze extracts marker occurrences and footnotes from segmentText,
// plus footnotes from fullText when supplied (pass "" to skip), and
// binds every occurrence. A text with no markers returns an empty
// result, never an error.
func (a *Analyzer) Analyze(segmentText, fullText string) model.AnnotationAnalysis {
	occurrences := findMarkerOccurrences(segmentText)

	footnotes := findFootnotes(segmentText, model.ScopeSegment)
	if fullText != "" && fullText != segmentText {
		footnotes = append(footnotes, findFootnotes(fullText, model.ScopeFullText)...)
	}

	bindings := make([]model.Binding, 0, len(occurrences))
	hasValid := false
	for _, occ := range occurrences {
		b := bind(occ, footnotes)
		if b.IsValid {
			hasValid = true
		}
		bindings = append(bindings, b)
	}

	return model.AnnotationAnalysis{
		MarkerOccurrences:    occurrences,
		Footnotes:            footnotes,
		Bindings:             bindings,
		HasAnnotatedKeywords: hasValid,
	}
}

// findMarkerOccurrences locates keyword+marker pairs. A marker with no
// preceding keyword run (start of text, after whitespace or
// punctuation) is a footnote site, not an occurrence.
func findMarkerOccurrences(text string) []model.MarkerOccurrence {
	var occurrences []model.MarkerOccurrence
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		keyword := precedingRun(text, start)
		if keyword == "" {
			continue
		}
		occurrences = append(occurrences, model.MarkerOccurrence{
			Keyword:  keyword,
			Marker:   normalizeMarker(text[start:end]),
			Position: model.Position{Start: start, End: end},
		})
	}
	return occurrences
}

func findFootnotes(text string, scope model.FootnoteScope) []model.Footnote {
	var footnotes []model.Footnote
	seen := make(map[string]bool) // marker+start, to drop overlapping shape hits
	for _, re := range footnotePatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			marker := normalizeMarker(text[loc[2]:loc[3]] + text[loc[4]:loc[5]])
			body := strings.TrimSpace(text[loc[6]:loc[7]])
			if body == "" {
				continue
			}
			key := fmt.Sprintf("%s@%d", marker, loc[2])
			if seen[key] {
				continue
			}
			seen[key] = true
			footnotes = append(footnotes, model.Footnote{
				Marker:   marker,
				Text:     body,
				Position: model.Position{Start: loc[0], End: loc[1]},
				Scope:    scope,
			})
		}
	}
	return footnotes
}

// bind resolves one occurrence against the footnote list, preferring
// segment scope and falling back to full-text scope. No footnote with
// the same marker in either scope yields IsValid=false, not an error.
func bind(occ model.MarkerOccurrence, footnotes []model.Footnote) model.Binding {
	b := model.Binding{Keyword: occ.Keyword, Marker: occ.Marker}
	for _, scope := range []model.FootnoteScope{model.ScopeSegment, model.ScopeFullText} {
		for _, fn := range footnotes {
			if fn.Scope == scope && fn.Marker == occ.Marker {
				b.FootnoteText = fn.Text
				b.Scope = scope
				b.IsValid = true
				return b
			}
		}
	}
	return b
}

// normalizeMarker folds full-width digits and the full-width asterisk
// so ※１ binds a footnote written ※1.
func normalizeMarker(marker string) string {
	var sb strings.Builder
	for _, r := range marker {
		switch {
		case r >= '０' && r <= '９':
			sb.WriteRune('0' + (r - '０'))
		case r == '＊':
			sb.WriteRune('*')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Script classes for keyword candidate extraction. The candidate is
// the maximal run of same-script runes immediately before the marker:
// a katakana run, kanji run, hiragana run, or alphanumeric run.
type scriptClass int

const (
	scriptNone scriptClass = iota
	scriptKatakana
	scriptKanji
	scriptHiragana
	scriptAlnum
)

func classOf(r rune) scriptClass {
	switch {
	case r == 'ー' || (r >= 'ァ' && r <= 'ヶ'):
		return scriptKatakana
	case unicode.Is(unicode.Han, r) || r == '々':
		return scriptKanji
	case r >= 'ぁ' && r <= 'ん':
		return scriptHiragana
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
		return scriptAlnum
	default:
		return scriptNone
	}
}

// precedingRun returns the same-script rune run ending at byte offset
// pos, or "" when the preceding rune belongs to no keyword script.
func precedingRun(text string, pos int) string {
	runes := []rune(text[:pos])
	if len(runes) == 0 {
		return ""
	}
	class := classOf(runes[len(runes)-1])
	if class == scriptNone {
		return ""
	}
	i := len(runes)
	for i > 0 && classOf(runes[i-1]) == class {
		i--
	}
	return string(runes[i:])
}
