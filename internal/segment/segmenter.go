package segment

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuidev/adcomply/internal/model"
)

// Segmenter splits raw advertising copy into ordered semantic units.
// It is pure and synchronous: no I/O, no shared mutable state.
type Segmenter struct {
	maxChars int
}

// NewSegmenter creates a segmenter that accepts inputs up to maxChars
// runes. Non-positive values fall back to the default limit.
func NewSegmenter(maxChars int) *Segmenter {
	if maxChars <= 0 {
		maxChars = model.DefaultConfig().Rules.MaxInputChars
	}
	return &Segmenter{maxChars: maxChars}
}

// Boundary characters, in priority order: structural delimiter (a
// bracketed lead-in 【…】 ends a unit), line break, sentence-final
// punctuation. A segment always ends immediately after the boundary
// rune, so concatenating segment texts reproduces the input exactly.
func isStructuralBoundary(r rune) bool {
	return r == '】'
}

func isLineBoundary(r rune) bool {
	return r == '\n'
}

func isSentenceBoundary(r rune) bool {
	switch r {
	case '。', '．', '！', '？', '!', '?':
		return true
	}
	return false
}

// Segment splits text into ordered, non-overlapping, contiguous
// segments covering the whole input. Returns model.ErrEmptyInput or
// model.ErrInputTooLong for out-of-range input; unexpected symbols are
// never a reason to reject.
func (s *Segmenter) Segment(text string) ([]model.Segment, error) {
	if text == "" {
		return nil, model.ErrEmptyInput
	}
	if n := utf8.RuneCountInString(text); n > s.maxChars {
		return nil, fmt.Errorf("%w: %d runes (max %d)", model.ErrInputTooLong, n, s.maxChars)
	}

	spans := splitSpans(text)
	spans = mergeWhitespaceSpans(text, spans)

	segments := make([]model.Segment, 0, len(spans))
	for i, sp := range spans {
		unit := text[sp.start:sp.end]
		segments = append(segments, model.Segment{
			ID:       fmt.Sprintf("seg-%d", i+1),
			Text:     unit,
			Type:     classify(unit),
			Position: model.Position{Start: sp.start, End: sp.end},
		})
	}
	return segments, nil
}

type span struct {
	start, end int
}

// splitSpans performs boundary detection in one left-to-right rune
// scan. ASCII '.' only terminates when followed by whitespace or end
// of input, to avoid splitting decimals and abbreviations.
func splitSpans(text string) []span {
	var spans []span
	start := 0

	for i, r := range text {
		size := utf8.RuneLen(r)
		cut := false

		switch {
		case isStructuralBoundary(r), isLineBoundary(r), isSentenceBoundary(r):
			cut = true
		case r == '.':
			next := i + size
			cut = next >= len(text) || text[next] == ' ' || text[next] == '\t' || text[next] == '\n'
		}

		if cut {
			spans = append(spans, span{start: start, end: i + size})
			start = i + size
		}
	}

	// Whole remainder as one segment if no boundary closed it
	if start < len(text) {
		spans = append(spans, span{start: start, end: len(text)})
	}
	return spans
}

// mergeWhitespaceSpans folds whitespace-only units into the preceding
// unit (or the following one at the start of the input) so that blank
// lines never surface as segments of their own.
func mergeWhitespaceSpans(text string, spans []span) []span {
	merged := make([]span, 0, len(spans))
	for _, sp := range spans {
		if strings.TrimSpace(text[sp.start:sp.end]) == "" {
			if len(merged) > 0 {
				merged[len(merged)-1].end = sp.end
				continue
			}
		}
		merged = append(merged, sp)
	}
	// Leading whitespace-only span with nothing before it: attach forward
	if len(merged) >= 2 && strings.TrimSpace(text[merged[0].start:merged[0].end]) == "" {
		merged[1].start = merged[0].start
		merged = merged[1:]
	}
	return merged
}

// Classification cues, checked in order. The first family that matches
// wins; nothing matching defaults to unknown rather than erroring.
var (
	disclaimerCue  = regexp.MustCompile(`^[\s　]*[※＊*]|^[\s　]*注[0-9０-９]|個人差があります|効果・効能を保証|効果を保証するものでは|イメージです`)
	evidenceCue    = regexp.MustCompile(`[0-9０-９][0-9０-９,，]*(\.[0-9０-９]+)?\s*[%％]|満足度|調査|試験|モニター|実証|臨床|データ|No\.?\s?[0-9０-９]|第[0-9０-９一二三]+位`)
	ctaCue         = regexp.MustCompile(`今すぐ|お申し?込み|ご購入|購入は|ご注文|注文は|クリック|タップ|お試し|送料無料|キャンペーン|期間限定|こちらから`)
	explanationCue = regexp.MustCompile(`ため|ので|により|によって|とは、?|について|なぜなら|というのも|だから`)
	claimCue       = regexp.MustCompile(`です[。．]?\s*$|ます[。．]?\s*$|できる|できます|に導き|へ導く|実現|叶え|あなたのもの`)
)

func classify(unit string) model.SegmentType {
	switch {
	case disclaimerCue.MatchString(unit):
		return model.SegmentTypeDisclaimer
	case evidenceCue.MatchString(unit):
		return model.SegmentTypeEvidence
	case ctaCue.MatchString(unit):
		return model.SegmentTypeCTA
	case explanationCue.MatchString(unit):
		return model.SegmentTypeExplanation
	case claimCue.MatchString(unit):
		return model.SegmentTypeClaim
	default:
		return model.SegmentTypeUnknown
	}
}
