package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuidev/adcomply/internal/model"
)

// Matcher scans text against one product's rule tables. It is total
// over well-formed text: it returns an answer (possibly empty) rather
// than erroring, and a rule that cannot be evaluated is skipped with a
// logged diagnostic.
type Matcher struct {
	tables *Tables
	warnf  func(format string, args ...interface{})
}

// NewMatcher creates a matcher over the given tables
func NewMatcher(tables *Tables) *Matcher {
	return &Matcher{
		tables: tables,
		warnf: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// Match scans text against all three tiers and returns the raw hits.
// The same keyword text may fire from more than one tier; cross-tier
// deduplication is deliberately not performed here (pending product
// confirmation that double-counting is wanted, the observed reference
// behavior is preserved).
func (m *Matcher) Match(text string) []model.KeywordMatch {
	var matches []model.KeywordMatch
	matches = append(matches, m.matchPresence(text, m.tables.absolute)...)
	matches = append(matches, m.matchPresence(text, m.tables.conditional)...)
	matches = append(matches, m.matchContext(text)...)
	return matches
}

// matchPresence reports one hit per synonym found verbatim in the
// text. Matching is substring-based, never fuzzy: a term not listed in
// any rule is never reported.
func (m *Matcher) matchPresence(text string, tier []compiledRule) []model.KeywordMatch {
	var matches []model.KeywordMatch
	for _, cr := range tier {
		for _, kw := range cr.rule.Keywords {
			if strings.Contains(text, kw) {
				matches = append(matches, toMatch(kw, cr.rule))
			}
		}
	}
	return matches
}

// matchContext fires only when a keyword co-occurs with one of the
// rule's qualifier patterns in the same text window. The bare keyword
// alone is not a match.
func (m *Matcher) matchContext(text string) []model.KeywordMatch {
	var matches []model.KeywordMatch
	for _, cr := range m.tables.context {
		if len(cr.qualifiers) == 0 {
			// Degrade to "no match for this rule" rather than abort the scan
			m.warnf("context rule %q has no evaluable qualifiers, skipped", strings.Join(cr.rule.Keywords, "/"))
			continue
		}
		qualified := false
		for _, re := range cr.qualifiers {
			if re.MatchString(text) {
				qualified = true
				break
			}
		}
		if !qualified {
			continue
		}
		for _, kw := range cr.rule.Keywords {
			if strings.Contains(text, kw) {
				matches = append(matches, toMatch(kw, cr.rule))
			}
		}
	}
	return matches
}

func toMatch(keyword string, rule model.KeywordRule) model.KeywordMatch {
	return model.KeywordMatch{
		Keyword:         keyword,
		Tier:            rule.Tier,
		Category:        rule.Category,
		Severity:        rule.Severity,
		RegulatoryClass: rule.RegulatoryClass,
		Rationale:       rule.Rationale,
		ReferenceHint:   rule.ReferenceHint,
	}
}
