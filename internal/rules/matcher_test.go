package rules

import (
	"fmt"
	"testing"

	"github.com/yuidev/adcomply/internal/model"
)

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	tables, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables failed: %v", err)
	}
	return NewMatcher(tables)
}

func TestMatch_AbsoluteAlwaysFires(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.Match("たった2週間で老け見えを解消します")

	found := false
	for _, match := range matches {
		if match.Keyword == "老け見え" {
			found = true
			if match.Tier != model.TierAbsolute {
				t.Errorf("expected absolute tier, got %s", match.Tier)
			}
			if match.RegulatoryClass != model.ClassFairDisplay {
				t.Errorf("expected fair-display class, got %s", match.RegulatoryClass)
			}
			if match.Rationale == "" {
				t.Error("expected a rationale on the match")
			}
		}
	}
	if !found {
		t.Error("expected 老け見え to be flagged")
	}
}

func TestMatch_NoFalsePositives(t *testing.T) {
	m := defaultMatcher(t)

	// 刺す, ハリ, ツヤ are not in any rule table: substring matching
	// must never fire on unlisted terms, however aggressive they sound
	matches := m.Match("刺すようなハリ感とツヤを楽しめます")

	if len(matches) != 0 {
		t.Errorf("expected no matches for unlisted terms, got %+v", matches)
	}
}

func TestMatch_UnlistedTermNextToListedKeyword(t *testing.T) {
	m := defaultMatcher(t)

	// 刺す is not in any table while クマ is: in one sentence the
	// unlisted term must stay silent and the listed one must still fire
	matches := m.Match("刺すような使用感でクマをカバー")

	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d: %+v", len(matches), matches)
	}
	if matches[0].Keyword != "クマ" {
		t.Errorf("expected クマ to fire, got %q", matches[0].Keyword)
	}
	for _, match := range matches {
		if match.Keyword == "刺す" {
			t.Error("unlisted term 刺す must never be flagged")
		}
	}
}

func TestMatch_ConditionalFires(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.Match("ヒアルロン酸配合の美容液")

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Keyword != "ヒアルロン酸" || matches[0].Tier != model.TierConditional {
		t.Errorf("unexpected match: %+v", matches[0])
	}
}

func TestMatch_ContextKeywordAloneIsClean(t *testing.T) {
	m := defaultMatcher(t)

	// The bare keyword without a qualifier must not fire
	matches := m.Match("若々しい印象を与えるデザイン")

	if len(matches) != 0 {
		t.Errorf("expected no matches without qualifier, got %+v", matches)
	}
}

func TestMatch_ContextKeywordWithQualifier(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.Match("たった2週間で若々しい肌があなたのものに")

	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match (one hit per keyword, not per qualifier), got %d: %+v", len(matches), matches)
	}
	if matches[0].Keyword != "若々しい" || matches[0].Tier != model.TierContext {
		t.Errorf("unexpected match: %+v", matches[0])
	}
}

func TestMatch_ContextQualifierWithoutKeyword(t *testing.T) {
	m := defaultMatcher(t)

	// Qualifier framing alone, no regulated keyword: clean
	matches := m.Match("たった2週間でお届けします")

	if len(matches) != 0 {
		t.Errorf("expected no matches for qualifier without keyword, got %+v", matches)
	}
}

func TestMatch_FullWidthQualifierDigits(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.Match("たった２週間で若々しい印象へ")

	if len(matches) != 1 {
		t.Errorf("expected full-width digits to satisfy the qualifier, got %d matches", len(matches))
	}
}

func TestMatch_SynonymsFireIndependently(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.Match("若返りたいあなたへ、若返るセラム")

	count := 0
	for _, match := range matches {
		if match.Keyword == "若返り" || match.Keyword == "若返る" {
			count++
			if match.Tier != model.TierAbsolute {
				t.Errorf("expected absolute tier for %s", match.Keyword)
			}
		}
	}
	if count != 2 {
		t.Errorf("expected both synonyms to fire, got %d", count)
	}
}

func TestMatch_CrossTierHitsPreserved(t *testing.T) {
	// A keyword listed in two tiers fires from both; deduplication is
	// left to consumers
	catalog := []model.KeywordRule{
		{
			Keywords:        []string{"特効"},
			Tier:            model.TierAbsolute,
			Category:        "efficacy",
			Severity:        model.SeverityCritical,
			RegulatoryClass: model.ClassPharmaceutical,
		},
		{
			Keywords:        []string{"特効"},
			Tier:            model.TierConditional,
			Category:        "efficacy",
			Severity:        model.SeverityHigh,
			RegulatoryClass: model.ClassPharmaceutical,
		},
	}
	tables, err := compile("", "test", catalog)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	matches := NewMatcher(tables).Match("特効成分配合")

	if len(matches) != 2 {
		t.Fatalf("expected 2 cross-tier hits, got %d", len(matches))
	}
	tiers := map[model.RuleTier]bool{}
	for _, m := range matches {
		tiers[m.Tier] = true
	}
	if !tiers[model.TierAbsolute] || !tiers[model.TierConditional] {
		t.Errorf("expected one hit per tier, got %+v", matches)
	}
}

func TestMatch_ZeroQualifierRuleSkippedWithWarning(t *testing.T) {
	// A context rule stripped of qualifiers at runtime degrades to
	// "no match" with a diagnostic instead of aborting the scan
	tables := &Tables{
		context: []compiledRule{{
			rule: model.KeywordRule{
				Keywords: []string{"小顔"},
				Tier:     model.TierContext,
				Severity: model.SeverityHigh,
			},
		}},
	}

	var warned []string
	m := NewMatcher(tables)
	m.warnf = func(format string, args ...interface{}) {
		warned = append(warned, fmt.Sprintf(format, args...))
	}

	matches := m.Match("即効で小顔に")

	if len(matches) != 0 {
		t.Errorf("expected no matches from the degraded rule, got %+v", matches)
	}
	if len(warned) != 1 {
		t.Errorf("expected exactly 1 warning, got %d: %v", len(warned), warned)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m := defaultMatcher(t)
	text := "アンチエイジングでシミが消える！ヒアルロン酸とプラセンタ配合、必ず美肌に。"

	first := m.Match(text)
	second := m.Match(text)

	if len(first) != len(second) {
		t.Fatalf("match count differs across runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("match %d differs across runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
