package aggregate

import (
	"reflect"
	"testing"

	"github.com/yuidev/adcomply/internal/model"
)

func conditionalMatch(keyword string, severity model.Severity) model.KeywordMatch {
	return model.KeywordMatch{
		Keyword:         keyword,
		Tier:            model.TierConditional,
		Category:        "ingredient",
		Severity:        severity,
		RegulatoryClass: model.ClassPharmaceutical,
	}
}

func absoluteMatch(keyword string) model.KeywordMatch {
	return model.KeywordMatch{
		Keyword:         keyword,
		Tier:            model.TierAbsolute,
		Category:        "efficacy",
		Severity:        model.SeverityCritical,
		RegulatoryClass: model.ClassPharmaceutical,
	}
}

func validBinding(keyword, marker, footnote string) model.Binding {
	return model.Binding{
		Keyword:      keyword,
		Marker:       marker,
		FootnoteText: footnote,
		Scope:        model.ScopeSegment,
		IsValid:      true,
	}
}

func TestAggregate_ConditionalSuppressedByValidBinding(t *testing.T) {
	matches := []model.KeywordMatch{conditionalMatch("浸透", model.SeverityMedium)}
	bindings := []model.Binding{validBinding("浸透", "※1", "角質層まで")}

	result := Aggregate(matches, bindings)

	if result.HasViolations {
		t.Errorf("expected annotated conditional match to be suppressed, got %+v", result.Matches)
	}
	if result.Summary.Total != 0 {
		t.Errorf("expected total 0, got %d", result.Summary.Total)
	}
}

func TestAggregate_ContainmentSuppression(t *testing.T) {
	// The analyzer extracts same-script runs: the binding keyword may be
	// a fragment (酸 for ヒアルロン酸) or a compound (直注入 for 注入).
	// Both directions must suppress.
	matches := []model.KeywordMatch{
		conditionalMatch("ヒアルロン酸", model.SeverityMedium),
		conditionalMatch("注入", model.SeverityHigh),
	}
	bindings := []model.Binding{
		validBinding("酸", "※1", "保湿成分"),
		validBinding("直注入", "※2", "角質層まで"),
	}

	result := Aggregate(matches, bindings)

	if result.HasViolations {
		t.Errorf("expected both matches suppressed via containment, got %+v", result.Matches)
	}
}

func TestAggregate_InvalidBindingDoesNotSuppress(t *testing.T) {
	matches := []model.KeywordMatch{conditionalMatch("浸透", model.SeverityMedium)}
	bindings := []model.Binding{{Keyword: "浸透", Marker: "※1", IsValid: false}}

	result := Aggregate(matches, bindings)

	if !result.HasViolations {
		t.Error("expected unannotated conditional match to remain")
	}
	if result.Summary.ByTier[model.TierConditional] != 1 {
		t.Errorf("expected 1 conditional violation, got %d", result.Summary.ByTier[model.TierConditional])
	}
}

func TestAggregate_UnrelatedBindingDoesNotSuppress(t *testing.T) {
	matches := []model.KeywordMatch{conditionalMatch("プラセンタ", model.SeverityMedium)}
	bindings := []model.Binding{validBinding("浸透", "※1", "角質層まで")}

	result := Aggregate(matches, bindings)

	if !result.HasViolations {
		t.Error("expected match with unrelated binding to remain")
	}
}

func TestAggregate_AbsoluteNeverSuppressed(t *testing.T) {
	matches := []model.KeywordMatch{absoluteMatch("若返り")}
	bindings := []model.Binding{validBinding("若返り", "※1", "個人の感想です")}

	result := Aggregate(matches, bindings)

	if !result.HasViolations {
		t.Error("expected absolute-tier match to survive any annotation")
	}
	if result.Summary.ByTier[model.TierAbsolute] != 1 {
		t.Errorf("expected 1 absolute violation, got %d", result.Summary.ByTier[model.TierAbsolute])
	}
}

func TestAggregate_ContextNeverSuppressed(t *testing.T) {
	matches := []model.KeywordMatch{{
		Keyword:         "若々しい",
		Tier:            model.TierContext,
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassFairDisplay,
	}}
	bindings := []model.Binding{validBinding("若々しい", "※1", "個人の感想です")}

	result := Aggregate(matches, bindings)

	if result.Summary.ByTier[model.TierContext] != 1 {
		t.Error("expected context-dependent match to survive any annotation")
	}
}

func TestAggregate_SummaryAndUniqueOrder(t *testing.T) {
	matches := []model.KeywordMatch{
		absoluteMatch("若返り"),
		conditionalMatch("ヒアルロン酸", model.SeverityMedium),
		conditionalMatch("ヒアルロン酸", model.SeverityMedium), // repeat
		conditionalMatch("浸透", model.SeverityMedium),
	}

	result := Aggregate(matches, nil)

	if result.Summary.Total != 4 {
		t.Errorf("expected total 4, got %d", result.Summary.Total)
	}
	if result.Summary.ByTier[model.TierAbsolute] != 1 || result.Summary.ByTier[model.TierConditional] != 3 {
		t.Errorf("unexpected tier counts: %+v", result.Summary.ByTier)
	}
	if result.Summary.BySeverity[model.SeverityCritical] != 1 || result.Summary.BySeverity[model.SeverityMedium] != 3 {
		t.Errorf("unexpected severity counts: %+v", result.Summary.BySeverity)
	}

	want := []string{"若返り", "ヒアルロン酸", "浸透"}
	if !reflect.DeepEqual(result.UniqueFlaggedKeywords, want) {
		t.Errorf("unique keywords = %v, want %v", result.UniqueFlaggedKeywords, want)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	result := Aggregate(nil, nil)

	if result.HasViolations {
		t.Error("expected no violations for empty input")
	}
	if len(result.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(result.Matches))
	}
	if result.Summary.Total != 0 {
		t.Errorf("expected total 0, got %d", result.Summary.Total)
	}
}

func TestAggregate_InputsNotMutated(t *testing.T) {
	matches := []model.KeywordMatch{
		conditionalMatch("浸透", model.SeverityMedium),
		absoluteMatch("若返り"),
	}
	bindings := []model.Binding{validBinding("浸透", "※1", "角質層まで")}

	matchesCopy := make([]model.KeywordMatch, len(matches))
	copy(matchesCopy, matches)
	bindingsCopy := make([]model.Binding, len(bindings))
	copy(bindingsCopy, bindings)

	_ = Aggregate(matches, bindings)

	if !reflect.DeepEqual(matches, matchesCopy) {
		t.Error("Aggregate mutated the matches slice")
	}
	if !reflect.DeepEqual(bindings, bindingsCopy) {
		t.Error("Aggregate mutated the bindings slice")
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	matches := []model.KeywordMatch{
		absoluteMatch("アンチエイジング"),
		conditionalMatch("コラーゲン", model.SeverityLow),
	}
	bindings := []model.Binding{validBinding("コラーゲン", "*1", "保湿成分")}

	first := Aggregate(matches, bindings)
	second := Aggregate(matches, bindings)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results across runs")
	}
}

func TestMerge(t *testing.T) {
	a := Aggregate([]model.KeywordMatch{absoluteMatch("若返り")}, nil)
	b := Aggregate([]model.KeywordMatch{
		conditionalMatch("浸透", model.SeverityMedium),
		absoluteMatch("若返り"),
	}, nil)

	merged := Merge([]model.ValidationResult{a, b})

	if merged.Summary.Total != 3 {
		t.Errorf("expected total 3, got %d", merged.Summary.Total)
	}
	if merged.Summary.ByTier[model.TierAbsolute] != 2 {
		t.Errorf("expected 2 absolute violations, got %d", merged.Summary.ByTier[model.TierAbsolute])
	}

	// Keywords deduplicated across segments, first-seen order kept
	want := []string{"若返り", "浸透"}
	if !reflect.DeepEqual(merged.UniqueFlaggedKeywords, want) {
		t.Errorf("unique keywords = %v, want %v", merged.UniqueFlaggedKeywords, want)
	}
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge(nil)
	if merged.HasViolations {
		t.Error("expected no violations for empty merge")
	}
}
