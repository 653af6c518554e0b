package score

import (
	"fmt"
	"math"

	"github.com/yuidev/adcomply/internal/model"
)

// Scorer derives a transparent 0-100 compliance risk index from the
// aggregated validation result. Purely derived data: scoring the same
// result twice yields the same breakdown.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate computes the risk index and diagnostic signals
func (s *Scorer) Calculate(overall model.ValidationResult, results []model.SegmentResult) model.RiskScore {
	var signals []model.Signal

	// 1. Absolute violations (0-50 points)
	absScore, absSignal := s.scoreAbsolute(overall)
	signals = append(signals, absSignal)

	// 2. Context-dependent violations (0-25 points)
	ctxScore, ctxSignal := s.scoreContext(overall)
	signals = append(signals, ctxSignal)

	// 3. Unannotated conditional density (0-15 points)
	condScore, condSignal := s.scoreConditional(overall, len(results))
	signals = append(signals, condSignal)

	// 4. Severity mix bump (0-10 points)
	sevScore, sevSignal := s.scoreSeverity(overall)
	signals = append(signals, sevSignal)

	// 5. Annotation coverage (informational, no points)
	signals = append(signals, s.annotationCoverage(results))

	index := absScore + ctxScore + condScore + sevScore
	if index > 100 {
		index = 100
	}

	return model.RiskScore{
		Index:   index,
		Level:   riskLevel(index),
		Signals: signals,
	}
}

// scoreAbsolute scores absolute-tier hits (0-50 points)
func (s *Scorer) scoreAbsolute(overall model.ValidationResult) (int, model.Signal) {
	n := overall.Summary.ByTier[model.TierAbsolute]
	if n == 0 {
		return 0, model.Signal{
			Type:        model.SignalAbsoluteViolations,
			Severity:    model.SignalInfo,
			Description: "No absolute-tier violations",
			Data:        map[string]interface{}{"count": 0, "score": 0},
		}
	}

	score := int(math.Min(float64(35+5*(n-1)), 50))
	return score, model.Signal{
		Type:        model.SignalAbsoluteViolations,
		Severity:    model.SignalCritical,
		Description: fmt.Sprintf("%d absolute-tier violation(s) detected", n),
		Data: map[string]interface{}{
			"count":   n,
			"score":   score,
			"formula": "min(35 + 5*(count-1), 50)",
		},
	}
}

// scoreContext scores context-dependent hits (0-25 points)
func (s *Scorer) scoreContext(overall model.ValidationResult) (int, model.Signal) {
	n := overall.Summary.ByTier[model.TierContext]
	if n == 0 {
		return 0, model.Signal{
			Type:        model.SignalContextViolations,
			Severity:    model.SignalInfo,
			Description: "No context-dependent violations",
			Data:        map[string]interface{}{"count": 0, "score": 0},
		}
	}

	score := int(math.Min(float64(15+5*(n-1)), 25))
	return score, model.Signal{
		Type:        model.SignalContextViolations,
		Severity:    model.SignalWarning,
		Description: fmt.Sprintf("%d keyword(s) combined with guaranteed-outcome framing", n),
		Data: map[string]interface{}{
			"count":   n,
			"score":   score,
			"formula": "min(15 + 5*(count-1), 25)",
		},
	}
}

// scoreConditional scores unannotated conditional hits relative to
// segment count (0-15 points)
func (s *Scorer) scoreConditional(overall model.ValidationResult, segments int) (int, model.Signal) {
	n := overall.Summary.ByTier[model.TierConditional]
	if n == 0 {
		return 0, model.Signal{
			Type:        model.SignalConditionalDensity,
			Severity:    model.SignalInfo,
			Description: "No unannotated conditional-tier violations",
			Data:        map[string]interface{}{"count": 0, "score": 0},
		}
	}

	if segments == 0 {
		segments = 1
	}
	density := float64(n) / float64(segments)
	score := int(math.Min(float64(5+3*(n-1)), 15))

	severity := model.SignalWarning
	if density >= 1 {
		severity = model.SignalCritical
	}

	return score, model.Signal{
		Type:        model.SignalConditionalDensity,
		Severity:    severity,
		Description: fmt.Sprintf("%d conditional keyword(s) missing a valid footnote", n),
		Data: map[string]interface{}{
			"count":    n,
			"segments": segments,
			"density":  density,
			"score":    score,
			"formula":  "min(5 + 3*(count-1), 15)",
		},
	}
}

// scoreSeverity adds a bump when critical-severity rules fired (0-10)
func (s *Scorer) scoreSeverity(overall model.ValidationResult) (int, model.Signal) {
	critical := overall.Summary.BySeverity[model.SeverityCritical]
	high := overall.Summary.BySeverity[model.SeverityHigh]

	score := 0
	severity := model.SignalInfo
	if critical > 0 {
		score = 10
		severity = model.SignalCritical
	} else if high > 0 {
		score = 5
		severity = model.SignalWarning
	}

	return score, model.Signal{
		Type:        model.SignalSeverityMix,
		Severity:    severity,
		Description: fmt.Sprintf("Severity mix: %d critical, %d high", critical, high),
		Data: map[string]interface{}{
			"critical": critical,
			"high":     high,
			"medium":   overall.Summary.BySeverity[model.SeverityMedium],
			"low":      overall.Summary.BySeverity[model.SeverityLow],
			"score":    score,
		},
	}
}

// annotationCoverage reports how many segments carried valid footnote
// bindings; informational only, never adds points.
func (s *Scorer) annotationCoverage(results []model.SegmentResult) model.Signal {
	annotated := 0
	markers := 0
	for _, r := range results {
		markers += len(r.Annotations.MarkerOccurrences)
		if r.Annotations.HasAnnotatedKeywords {
			annotated++
		}
	}

	return model.Signal{
		Type:        model.SignalAnnotationCoverage,
		Severity:    model.SignalInfo,
		Description: fmt.Sprintf("%d segment(s) with valid footnote bindings, %d marker occurrence(s) total", annotated, markers),
		Data: map[string]interface{}{
			"annotated_segments": annotated,
			"marker_occurrences": markers,
			"segments":           len(results),
		},
	}
}

func riskLevel(index int) string {
	switch {
	case index == 0:
		return "clean"
	case index < 25:
		return "low"
	case index < 50:
		return "medium"
	case index < 75:
		return "high"
	default:
		return "critical"
	}
}
