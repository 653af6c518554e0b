package rules

import (
	"fmt"
	"os"
	"regexp"

	"github.com/yuidev/adcomply/internal/model"
	"gopkg.in/yaml.v3"
)

// compiledRule pairs one rule record with its compiled qualifier
// patterns (context tier only).
type compiledRule struct {
	rule       model.KeywordRule
	qualifiers []*regexp.Regexp
}

// Tables holds the three rule tiers for one product, compiled once at
// startup and read-only afterwards. Concurrent use requires no locking.
type Tables struct {
	product     string
	absolute    []compiledRule
	conditional []compiledRule
	context     []compiledRule
}

// Product returns the product identifier the tables were built for
// ("" for the default catalog).
func (t *Tables) Product() string {
	return t.product
}

// Len returns the total number of compiled rules across all tiers
func (t *Tables) Len() int {
	return len(t.absolute) + len(t.conditional) + len(t.context)
}

// All returns the rule records in catalog order, absolute tier first
func (t *Tables) All() []model.KeywordRule {
	out := make([]model.KeywordRule, 0, t.Len())
	for _, tier := range [][]compiledRule{t.absolute, t.conditional, t.context} {
		for _, cr := range tier {
			out = append(out, cr.rule)
		}
	}
	return out
}

// DefaultTables compiles the built-in catalog
func DefaultTables() (*Tables, error) {
	return compile("", "builtin", builtinCatalog)
}

// LoadTables compiles the built-in catalog plus a YAML overlay file of
// additional rules for the given product. A malformed overlay is fatal:
// the process must not serve requests with partially loaded tables.
func LoadTables(product, overlayPath string) (*Tables, error) {
	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return nil, &model.RuleLoadError{Source: overlayPath, Index: -1, Reason: "read overlay", Err: err}
	}

	var overlay struct {
		Rules []model.KeywordRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, &model.RuleLoadError{Source: overlayPath, Index: -1, Reason: "parse overlay", Err: err}
	}

	catalog := make([]model.KeywordRule, 0, len(builtinCatalog)+len(overlay.Rules))
	catalog = append(catalog, builtinCatalog...)
	catalog = append(catalog, overlay.Rules...)
	return compile(product, overlayPath, catalog)
}

// compile validates every rule record and compiles qualifier patterns.
// Any malformed definition aborts the whole load (RuleLoadError).
func compile(product, source string, catalog []model.KeywordRule) (*Tables, error) {
	t := &Tables{product: product}
	for i, rule := range catalog {
		if len(rule.Keywords) == 0 {
			return nil, &model.RuleLoadError{Source: source, Index: i, Reason: "rule has no keywords"}
		}
		for _, kw := range rule.Keywords {
			if kw == "" {
				return nil, &model.RuleLoadError{Source: source, Index: i, Reason: "empty keyword"}
			}
		}
		if !validSeverity(rule.Severity) {
			return nil, &model.RuleLoadError{Source: source, Index: i, Reason: fmt.Sprintf("unknown severity %q", rule.Severity)}
		}

		cr := compiledRule{rule: rule}
		switch rule.Tier {
		case model.TierAbsolute:
			t.absolute = append(t.absolute, cr)
		case model.TierConditional:
			t.conditional = append(t.conditional, cr)
		case model.TierContext:
			if len(rule.Qualifiers) == 0 {
				return nil, &model.RuleLoadError{Source: source, Index: i, Reason: "context-dependent rule has no qualifiers"}
			}
			for _, q := range rule.Qualifiers {
				re, err := regexp.Compile(q)
				if err != nil {
					return nil, &model.RuleLoadError{Source: source, Index: i, Reason: fmt.Sprintf("qualifier %q does not compile", q), Err: err}
				}
				cr.qualifiers = append(cr.qualifiers, re)
			}
			t.context = append(t.context, cr)
		default:
			return nil, &model.RuleLoadError{Source: source, Index: i, Reason: fmt.Sprintf("unknown tier %q", rule.Tier)}
		}
	}
	return t, nil
}

func validSeverity(s model.Severity) bool {
	switch s {
	case model.SeverityLow, model.SeverityMedium, model.SeverityHigh, model.SeverityCritical:
		return true
	}
	return false
}

// Registry maps product identifiers to their rule tables, falling back
// to the default catalog for unknown products. Built once at startup
// from RulesConfig.ProductFiles; read-only afterwards.
type Registry struct {
	defaults *Tables
	products map[string]*Tables
}

// NewRegistry builds the registry. Any overlay failing to load is
// fatal so the process never runs with partially loaded tables.
func NewRegistry(cfg model.RulesConfig) (*Registry, error) {
	defaults, err := DefaultTables()
	if err != nil {
		return nil, err
	}

	r := &Registry{defaults: defaults, products: make(map[string]*Tables)}
	for product, path := range cfg.ProductFiles {
		t, err := LoadTables(product, path)
		if err != nil {
			return nil, err
		}
		r.products[product] = t
	}
	return r, nil
}

// ForProduct returns the tables for a product identifier, or the
// default tables when the product has no overlay.
func (r *Registry) ForProduct(product string) *Tables {
	if t, ok := r.products[product]; ok {
		return t
	}
	return r.defaults
}
