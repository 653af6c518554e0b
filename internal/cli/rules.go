package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuidev/adcomply/internal/model"
	"github.com/yuidev/adcomply/internal/rules"
)

var (
	rulesProduct string
	rulesOverlay string
	rulesTier    string
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active keyword rule tables",
	Long: `List the compiled keyword rules, tier by tier, as the matcher will
apply them. Useful for reviewing what a product overlay adds on top of
the built-in catalog before running checks against it.

Example:
  adcomply rules
  adcomply rules --tier absolute
  adcomply rules --product serum-x --overlay serum-x.yaml`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesProduct, "product", "", "product identifier for the overlay")
	rulesCmd.Flags().StringVar(&rulesOverlay, "overlay", "", "YAML rule overlay file to merge and list")
	rulesCmd.Flags().StringVar(&rulesTier, "tier", "", "only list one tier (absolute, conditional, context-dependent)")
}

func runRules(cmd *cobra.Command, args []string) error {
	var (
		tables *rules.Tables
		err    error
	)
	if rulesOverlay != "" {
		tables, err = rules.LoadTables(rulesProduct, rulesOverlay)
	} else {
		tables, err = rules.DefaultTables()
	}
	if err != nil {
		return err
	}

	label := "built-in catalog"
	if rulesOverlay != "" {
		label = fmt.Sprintf("built-in catalog + %s", rulesOverlay)
	}
	fmt.Printf("Rule tables (%s): %d rule(s)\n\n", label, tables.Len())

	var current model.RuleTier
	count := 0
	for _, rule := range tables.All() {
		if rulesTier != "" && string(rule.Tier) != rulesTier {
			continue
		}
		if rule.Tier != current {
			if current != "" {
				fmt.Println()
			}
			current = rule.Tier
			fmt.Printf("── %s ──\n", tierHeading(rule.Tier))
		}
		count++

		fmt.Printf("  %s [%s/%s] %s\n",
			strings.Join(quoteAll(rule.Keywords), " "),
			rule.Severity, rule.RegulatoryClass, rule.Category)
		if len(rule.Qualifiers) > 0 {
			fmt.Printf("    qualifiers: %s\n", strings.Join(rule.Qualifiers, " | "))
		}
		if verbose && rule.Rationale != "" {
			fmt.Printf("    %s\n", rule.Rationale)
		}
	}

	if count == 0 {
		fmt.Println("No rules matched the filter.")
	}
	return nil
}

func tierHeading(tier model.RuleTier) string {
	switch tier {
	case model.TierAbsolute:
		return "Absolute (always flagged)"
	case model.TierConditional:
		return "Conditional (suppressible by valid annotation)"
	case model.TierContext:
		return "Context-dependent (keyword + qualifier)"
	}
	return string(tier)
}

func quoteAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = "「" + kw + "」"
	}
	return out
}
