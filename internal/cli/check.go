package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuidev/adcomply/internal/model"
	"github.com/yuidev/adcomply/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	product     string
	rulesFile   string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check ad copy from a file or stdin",
	Long: `Check runs the deterministic compliance pre-filter over ad copy:
- Segment the text losslessly into claims, explanations, and disclaimers
- Detect annotation markers (※1, *2, 注3) and bind them to footnotes
- Match regulated terms against the three-tier keyword tables
- Suppress conditional terms carrying a valid clarifying footnote
- Compute a transparent risk index with explainable signals

Use "-" to read from stdin.

Example:
  adcomply check ad-copy.txt
  cat ad-copy.txt | adcomply check -
  adcomply check lp.html --product serum-x --rules serum-x.yaml
  adcomply check ad-copy.txt --json report.json --md report.md --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Rule flags
	checkCmd.Flags().StringVar(&product, "product", "", "product identifier selecting a rule table variant")
	checkCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule overlay merged on top of the built-in catalog for --product")

	// Behavior flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache (force recomputation)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the semantic LLM review (advisory, never affects findings)")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.CheckFile(ctx, path, product)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Segmented into %d unit(s)\n", len(report.Segments))
		fmt.Fprintf(os.Stderr, "✓ Found %d violation(s)\n", report.Overall.Summary.Total)
		fmt.Fprintf(os.Stderr, "✓ Risk index: %d/100\n", report.Risk.Index)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM review using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	// Non-zero exit on violations so CI gates can use the pre-filter
	if report.Overall.HasViolations {
		os.Exit(2)
	}
	return nil
}

// buildConfig assembles the effective configuration from defaults and
// the flags shared by check/scan/batch.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if rulesFile != "" {
		if product == "" {
			return nil, fmt.Errorf("--rules requires --product")
		}
		cfg.Rules.ProductFiles = map[string]string{product: rulesFile}
	}

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// configureLLM wires provider credentials from the environment
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.StrictHints = true // Always enforce

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
