package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuidev/adcomply/internal/aggregate"
	"github.com/yuidev/adcomply/internal/annotation"
	"github.com/yuidev/adcomply/internal/cache"
	"github.com/yuidev/adcomply/internal/extract"
	"github.com/yuidev/adcomply/internal/llm"
	"github.com/yuidev/adcomply/internal/model"
	"github.com/yuidev/adcomply/internal/rules"
	"github.com/yuidev/adcomply/internal/score"
	"github.com/yuidev/adcomply/internal/segment"
	"github.com/yuidev/adcomply/internal/worker"
)

// Pipeline orchestrates the complete check: segment, analyze
// annotations, match keyword rules, aggregate, score, and optionally
// run the semantic reviewer.
type Pipeline struct {
	fetcher    *Fetcher
	segmenter  *segment.Segmenter
	analyzer   *annotation.Analyzer
	registry   *rules.Registry
	scorer     *score.Scorer
	renderer   *Renderer
	extractors *extract.Registry
	reviewer   *llm.Reviewer // Optional semantic reviewer (nil if disabled)
	cache      cache.Cache   // Optional report cache (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration. A
// malformed rule overlay is fatal here: the pipeline never serves
// checks against partially loaded tables.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	registry, err := rules.NewRegistry(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("load rule tables: %w", err)
	}

	var reviewer *llm.Reviewer
	if cfg.LLM.Provider != "" {
		r, err := llm.NewReviewer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			reviewer = r
		}
	}

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			reportCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			reportCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		fetcher:    NewFetcher(cfg.HTTP, cfg.Concurrency),
		segmenter:  segment.NewSegmenter(cfg.Rules.MaxInputChars),
		analyzer:   annotation.NewAnalyzer(),
		registry:   registry,
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		extractors: extract.NewRegistry(),
		reviewer:   reviewer,
		cache:      reportCache,
		config:     cfg,
	}, nil
}

// CheckText runs the deterministic pre-filter over raw ad copy. The
// productID selects the rule table variant; "" uses the defaults.
func (p *Pipeline) CheckText(ctx context.Context, text, productID string) (*model.Report, error) {
	if p.cache != nil {
		if cached, found := p.cache.Get(cache.ReportKey(productID, text)); found {
			var report model.Report
			if err := json.Unmarshal(cached, &report); err == nil {
				return &report, nil
			}
			// Corrupt entry: recompute below
		}
	}

	segments, err := p.segmenter.Segment(text)
	if err != nil {
		return nil, err
	}

	matcher := rules.NewMatcher(p.registry.ForProduct(productID))
	results := p.evaluateSegments(ctx, segments, text, matcher)

	perSegment := make([]model.ValidationResult, len(results))
	for i, r := range results {
		perSegment[i] = r.Result
	}
	overall := aggregate.Merge(perSegment)

	report := &model.Report{
		ID:        uuid.New().String(),
		Subject:   "text",
		Source:    "-",
		Product:   productID,
		CheckedAt: time.Now().UTC(),
		Segments:  segments,
		Results:   results,
		Overall:   overall,
		Risk:      p.scorer.Calculate(overall, results),
	}

	// The review runs AFTER scoring and never affects it
	if p.reviewer.IsEnabled() {
		review, err := p.reviewer.GenerateReview(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM review failed: %v\n", err)
		} else {
			report.LLM = review
		}
	}

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(cache.ReportKey(productID, text), data, p.config.Cache.TTL)
		}
	}

	return report, nil
}

// evaluateSegments runs annotation analysis, keyword matching, and
// aggregation for every segment concurrently. The analyzers are pure
// and the tables read-only, so fan-out needs no locking; results come
// back in segment order regardless of completion order.
func (p *Pipeline) evaluateSegments(ctx context.Context, segments []model.Segment, fullText string, matcher *rules.Matcher) []model.SegmentResult {
	pool := worker.NewPool(p.config.Concurrency.SegmentWorkers)
	pool.Start()

	for i := range segments {
		pool.Submit(&segmentJob{
			index:    i,
			segment:  segments[i],
			fullText: fullText,
			analyzer: p.analyzer,
			matcher:  matcher,
		})
	}

	results := make([]model.SegmentResult, len(segments))
	for _, r := range pool.Wait() {
		sr := r.(*segmentJobResult)
		results[sr.index] = sr.result
	}
	return results
}

// segmentJob evaluates one segment on the worker pool
type segmentJob struct {
	index    int
	segment  model.Segment
	fullText string
	analyzer *annotation.Analyzer
	matcher  *rules.Matcher
}

type segmentJobResult struct {
	index  int
	result model.SegmentResult
}

func (r *segmentJobResult) GetError() error { return nil }

// Execute runs the deterministic per-segment analysis
func (j *segmentJob) Execute(ctx context.Context) worker.Result {
	analysis := j.analyzer.Analyze(j.segment.Text, j.fullText)
	matches := j.matcher.Match(j.segment.Text)
	result := aggregate.Aggregate(matches, analysis.Bindings)

	return &segmentJobResult{
		index: j.index,
		result: model.SegmentResult{
			SegmentID:   j.segment.ID,
			Annotations: analysis,
			Result:      result,
		},
	}
}

// CheckFile checks a local file; "-" reads stdin
func (p *Pipeline) CheckFile(ctx context.Context, path, productID string) (*model.Report, error) {
	var (
		data    []byte
		err     error
		subject string
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		subject = "stdin"
	} else {
		data, err = os.ReadFile(path)
		subject = filepath.Base(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	adapter := p.extractors.ForContentType(contentTypeForPath(path))
	text, err := adapter.Text(string(data))
	if err != nil {
		return nil, fmt.Errorf("extract text (%s): %w", adapter.Name(), err)
	}

	report, err := p.CheckText(ctx, text, productID)
	if err != nil {
		return nil, err
	}
	report.Subject = subject
	report.Source = path
	return report, nil
}

// ScanURL fetches an ad landing page and checks its visible copy
func (p *Pipeline) ScanURL(ctx context.Context, rawURL, productID string) (*model.Report, error) {
	fetchResult, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	adapter := p.extractors.ForContentType(fetchResult.Meta.ContentType)
	text, err := adapter.Text(fetchResult.Body)
	if err != nil {
		return nil, fmt.Errorf("extract text (%s): %w", adapter.Name(), err)
	}

	report, err := p.CheckText(ctx, text, productID)
	if err != nil {
		return nil, err
	}
	report.Subject = fetchResult.Subject
	report.Source = fetchResult.FinalURL
	report.FetchMeta = &fetchResult.Meta
	return report, nil
}

// CheckTarget dispatches a batch target: http(s) URLs are scanned,
// everything else is treated as a file path. Implements worker.Checker.
func (p *Pipeline) CheckTarget(ctx context.Context, target string) (*model.Report, error) {
	if isURL(target) {
		return p.ScanURL(ctx, target, "")
	}
	return p.CheckFile(ctx, target, "")
}

func isURL(target string) bool {
	u, err := url.Parse(target)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func contentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	default:
		return "text/plain"
	}
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// The review goes to its own file, never mixed into the findings
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		llmMarkdown := llm.RenderSeparateMarkdown(report.LLM)
		if err := p.renderer.RenderLLMMarkdown(llmMarkdown, llmMdPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM review: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM review: %s\n", llmMdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
