package model

import "time"

// Config is the complete adcomply configuration
type Config struct {
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RulesConfig controls rule table loading and input limits
type RulesConfig struct {
	// MaxInputChars is the maximum accepted input length in runes
	MaxInputChars int `yaml:"max_input_chars" mapstructure:"max_input_chars"`

	// ProductFiles maps a product identifier to a YAML rule overlay
	// file merged on top of the built-in catalog for that product
	ProductFiles map[string]string `yaml:"product_files,omitempty" mapstructure:"product_files"`
}

// HTTPConfig controls landing-page fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls the report cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir,omitempty" mapstructure:"dir"` // Non-empty enables the disk layer
}

// ConcurrencyConfig controls worker counts and rate limits
type ConcurrencyConfig struct {
	SegmentWorkers    int     `yaml:"segment_workers" mapstructure:"segment_workers"`
	BatchWorkers      int     `yaml:"batch_workers" mapstructure:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LLMConfig configures the optional semantic reviewer
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic", "ollama", "" (disabled)
	Model       string `yaml:"model" mapstructure:"model"`
	APIKey      string `yaml:"-" mapstructure:"-"` // Environment only, never persisted
	BaseURL     string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int    `yaml:"timeout" mapstructure:"timeout"` // Seconds
	StrictHints bool   `yaml:"strict_hints" mapstructure:"strict_hints"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			MaxInputChars: 50_000,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "adcomply/0.1 (+https://github.com/yuidev/adcomply)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			SegmentWorkers:    8,
			BatchWorkers:      4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		LLM: LLMConfig{
			Provider:    "", // Disabled by default
			Timeout:     30,
			StrictHints: true,
			MaxTokens:   1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
