package model

import "time"

// Config is the complete vogsphere configuration
type Config struct {
	PostTag     string       `json:"post_tag" yaml:"post_tag" mapstructure:"post_tag"`             // Outer wrapper tag of the claim post
	TrueLiteral string       `json:"true_literal" yaml:"true_literal" mapstructure:"true_literal"` // Raw value a boolean field must equal to be true
	Fields      Manifest     `json:"fields" yaml:"fields" mapstructure:"fields"`
	Form        FormConfig   `json:"form" yaml:"form" mapstructure:"form"`
	Cache       CacheConfig  `json:"cache" yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
}

// FormConfig controls how remote form pages are fetched
type FormConfig struct {
	Timeout           time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
	MaxBytes          int64         `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`
	RespectRobots     bool          `json:"respect_robots" yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSecond float64       `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `json:"burst" yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string        `json:"http_proxy,omitempty" yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `json:"https_proxy,omitempty" yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `json:"no_proxy,omitempty" yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls the fetched-form cache
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `json:"dir" yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls how results are written
type OutputConfig struct {
	Format  string `json:"format" yaml:"format" mapstructure:"format"` // text or json
	Verbose bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		PostTag:     "pathfinder",
		TrueLiteral: "true",
		Fields:      DefaultManifest(),
		Form: FormConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Vogsphere/0.1 (+https://github.com/rp-magrathea/vogsphere)",
			MaxBytes:          2_000_000,
			RespectRobots:     true,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".vogsphere-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}
