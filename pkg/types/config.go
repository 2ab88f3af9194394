package types

import (
	"fmt"
	"time"
)

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level emitted: debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects the encoder: console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ExtractionMode selects which citation families are reported.
type ExtractionMode string

const (
	ModeAll       ExtractionMode = "all"
	ModeKamerstuk ExtractionMode = "kamerstuk"
)

// ParseExtractionMode validates a mode name from a flag or config file.
// The empty string selects ModeAll.
func ParseExtractionMode(s string) (ExtractionMode, error) {
	switch ExtractionMode(s) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeKamerstuk:
		return ModeKamerstuk, nil
	}
	return "", fmt.Errorf("unknown extraction mode %q (want %s or %s)", s, ModeAll, ModeKamerstuk)
}

// EngineConfig holds settings for the grammar-driven citation engine.
type EngineConfig struct {
	// Mode selects the extraction root filter (default all).
	Mode ExtractionMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// GrammarFile overrides the embedded grammar with an external YAML
	// grammar document. Empty uses the embedded grammar.
	GrammarFile string `json:"grammar_file,omitempty" yaml:"grammar_file,omitempty" mapstructure:"grammar_file"`
}

// HTTPConfig holds shared HTTP settings used by commands that retrieve
// documents over the network.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nllegalcit/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on 429, 502, 503 and 504 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RequestsPerSecond limits requests per host (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst is the per-host burst size (default 1).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`

	// CacheTTL is how long fetched documents are kept in memory (default 15m).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// RespectRobots makes requests honor the site's robots.txt, including
	// its crawl delay (default true in the CLI).
	RespectRobots bool `json:"respect_robots" yaml:"respect_robots" mapstructure:"respect_robots"`

	// RechtspraakURL is the base URL of the rechtspraak.nl document API.
	RechtspraakURL string `json:"rechtspraak_url" yaml:"rechtspraak_url" mapstructure:"rechtspraak_url"`

	// LidoURL is the base URL of the LiDO linked-data service.
	LidoURL string `json:"lido_url" yaml:"lido_url" mapstructure:"lido_url"`
}

// ConversionBackend identifies the PDF-to-text tool.
type ConversionBackend string

const (
	BackendPdftotext  ConversionBackend = "pdftotext"
	BackendMarkitdown ConversionBackend = "markitdown"
)

// ConversionConfig holds settings for turning documents into plain text.
type ConversionConfig struct {
	// Backend selects the PDF tool: pdftotext or markitdown (default pdftotext).
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// StoreConfig holds settings for the citation database.
type StoreConfig struct {
	// Dir contains citations.db and the export files (default .nllegalcit).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of listed citations (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Engine     EngineConfig     `json:"engine" yaml:"engine" mapstructure:"engine"`
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
}
