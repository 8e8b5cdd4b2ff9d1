package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/statement"
)

// FileName is the config file at the root of a data directory.
const FileName = "rentalai.yaml"

// Config represents the top-level rentalai.yaml configuration. Fields with
// an env tag can be overridden from the environment.
type Config struct {
	Property PropertyConfig `yaml:"property"`
	PDF      PDFConfig      `yaml:"pdf"`
	Income   IncomeConfig   `yaml:"income"`
	OCR      OCRConfig      `yaml:"ocr"`
	Log      LogConfig      `yaml:"log"`
	Git      GitConfig      `yaml:"git"`
}

// PropertyConfig identifies the property the books belong to.
type PropertyConfig struct {
	Name string `yaml:"name"`
}

// PDFConfig controls statement intake.
type PDFConfig struct {
	DefaultPassword string `yaml:"default_password" env:"PDF_DEFAULT_PASSWORD"`
	MaxSizeMB       int    `yaml:"max_size_mb"`
}

// MaxSizeBytes is the upload limit in bytes.
func (p PDFConfig) MaxSizeBytes() int64 {
	return int64(p.MaxSizeMB) << 20
}

// Password returns supplied, or the default password when it is empty.
func (p PDFConfig) Password(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return p.DefaultPassword
}

// IncomeConfig holds the ordered payer rules that tag credits.
type IncomeConfig struct {
	Rules    []statement.IncomeRule `yaml:"rules,omitempty"`
	Fallback model.IncomeType       `yaml:"fallback"`
}

// Classifier builds the classifier for these rules.
func (i IncomeConfig) Classifier() *statement.Classifier {
	return statement.NewClassifier(i.Rules, i.Fallback)
}

// OCRConfig controls the OCR text fallback for scanned pages.
type OCRConfig struct {
	Enabled    bool   `yaml:"enabled" env:"RENTALAI_OCR_ENABLED"`
	Rasterizer string `yaml:"rasterizer"`
	Recognizer string `yaml:"recognizer"`
	DPI        int    `yaml:"dpi"`
	Lang       string `yaml:"lang"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"RENTALAI_LOG_LEVEL"`
	Format string `yaml:"format" env:"RENTALAI_LOG_FORMAT"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a rentalai.yaml file from disk and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default(propertyName string) *Config {
	return &Config{
		Property: PropertyConfig{Name: propertyName},
		PDF: PDFConfig{
			MaxSizeMB: 10,
		},
		Income: IncomeConfig{
			Fallback: model.IncomeLodge,
		},
		OCR: OCRConfig{
			Rasterizer: "pdftoppm",
			Recognizer: "tesseract",
			DPI:        200,
			Lang:       "eng",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "rentalai",
			AuthorEmail: "rentalai@localhost",
		},
	}
}
