package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
)

// FileName is the default config file name.
const FileName = "quotation.yaml"

// Config represents the top-level quotation.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Document DocumentConfig `yaml:"document"`
	Export   ExportConfig   `yaml:"export"`
	Browser  BrowserConfig  `yaml:"browser"`
	Log      LogConfig      `yaml:"log"`
}

// BusinessConfig is the letterhead printed on every estimate.
type BusinessConfig struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline,omitempty"`
	Address string `yaml:"address,omitempty"`
	Phone   string `yaml:"phone,omitempty"`
	Email   string `yaml:"email,omitempty"`
}

// DocumentConfig controls the estimate body.
type DocumentConfig struct {
	Title          string   `yaml:"title"`
	EstimatePrefix string   `yaml:"estimate_prefix"`
	EstimateSeq    int      `yaml:"estimate_seq"`
	Notes          []string `yaml:"notes,omitempty"`
}

// ExportConfig controls page geometry and the output file.
type ExportConfig struct {
	PageWidthMM     float64       `yaml:"page_width_mm"`
	PageHeightMM    float64       `yaml:"page_height_mm"`
	EpsilonMM       float64       `yaml:"epsilon_mm"`
	SettleDelay     time.Duration `yaml:"settle_delay"`
	PixelScale      float64       `yaml:"pixel_scale"`
	ImageQuality    float64       `yaml:"image_quality"`
	PageBreak       string        `yaml:"page_break"` // "css" or "none"
	OutputDir       string        `yaml:"output_dir"`
	DefaultFilename string        `yaml:"default_filename"`
}

// BrowserConfig controls the headless Chrome used for export.
type BrowserConfig struct {
	RemoteURL string        `yaml:"remote_url,omitempty"`
	NoSandbox bool          `yaml:"no_sandbox"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
	Output string `yaml:"output"` // stderr, stdout, or a file path
}

// Load reads a quotation.yaml file from disk. Fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
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

// Default returns a Config with sensible defaults for a new business.
func Default(businessName string) *Config {
	if businessName == "" {
		businessName = "Sai Ram Interiors"
	}
	return &Config{
		Business: BusinessConfig{
			Name:    businessName,
			Tagline: "Interior Design & Execution",
		},
		Document: DocumentConfig{
			Title:          "ESTIMATE",
			EstimatePrefix: "EST",
			EstimateSeq:    1,
			Notes: []string{
				"50% advance along with the work order, balance on completion.",
				"Rates are valid for 30 days from the date of this estimate.",
				"Electrical, plumbing and civil works are not included unless listed.",
			},
		},
		Export: ExportConfig{
			PageWidthMM:     210,
			PageHeightMM:    297,
			EpsilonMM:       0.2,
			SettleDelay:     compositor.DefaultSettleDelay,
			PixelScale:      2,
			ImageQuality:    1.0,
			PageBreak:       string(compositor.PageBreakCSS),
			OutputDir:       ".",
			DefaultFilename: compositor.DefaultFilename,
		},
		Browser: BrowserConfig{
			NoSandbox: false,
			Timeout:   60 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Compositor converts the export section into compositor settings.
func (c *Config) Compositor() compositor.Config {
	return compositor.Config{
		PageWidth:       c.Export.PageWidthMM,
		PageHeight:      c.Export.PageHeightMM,
		Epsilon:         c.Export.EpsilonMM,
		SettleDelay:     c.Export.SettleDelay,
		PixelScale:      c.Export.PixelScale,
		ImageFormat:     "jpeg",
		ImageQuality:    c.Export.ImageQuality,
		PageBreak:       compositor.PageBreakMode(c.Export.PageBreak),
		DefaultFilename: c.Export.DefaultFilename,
	}
}

// Validate checks values the export cannot work without.
func (c *Config) Validate() error {
	if c.Export.PageWidthMM <= 0 || c.Export.PageHeightMM <= 0 {
		return fmt.Errorf("export page size must be positive, got %gx%g mm", c.Export.PageWidthMM, c.Export.PageHeightMM)
	}
	if c.Export.EpsilonMM < 0 || c.Export.EpsilonMM >= c.Export.PageHeightMM {
		return fmt.Errorf("export epsilon_mm %g out of range", c.Export.EpsilonMM)
	}
	switch compositor.PageBreakMode(c.Export.PageBreak) {
	case compositor.PageBreakCSS, compositor.PageBreakNone:
	default:
		return fmt.Errorf("export page_break %q: want css or none", c.Export.PageBreak)
	}
	return nil
}
