// Package config holds all qc-scale-tool configuration as one immutable
// value handed to constructors. Keywords, sentinel tags and thresholds
// live here rather than in package-level tables so the recognizers can be
// rebuilt against a modded compiler dialect without touching rewrite code.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional overlay looked up next to the QC file.
const ConfigFileName = "qcscale.yaml"

// Config is the full tool configuration.
type Config struct {
	QC     QCConfig     `yaml:"qc"`
	VRD    VRDConfig    `yaml:"vrd"`
	Limits LimitsConfig `yaml:"limits"`
	UI     UIConfig     `yaml:"ui"`
}

// QCConfig names the primary-file line shapes.
type QCConfig struct {
	ScaleKeyword     string `yaml:"scale_keyword"`     // "$scale"
	ModelNameKeyword string `yaml:"modelname_keyword"` // "$modelname"
	EyeballKeyword   string `yaml:"eyeball_keyword"`   // "eyeball"
	FlexExtension    string `yaml:"flex_extension"`    // ".vta"
	EyeballDecimals  int    `yaml:"eyeball_decimals"`  // fixed output precision
	SuffixEnabled    bool   `yaml:"suffix_enabled"`    // offer $modelname suffix step
}

// VRDConfig names the secondary-file line shapes and the marker sentinel.
type VRDConfig struct {
	HelperTag   string `yaml:"helper_tag"`   // "<helper>"
	BasePosTag  string `yaml:"basepos_tag"`  // "<basepos>"
	TriggerTag  string `yaml:"trigger_tag"`  // "<trigger>"
	SentinelTag string `yaml:"sentinel_tag"` // "!qcscale"
}

// LimitsConfig carries the scale validation thresholds.
type LimitsConfig struct {
	MinScale       float64 `yaml:"min_scale"`       // zero boundary
	MinDelta       float64 `yaml:"min_delta"`       // "unchanged" boundary
	RoundingAdvise float64 `yaml:"rounding_advise"` // low-scale advisory
}

// UIConfig configures the terminal surface.
type UIConfig struct {
	Theme string `yaml:"theme"` // "auto", "light", "dark"
}

// Default returns the stock configuration for unmodified Source tooling.
func Default() Config {
	return Config{
		QC: QCConfig{
			ScaleKeyword:     "$scale",
			ModelNameKeyword: "$modelname",
			EyeballKeyword:   "eyeball",
			FlexExtension:    ".vta",
			EyeballDecimals:  3,
			SuffixEnabled:    true,
		},
		VRD: VRDConfig{
			HelperTag:   "<helper>",
			BasePosTag:  "<basepos>",
			TriggerTag:  "<trigger>",
			SentinelTag: "!qcscale",
		},
		Limits: LimitsConfig{
			MinScale:       0.001,
			MinDelta:       0.001,
			RoundingAdvise: 0.025,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// Load returns Default overlaid with qcscale.yaml from dir (if present)
// and then QCSCALE_* environment overrides. A missing overlay is not an
// error; a malformed one is.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.validate()
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QCSCALE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("QCSCALE_SUFFIX"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.QC.SuffixEnabled = b
		}
	}
	if v := os.Getenv("QCSCALE_EYEBALL_DECIMALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.QC.EyeballDecimals = n
		}
	}
}

func (c *Config) validate() error {
	if c.QC.ScaleKeyword == "" || c.QC.ModelNameKeyword == "" || c.QC.EyeballKeyword == "" {
		return fmt.Errorf("qc keywords must not be empty")
	}
	if c.VRD.SentinelTag == "" {
		return fmt.Errorf("vrd sentinel tag must not be empty")
	}
	if c.Limits.MinScale <= 0 {
		return fmt.Errorf("min_scale must be positive, got %v", c.Limits.MinScale)
	}
	return nil
}
