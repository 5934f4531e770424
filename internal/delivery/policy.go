package delivery

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/delivery.yaml
var seedFS embed.FS

// Policy is what a provider promises: either a daily same-day cutoff
// clock-time ("15:04" format) or a flat regional estimate. New providers are
// configuration, not code.
type Policy struct {
	Name     string `yaml:"name"`
	Cutoff   string `yaml:"cutoff,omitempty"`
	Estimate string `yaml:"estimate,omitempty"`
}

// HasCutoff reports whether this provider runs a same-day cutoff clock.
func (p Policy) HasCutoff() bool { return p.Cutoff != "" }

// CutoffToday anchors the policy's clock-time to the given day.
func (p Policy) CutoffToday(now time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", p.Cutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("delivery: provider %s: bad cutoff %q: %w", p.Name, p.Cutoff, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

// PinRange is the configurable serviceable sub-range of pincodes, applied on
// top of the format check.
type PinRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Config is the delivery side of the world: provider policies, the pincode
// directory, and the serviceable range. Loaded once, read-only afterwards.
type Config struct {
	PinRange  PinRange            `yaml:"pin_range"`
	Providers []Policy            `yaml:"providers"`
	Directory map[string][]string `yaml:"directory"`
}

// LoadConfig reads delivery.yaml from dataDir, falling back to the embedded
// default when absent.
func LoadConfig(dataDir string) (*Config, error) {
	var b []byte
	var err error
	if dataDir != "" {
		path := filepath.Join(dataDir, "delivery.yaml")
		b, err = os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("delivery: read config: %w", err)
		}
	}
	if b == nil {
		if b, err = seedFS.ReadFile("data/delivery.yaml"); err != nil {
			return nil, err
		}
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("delivery: parse config: %w", err)
	}
	if cfg.PinRange.Min == 0 && cfg.PinRange.Max == 0 {
		cfg.PinRange = PinRange{Min: 100000, Max: 999999}
	}
	return &cfg, nil
}

func (c *Config) policy(name string) (Policy, bool) {
	for _, p := range c.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}
