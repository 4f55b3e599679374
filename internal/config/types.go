// Package config reads the optional grid config file. Values set on the
// command line override the file.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridnav/internal/limiter"
)

// Selection modes.
const (
	ModeSingle = "single"
	ModeRange  = "range"
)

// KeyModes lists the accepted key binding modes.
var KeyModes = []string{"vim", "emacs", "function"}

// Config describes a grid and how to present it.
type Config struct {
	Rows    int           `yaml:"rows" toml:"rows"`
	Columns int           `yaml:"columns" toml:"columns"`
	Records RecordsConfig `yaml:"records" toml:"records"`
	// Disable is a CEL expression over col, row, value and record.
	Disable string `yaml:"disable" toml:"disable"`
	Mode    string `yaml:"mode" toml:"mode"`
	// Start and End are the range markers, matched against cell values.
	Start   any    `yaml:"start" toml:"start"`
	End     any    `yaml:"end" toml:"end"`
	KeyMode string `yaml:"keymode" toml:"keymode"`
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}

// RecordsConfig locates the record file and limits the rows read from it.
type RecordsConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Format string `yaml:"format" toml:"format"`

	limiter.Config `yaml:",inline"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Mode:    ModeSingle,
		KeyMode: KeyModes[0],
	}
}

// Load reads path over the defaults. TOML is used for .toml files, YAML
// otherwise. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "decode TOML config %s", path)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "decode YAML config %s", path)
		}
	}

	if cfg.Records.Path != "" && !filepath.IsAbs(cfg.Records.Path) {
		cfg.Records.Path = filepath.Join(filepath.Dir(path), cfg.Records.Path)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Rows < 0 {
		return errors.Errorf("rows must be non-negative, got %d", c.Rows)
	}
	if c.Columns < 0 {
		return errors.Errorf("columns must be non-negative, got %d", c.Columns)
	}
	switch c.Mode {
	case ModeSingle, ModeRange:
	default:
		return errors.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeSingle, ModeRange)
	}
	if c.Mode == ModeSingle && (c.Start != nil || c.End != nil) {
		return errors.New("start and end markers require range mode")
	}
	if !slices.Contains(KeyModes, c.KeyMode) {
		return errors.Errorf("unknown keymode %q (want one of %s)", c.KeyMode, strings.Join(KeyModes, ", "))
	}
	return c.Records.Validate()
}
