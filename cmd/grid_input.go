package cmd

import (
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridnav/internal/cel"
	"github.com/oakwood-commons/gridnav/internal/config"
	"github.com/oakwood-commons/gridnav/internal/limiter"
	"github.com/oakwood-commons/gridnav/pkg/grid"
	"github.com/oakwood-commons/gridnav/pkg/records"
)

// errNoInput is returned when neither records nor dimensions were given.
var errNoInput = errors.New("no grid: pass a records file or --rows and --columns")

// resolveConfig loads the config file, if any, and applies the flags the
// user set on top of it.
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("columns") {
		cfg.Columns = columns
	}
	if flags.Changed("disable") {
		cfg.Disable = disableExpr
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("start") {
		cfg.Start = parseMarker(startMarker)
	}
	if flags.Changed("end") {
		cfg.End = parseMarker(endMarker)
	}
	if flags.Changed("format") {
		cfg.Records.Format = recordFormat
	}
	if flags.Changed("limit") {
		cfg.Records.Limit = limitRecords
	}
	if flags.Changed("offset") {
		cfg.Records.Offset = offsetRecords
	}
	if flags.Changed("tail") {
		cfg.Records.Tail = tailRecords
	}
	if f := flags.Lookup("keymap"); f != nil && f.Changed {
		cfg.KeyMode = keyMode
	}
	if f := flags.Lookup("no-color"); f != nil && f.Changed {
		cfg.NoColor = noColor
	}
	if len(args) > 0 {
		cfg.Records.Path = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if _, err := records.ParseFormat(cfg.Records.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseMarker reads a range marker as a YAML scalar, so "3" matches the
// integer 3 and "true" the boolean. Empty is unset.
func parseMarker(s string) any {
	if s == "" {
		return nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	switch v.(type) {
	case map[string]any, []any:
		return s
	}
	return v
}

// buildInput turns a resolved config into builder input: it loads and limits
// the records, derives missing dimensions from them and compiles the disable
// expression.
func buildInput(cfg config.Config, log logr.Logger) (grid.Input, error) {
	in := grid.Input{Rows: cfg.Rows, Columns: cfg.Columns}

	if cfg.Records.Path != "" {
		format, err := records.ParseFormat(cfg.Records.Format)
		if err != nil {
			return in, err
		}
		recs, err := records.LoadFileFormat(cfg.Records.Path, format, log)
		if err != nil {
			return in, err
		}
		recs = limiter.Apply(cfg.Records.Config, recs)
		if recs == nil {
			recs = []*grid.Record{}
		}
		in.Records = recs
		if in.Rows == 0 {
			in.Rows = len(recs)
		}
		if in.Columns == 0 {
			in.Columns = narrowestRecord(recs)
		}
	} else if in.Rows == 0 && in.Columns == 0 {
		return in, errNoInput
	}

	if cfg.Disable != "" {
		pred, err := cel.NewPredicate(cfg.Disable)
		if err != nil {
			return in, usageError(errors.Wrap(err, "--disable"))
		}
		log.V(1).Info("disable predicate compiled", "expression", pred.Source(), "variables", pred.Variables())
		in.Disable = pred
	}
	return in, nil
}

// narrowestRecord returns the smallest key count among non-nil records.
func narrowestRecord(recs []*grid.Record) int {
	n := -1
	for _, r := range recs {
		if r == nil {
			continue
		}
		if n < 0 || r.Len() < n {
			n = r.Len()
		}
	}
	return max(n, 0)
}

func gridTitle(cfg config.Config) string {
	if title != "" {
		return title
	}
	if p := cfg.Records.Path; p != "" && p != "-" {
		return filepath.Base(p)
	}
	return ""
}
