package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridnav/internal/config"
	"github.com/oakwood-commons/gridnav/internal/formatter"
	"github.com/oakwood-commons/gridnav/pkg/grid"
	"github.com/oakwood-commons/gridnav/pkg/logger"
)

var (
	mapOutput    string
	mapNoValues  bool
	mapMaxLen    int
	mapDirection string
)

var mapCmd = &cobra.Command{
	Use:   "map [records]",
	Short: "Print the grid topology without starting the interactive view",
	Long: `Build the grid like the root command and print its topology: dimensions,
enabled columns per row, enabled rows per column, the first and last enabled
positions and, in range mode, the resolved range boundaries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(mapOutput))
		switch format {
		case "yaml", "json", "toml", "tree", "mermaid":
		default:
			return usageError(errors.Errorf("unknown output %q (want yaml, json, toml, tree or mermaid)", mapOutput))
		}

		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return usageError(err)
		}
		lgr := logger.FromContext(rootCtx)
		in, err := buildInput(cfg, *lgr)
		if err != nil {
			return inputError(err)
		}

		var (
			g    *grid.Grid
			topo grid.Topology
		)
		if cfg.Mode == config.ModeRange {
			rg, err := grid.BuildRange(grid.RangeInput{Input: in, Start: cfg.Start, End: cfg.End})
			if err != nil {
				return inputError(errors.Wrap(err, "build range grid"))
			}
			g, topo = rg.Grid, rg.Topology()
		} else {
			g, err = grid.Build(in)
			if err != nil {
				return inputError(errors.Wrap(err, "build grid"))
			}
			topo = g.Topology()
		}
		lgr.V(1).Info("grid mapped", logger.RowsKey, topo.Rows, logger.ColumnsKey, topo.Columns, logger.ModeKey, cfg.Mode)

		opts := formatter.Options{NoValues: mapNoValues, MaxStringLen: mapMaxLen, Direction: strings.ToUpper(mapDirection)}
		var out string
		switch format {
		case "tree":
			out = formatter.FormatAsTree(g, opts)
		case "mermaid":
			out = formatter.FormatAsMermaid(g, opts)
		default:
			out, err = encodeTopology(topo, format)
			if err != nil {
				return err
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	f := mapCmd.Flags()
	f.StringVarP(&mapOutput, "output", "o", "yaml", "output format: yaml, json, toml, tree or mermaid")
	f.BoolVar(&mapNoValues, "no-values", false, "tree/mermaid: show keys and flags without cell values")
	f.IntVar(&mapMaxLen, "max-string-len", 0, "tree/mermaid: truncate values wider than N columns (0 = no limit)")
	f.StringVar(&mapDirection, "direction", "", "mermaid: diagram direction TD, LR, BT or RL (default LR)")
}

func encodeTopology(t grid.Topology, format string) (string, error) {
	switch format {
	case "json":
		b, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal json")
		}
		return string(b) + "\n", nil
	case "toml":
		b, err := toml.Marshal(t)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal toml")
		}
		return string(b), nil
	default:
		b, err := yaml.Marshal(t)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal yaml")
		}
		return string(b), nil
	}
}
