// Package cmd implements the gridnav command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridnav/internal/config"
	"github.com/oakwood-commons/gridnav/pkg/grid"
	"github.com/oakwood-commons/gridnav/pkg/logger"
	"github.com/oakwood-commons/gridnav/pkg/settings"
	"github.com/oakwood-commons/gridnav/pkg/tui"
)

var (
	rootCtx = context.Background()

	configFile    string
	rows          int
	columns       int
	disableExpr   string
	mode          string
	startMarker   string
	endMarker     string
	recordFormat  string
	limitRecords  int
	offsetRecords int
	tailRecords   int
	debug         bool

	title          string
	keyMode        string
	noColor        bool
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [records]",
	Short: settings.CliBinaryName + " - keyboard and mouse navigation over a grid of cells",
	Long: `Build a grid from a records file (YAML, JSON, NDJSON, CSV or TSV) or from
--rows and --columns, disable cells with a CEL expression, and move focus
across the enabled cells. In range mode two selections pick an ordered range.`,
	Example: "\n  gridnav rows.csv\n  gridnav rows.yaml --disable 'value == \"\"' --mode range\n" +
		"  gridnav --rows 3 --columns 3 --disable 'row == 1 && col == 1' --snapshot --press 'l<CR>'\n" +
		"  gridnav map rows.csv -o json\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Map CLI debug flag to log level: debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)

		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.ConfigPath = configFile
		rootCtx = settings.IntoContext(rootCtx, run)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return usageError(err)
		}
		lgr := logger.FromContext(rootCtx)
		in, err := buildInput(cfg, *lgr)
		if err != nil {
			return inputError(err)
		}

		run := settings.FromContextOrDefault(rootCtx)
		run.NoColor = cfg.NoColor
		run.Interactive = !renderSnapshot && term.IsTerminal(int(os.Stdout.Fd()))
		lgr.V(1).Info("grid resolved",
			logger.RowsKey, in.Rows, logger.ColumnsKey, in.Columns, logger.ModeKey, cfg.Mode,
			"interactive", run.Interactive)

		opts := tui.Config{
			Title:     gridTitle(cfg),
			Input:     in,
			Range:     cfg.Mode == config.ModeRange,
			Start:     cfg.Start,
			End:       cfg.End,
			KeyMode:   cfg.KeyMode,
			NoColor:   cfg.NoColor,
			StartKeys: startKeys,
			Logger:    lgr.WithName("ui"),
		}

		if !run.Interactive {
			opts.Width, opts.Height = resolveSnapshotSize(snapshotWidth, snapshotHeight)
			out, err := tui.RenderSnapshot(opts)
			if err != nil {
				return inputError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		opts.Width, opts.Height = snapshotWidth, snapshotHeight
		var ttyIn io.Reader
		if cfg.Records.Path == "-" {
			tty, err := os.Open("/dev/tty")
			if err != nil {
				return errors.Wrap(err, "records were read from stdin and no terminal is available for input")
			}
			defer tty.Close()
			ttyIn = tty
		}
		res, err := tui.Run(opts, tui.WithIO(ttyIn, nil)...)
		if err != nil {
			return inputError(err)
		}
		return printResult(cmd.OutOrStdout(), res, opts.Range)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "path to a grid config file (.yaml or .toml)")
	pf.IntVar(&rows, "rows", 0, "number of rows (default: one per record)")
	pf.IntVar(&columns, "columns", 0, "number of columns (default: keys of the narrowest record)")
	pf.StringVar(&disableExpr, "disable", "", "CEL expression over col, row, value and record; true disables the cell. Example: 'value == \"\" || row == 0'")
	pf.StringVar(&mode, "mode", config.ModeSingle, "selection mode: single or range")
	pf.StringVar(&startMarker, "start", "", "range start marker, matched against cell values (range mode)")
	pf.StringVar(&endMarker, "end", "", "range end marker, matched against cell values (range mode)")
	pf.StringVar(&recordFormat, "format", "", "records format: yaml, json, ndjson, csv or tsv (default: from the extension)")
	pf.IntVar(&limitRecords, "limit", 0, "use at most N records")
	pf.IntVar(&offsetRecords, "offset", 0, "skip the first N records")
	pf.IntVar(&tailRecords, "tail", 0, "use the last N records (mutually exclusive with --limit; ignores --offset)")
	pf.BoolVar(&debug, "debug", false, "write debug logs to stderr")

	f := rootCmd.Flags()
	f.StringVar(&title, "title", "", "title line (default: the records file name)")
	f.StringVar(&keyMode, "keymap", "", "keybinding mode: vim (default), emacs, or function")
	f.BoolVar(&noColor, "no-color", false, "disable color output")
	f.BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit; honors --width/--height")
	f.StringArrayVar(&startKeys, "press", nil, "Simulate input on startup. Use <Key> for special keys (e.g. <CR>, <Esc>, <C-f>, <F1>), <Click-x,y> for mouse clicks and <Blur>/<Focus> for terminal focus. Literal text types normally.")
	f.IntVar(&snapshotWidth, "width", 0, "output width in columns")
	f.IntVar(&snapshotHeight, "height", 0, "output height in rows")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mapCmd)
	registerCompletions()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveSnapshotSize fills unset dimensions from the terminal, then 80x24.
func resolveSnapshotSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h := tui.DetectTerminalSize(); w > 0 || h > 0 {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

// printResult writes the final selection as YAML: value in single mode,
// start and end in range mode. Nothing is printed without a selection.
func printResult(w io.Writer, res tui.Result, rangeMode bool) error {
	out := grid.NewRecord()
	switch {
	case rangeMode && (res.Start != nil || res.End != nil):
		out.Set("start", res.Start).Set("end", res.End)
	case !rangeMode && res.HasSelected:
		out.Set("value", res.Selected)
	default:
		return nil
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "encode selection")
	}
	_, err = w.Write(b)
	return err
}
