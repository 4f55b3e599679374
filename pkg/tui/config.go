package tui

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/oakwood-commons/gridnav/internal/cel"
	"github.com/oakwood-commons/gridnav/internal/ui"
	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// Config holds host-provided settings for running the grid view.
type Config struct {
	// Title is shown on the first line (default: "gridnav").
	Title string
	// Input is the grid to build. Records and dimensions as for grid.Build.
	Input grid.Input
	// Disable is an optional CEL expression over col, row, value and record.
	// It is compiled into Input.Disable; setting both is an error.
	Disable string
	// Range selects range mode; Start and End are the initial markers.
	Range bool
	Start any
	End   any
	// KeyMode is "vim" (default), "emacs" or "function".
	KeyMode   string
	NoColor   bool
	Width     int
	Height    int
	StartKeys []string
	Logger    logr.Logger
}

// DefaultConfig returns a baseline config with the same defaults as the CLI.
func DefaultConfig() Config {
	return Config{
		KeyMode: string(ui.DefaultKeyMode),
		Logger:  logr.Discard(),
	}
}

func (c Config) options() (ui.Options, error) {
	km, err := ui.ParseKeyMode(c.KeyMode)
	if err != nil {
		return ui.Options{}, err
	}
	in := c.Input
	if expr := strings.TrimSpace(c.Disable); expr != "" {
		if in.Disable != nil {
			return ui.Options{}, errors.New("set either Disable or Input.Disable, not both")
		}
		pred, err := cel.NewPredicate(expr)
		if err != nil {
			return ui.Options{}, errors.Wrap(err, "disable expression")
		}
		in.Disable = pred
	}
	if !c.Range && (c.Start != nil || c.End != nil) {
		return ui.Options{}, errors.New("start and end markers require range mode")
	}
	log := c.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return ui.Options{
		Title:   c.Title,
		Input:   in,
		Range:   c.Range,
		Start:   c.Start,
		End:     c.End,
		KeyMode: km,
		NoColor: c.NoColor,
		Width:   c.Width,
		Height:  c.Height,
		Logger:  log,
	}, nil
}
