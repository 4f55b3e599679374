package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

func lettersConfig() Config {
	cfg := DefaultConfig()
	cfg.Input = grid.Input{
		Rows:    2,
		Columns: 3,
		Records: []*grid.Record{
			grid.NewRecord("c1", "a", "c2", "b", "c3", "c"),
			grid.NewRecord("c1", "d", "c2", "e", "c3", "f"),
		},
	}
	cfg.NoColor = true
	cfg.Width = 40
	cfg.Height = 10
	return cfg
}

func TestRenderSnapshot_DisableExpression(t *testing.T) {
	cfg := lettersConfig()
	cfg.Title = "letters"
	cfg.Disable = `value == "b"`
	cfg.StartKeys = []string{"l<CR>"}

	out, err := RenderSnapshot(cfg)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	require.Equal(t, "letters  2x3  single  focus (2,0)", lines[0])
	require.Contains(t, out, "-b")
	require.Contains(t, out, "selected c")
}

func TestRenderSnapshot_Range(t *testing.T) {
	cfg := lettersConfig()
	cfg.Range = true
	cfg.Start = "b"
	cfg.End = "e"

	out, err := RenderSnapshot(cfg)
	require.NoError(t, err)
	require.Contains(t, out, "range b .. e")
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "bad_keymode", mutate: func(c *Config) { c.KeyMode = "nano" }, want: "nano"},
		{name: "bad_expression", mutate: func(c *Config) { c.Disable = "row +" }, want: "disable expression"},
		{name: "both_predicates", mutate: func(c *Config) {
			c.Disable = "row == 0"
			c.Input.Disable = grid.DisablePositions(grid.Position{})
		}, want: "not both"},
		{name: "markers_without_range", mutate: func(c *Config) { c.Start = "a" }, want: "range mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := lettersConfig()
			tt.mutate(&cfg)
			_, err := RenderSnapshot(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunQuitsFromStartKeys(t *testing.T) {
	cfg := lettersConfig()
	cfg.StartKeys = []string{"l<CR>", "q"}

	res, err := Run(cfg, WithIO(&bytes.Buffer{}, &bytes.Buffer{})...)
	require.NoError(t, err)
	require.True(t, res.HasSelected)
	require.Equal(t, "b", res.Selected)
	require.Equal(t, grid.Position{Col: 1, Row: 0}, res.Focus)
}

func TestDetectTerminalSizeFallsBackToEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "40")
	w, h := DetectTerminalSize()
	// Under a real terminal the probe wins; only check the env path when
	// nothing was detected from the file descriptors.
	if w == 132 {
		require.Equal(t, 40, h)
	}
	require.Positive(t, w)
}

func TestWithIO(t *testing.T) {
	require.Empty(t, WithIO(nil, nil))
	require.Len(t, WithIO(&bytes.Buffer{}, nil), 1)
	require.Len(t, WithIO(&bytes.Buffer{}, &bytes.Buffer{}), 2)
}
