package ui

import (
	"strconv"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridnav/pkg/grid"
	"github.com/oakwood-commons/gridnav/pkg/nav"
)

func TestParseTokenSegments(t *testing.T) {
	tests := []struct {
		token string
		want  []tokenSegment
	}{
		{"jj", []tokenSegment{{text: "jj"}}},
		{"<F1>jj", []tokenSegment{{text: "<F1>", isVimKey: true}, {text: "jj"}}},
		{"l<CR>l", []tokenSegment{{text: "l"}, {text: "<CR>", isVimKey: true}, {text: "l"}}},
		{"<A-<>", []tokenSegment{{text: "<A-<>", isVimKey: true}}},
		{"a<>b", []tokenSegment{{text: "a"}, {text: "<>"}, {text: "b"}}},
		{"x<open", []tokenSegment{{text: "x"}, {text: "<open"}}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTokenSegments(tt.token))
		})
	}
}

func TestMsgsFromToken(t *testing.T) {
	tests := []struct {
		token string
		want  tea.Msg
	}{
		{"<Esc>", tea.KeyPressMsg{Code: tea.KeyEscape}},
		{"<C-[>", tea.KeyPressMsg{Code: tea.KeyEscape}},
		{"<cr>", tea.KeyPressMsg{Code: tea.KeyEnter}},
		{"<Space>", tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}},
		{"<PgDown>", tea.KeyPressMsg{Code: tea.KeyPgDown}},
		{"<F10>", tea.KeyPressMsg{Code: tea.KeyF10}},
		{"<C-c>", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}},
		{"<C-F>", tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl}},
		{"<M-<>", tea.KeyPressMsg{Code: '<', Mod: tea.ModAlt}},
		{"<C-Home>", tea.KeyPressMsg{Code: tea.KeyHome, Mod: tea.ModCtrl}},
		{"<Click-3,4>", tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseLeft}},
		{"<S-Click-3,4>", tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseLeft, Mod: tea.ModShift}},
		{"<Blur>", tea.BlurMsg{}},
		{"<focus>", tea.FocusMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			msgs, ok := msgsFromToken(tt.token)
			require.True(t, ok)
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.want, msgs[0])
		})
	}

	for _, bad := range []string{"<x>", "<nope>", "<Click-3>", "<Click-a,b>", "Esc"} {
		_, ok := msgsFromToken(bad)
		assert.False(t, ok, bad)
	}
}

func TestApplyStartupKeys(t *testing.T) {
	m := newTestModel(t, Options{Input: lettersInput(), Range: true})

	ApplyStartupKeys(m, []string{"l", "<CR>", "  ", "jl<CR>"})
	res := m.Result()
	assert.Equal(t, "b", res.Start)
	assert.Equal(t, "f", res.End)
	assert.Equal(t, grid.Position{Col: 2, Row: 1}, res.Focus)
}

func TestApplyStartupKeysDrainsAfterEachToken(t *testing.T) {
	m := newTestModel(t, Options{Input: lettersInput()})
	before := len(m.events)

	ApplyStartupKeys(m, []string{"<Esc>", "l"})
	assert.Equal(t, []nav.Kind{nav.KindBlurCell, nav.KindBlurGrid, nav.KindDiagnostic}, kindsSince(m, before))

	ApplyStartupKeys(m, []string{"<Tab>", "<Esc>l"})
	assert.Equal(t, grid.Position{Col: 1, Row: 0}, m.nav.Position(), "a move in the same token cancels the blur")
}

func TestApplyStartupKeysMouse(t *testing.T) {
	m := newTestModel(t, Options{Input: lettersInput()})
	x, y := point(m, 1, 2)

	ApplyStartupKeys(m, []string{"<Click-" + strconv.Itoa(x) + "," + strconv.Itoa(y) + ">"})
	res := m.Result()
	assert.Equal(t, "f", res.Selected)
	assert.Equal(t, grid.Position{Col: 2, Row: 1}, res.Focus)
}

func TestApplyStartupKeysLiteral(t *testing.T) {
	m := newTestModel(t, Options{Input: lettersInput()})
	ApplyStartupKeys(m, []string{`\<F1>`})
	assert.False(t, m.showHelp, "escaped tokens are typed as text")

	ApplyStartupKeys(m, nil)
	ApplyStartupKeys(nil, []string{"l"})
}
