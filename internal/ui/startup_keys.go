package ui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates startup input (Vim-like tokens and literal
// text) and mutates m in place. Deferred navigator tasks are drained after
// every token, as the running program would on its next tick.
//
// Besides keys, tokens can carry mouse and terminal focus events:
// "<Click-x,y>", "<S-Click-x,y>", "<C-Click-x,y>", "<Blur>" and "<Focus>".
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<f1>").
		if strings.HasPrefix(token, `\`) {
			sendLiteral(m, strings.TrimPrefix(token, `\`))
			m.Update(drainMsg{})
			continue
		}

		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				sendLiteral(m, segment.text)
				continue
			}
			if msgs, ok := msgsFromToken(segment.text); ok {
				for _, msg := range msgs {
					m.Update(msg)
				}
			}
		}
		m.Update(drainMsg{})
	}
}

func sendLiteral(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// tokenSegment is a parsed segment of a token: a <...> key or literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into segments of vim-style keys and literal text.
// Example: "<F1>jj" -> [{"<F1>", true}, {"jj", false}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}

		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			// No closing >, treat rest as literal text
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		// "<>" is literal
		if endIdx == 1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+2]})
			remaining = remaining[startIdx+2:]
			continue
		}

		vimKey := remaining[startIdx : startIdx+endIdx+1]
		segments = append(segments, tokenSegment{text: vimKey, isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

var namedKeys = map[string]rune{
	"esc":       tea.KeyEscape,
	"escape":    tea.KeyEscape,
	"cr":        tea.KeyEnter,
	"enter":     tea.KeyEnter,
	"return":    tea.KeyEnter,
	"tab":       tea.KeyTab,
	"bs":        tea.KeyBackspace,
	"backspace": tea.KeyBackspace,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pageup":    tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"pagedown":  tea.KeyPgDown,
	"f1":        tea.KeyF1,
	"f2":        tea.KeyF2,
	"f3":        tea.KeyF3,
	"f4":        tea.KeyF4,
	"f5":        tea.KeyF5,
	"f6":        tea.KeyF6,
	"f7":        tea.KeyF7,
	"f8":        tea.KeyF8,
	"f9":        tea.KeyF9,
	"f10":       tea.KeyF10,
	"f11":       tea.KeyF11,
	"f12":       tea.KeyF12,
}

// msgsFromToken parses a <...> token into messages.
// Examples: "<Esc>", "<CR>", "<Space>", "<C-c>", "<A-<>", "<C-Home>", "<F3>",
// "<S-Click-4,2>", "<Blur>".
func msgsFromToken(token string) ([]tea.Msg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") || len(token) < 3 {
		return nil, false
	}
	inner := token[1 : len(token)-1]
	lower := strings.ToLower(inner)

	switch lower {
	case "c-[":
		return []tea.Msg{tea.KeyPressMsg{Code: tea.KeyEscape}}, true
	case "blur":
		return []tea.Msg{tea.BlurMsg{}}, true
	case "focus":
		return []tea.Msg{tea.FocusMsg{}}, true
	case "space":
		return []tea.Msg{tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}}, true
	}

	var mod tea.KeyMod
	for {
		switch {
		case strings.HasPrefix(lower, "c-") && len(lower) > 2:
			mod |= tea.ModCtrl
		case (strings.HasPrefix(lower, "a-") || strings.HasPrefix(lower, "m-")) && len(lower) > 2:
			mod |= tea.ModAlt
		case strings.HasPrefix(lower, "s-") && len(lower) > 2:
			mod |= tea.ModShift
		default:
			return keyOrClick(inner, lower, mod)
		}
		inner, lower = inner[2:], lower[2:]
	}
}

func keyOrClick(inner, lower string, mod tea.KeyMod) ([]tea.Msg, bool) {
	if coords, ok := strings.CutPrefix(lower, "click-"); ok {
		xs, ys, found := strings.Cut(coords, ",")
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if !found || errX != nil || errY != nil {
			return nil, false
		}
		return []tea.Msg{tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft, Mod: mod}}, true
	}
	if code, ok := namedKeys[lower]; ok {
		return []tea.Msg{tea.KeyPressMsg{Code: code, Mod: mod}}, true
	}
	runes := []rune(inner)
	if len(runes) != 1 || mod == 0 {
		return nil, false
	}
	r := runes[0]
	if mod&tea.ModCtrl != 0 {
		r = []rune(strings.ToLower(string(r)))[0]
	}
	return []tea.Msg{tea.KeyPressMsg{Code: r, Mod: mod}}, true
}
