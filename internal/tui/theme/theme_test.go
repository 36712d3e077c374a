package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCatppuccinMocha_ColorPalette(t *testing.T) {
	t.Parallel()

	th := NewCatppuccinMocha()
	if th.Name != "catppuccin-mocha" || !th.IsDark {
		t.Fatalf("unexpected theme %s (dark=%v)", th.Name, th.IsDark)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Lavender)", th.Secondary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBright (Text)", th.FgBright, "#cdd6f4"},
		{"Error (Red)", th.Error, "#f38ba8"},
		{"Success (Green)", th.Success, "#a6e3a1"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.expected)
		}
	}
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pos  float64
		want string
	}{
		{0, "#000000"},
		{1, "#ffffff"},
		{0.5, "#7f7f7f"},
	}
	for _, tt := range tests {
		if got := InterpolateColor("#000000", "#ffffff", tt.pos); got != tt.want {
			t.Errorf("InterpolateColor(%v) = %s, want %s", tt.pos, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	r, g, b := ParseHexColor("#cba6f7")
	if r != 0xcb || g != 0xa6 || b != 0xf7 {
		t.Errorf("got %d,%d,%d", r, g, b)
	}
	if r, g, b := ParseHexColor("bad"); r != 0 || g != 0 || b != 0 {
		t.Errorf("invalid hex should parse to black, got %d,%d,%d", r, g, b)
	}
	if got := FormatHexColor(0xcb, 0xa6, 0xf7); got != "#cba6f7" {
		t.Errorf("FormatHexColor = %s", got)
	}
}

func TestApplyGradient(t *testing.T) {
	t.Parallel()

	if got := ApplyGradient("", "#000000", "#ffffff"); got != "" {
		t.Errorf("empty text should stay empty, got %q", got)
	}

	text := "▀ ▀█▀ █▀▀"
	out := ApplyGradient(text, "#cba6f7", "#b4befe")
	if ansi.Strip(out) != text {
		t.Errorf("gradient changed the text: %q", ansi.Strip(out))
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected color sequences in output")
	}
}
