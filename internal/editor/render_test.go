package editor

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/dshills/keyline/internal/engine/line"
)

func renderString(t *testing.T, p Prompt, text string) string {
	t.Helper()
	var out bytes.Buffer
	buf := line.New()
	buf.SetText(text)
	if err := render(bufio.NewWriter(&out), p, buf); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestRenderSequence(t *testing.T) {
	tests := []struct {
		name   string
		prompt Prompt
		text   string
		want   string
	}{
		{
			name:   "empty buffer",
			prompt: NewPrompt("> "),
			text:   "",
			want:   "\x1b[2K\r> \r\x1b[2C",
		},
		{
			name:   "ascii text",
			prompt: NewPrompt("> "),
			text:   "ab",
			want:   "\x1b[2K\r> ab\r\x1b[4C",
		},
		{
			name:   "wide rune advances two columns",
			prompt: NewPrompt("> "),
			text:   "世",
			want:   "\x1b[2K\r> 世\r\x1b[4C",
		},
		{
			name:   "zero column omits cursor forward",
			prompt: NewPrompt(""),
			text:   "",
			want:   "\x1b[2K\r\r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, tt.prompt, tt.text); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCursorMidBuffer(t *testing.T) {
	var out bytes.Buffer
	buf := line.New()
	buf.SetText("abcd")
	buf.MoveLeft()
	buf.MoveLeft()

	if err := render(bufio.NewWriter(&out), NewPrompt("> "), buf); err != nil {
		t.Fatal(err)
	}

	want := "\x1b[2K\r> abcd\r\x1b[4C"
	if got := out.String(); got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}
