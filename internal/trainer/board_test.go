package trainer

import (
	"strings"
	"testing"

	"github.com/gmkornilov/tactics-trainer/internal/position"
)

func TestRenderStartingPosition(t *testing.T) {
	pos, err := position.FromFEN(startFEN)
	if err != nil {
		t.Fatal(err)
	}
	got := NewBoardRenderer(false).Render(pos)
	want := strings.Join([]string{
		"  8  R N B Q K B N R",
		"  7  ▲ ▲ ▲ ▲ ▲ ▲ ▲ ▲",
		"  6  · · · · · · · ·",
		"  5  · · · · · · · ·",
		"  4  · · · · · · · ·",
		"  3  · · · · · · · ·",
		"  2  ▲ ▲ ▲ ▲ ▲ ▲ ▲ ▲",
		"  1  R N B Q K B N R",
		"     a b c d e f g h",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected board:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderColorsBySide(t *testing.T) {
	pos, _ := position.FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	out := NewBoardRenderer(true).Render(pos)
	if !strings.Contains(out, "\x1b[34mK") {
		t.Fatalf("white king not rendered blue: %q", out)
	}
	if !strings.Contains(out, "\x1b[31mK") {
		t.Fatalf("black king not rendered red: %q", out)
	}
	if !strings.Contains(out, "\x1b[90m·") || !strings.Contains(out, "\x1b[37m·") {
		t.Fatalf("empty squares not shaded by square color: %q", out)
	}
}
