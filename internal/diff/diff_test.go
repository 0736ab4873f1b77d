package diff

import (
	"fmt"
	"strings"
	"testing"
)

func TestCompute_SingleChange(t *testing.T) {
	hunks := Compute("a\nb\nc\n", "a\nB\nc\n")
	if len(hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(hunks))
	}
	got := String("f.txt", hunks)
	want := "--- a/f.txt\n+++ b/f.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n"
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	added, removed := Stat(hunks)
	if added != 1 || removed != 1 {
		t.Errorf("Stat() = (%d, %d), want (1, 1)", added, removed)
	}
}

func TestCompute_NoChange(t *testing.T) {
	if hunks := Compute("same\n", "same\n"); len(hunks) != 0 {
		t.Errorf("got %d hunks for identical input", len(hunks))
	}
	if s := String("f", nil); s != "" {
		t.Errorf("String(nil) = %q, want empty", s)
	}
}

func TestCompute_MissingTrailingNewline(t *testing.T) {
	got := String("f", Compute("x\n", "x\ny"))
	if !strings.Contains(got, "+y\n\\ No newline at end of file\n") {
		t.Errorf("missing no-newline marker:\n%s", got)
	}
}

func equalLines(n int, prefix string) []Line {
	out := make([]Line, n)
	for i := range out {
		out[i] = Line{Op: Equal, Text: fmt.Sprintf("%s%d\n", prefix, i)}
	}
	return out
}

func TestHunks_SplitsDistantChanges(t *testing.T) {
	var lines []Line
	lines = append(lines, equalLines(2, "a")...)
	lines = append(lines, Line{Op: Delete, Text: "old1\n"}, Line{Op: Insert, Text: "new1\n"})
	lines = append(lines, equalLines(10, "b")...)
	lines = append(lines, Line{Op: Insert, Text: "new2\n"})
	lines = append(lines, equalLines(5, "c")...)

	hunks := Hunks(lines, 3)
	if len(hunks) != 2 {
		t.Fatalf("got %d hunks, want 2", len(hunks))
	}

	first := hunks[0]
	if first.OldStart != 1 || first.OldLines != 6 || first.NewStart != 1 || first.NewLines != 6 {
		t.Errorf("first hunk = -%d,%d +%d,%d, want -1,6 +1,6", first.OldStart, first.OldLines, first.NewStart, first.NewLines)
	}

	second := hunks[1]
	if second.OldStart != 11 || second.OldLines != 6 || second.NewStart != 11 || second.NewLines != 7 {
		t.Errorf("second hunk = -%d,%d +%d,%d, want -11,6 +11,7", second.OldStart, second.OldLines, second.NewStart, second.NewLines)
	}
}

func TestHunks_MergesNearbyChanges(t *testing.T) {
	var lines []Line
	lines = append(lines, Line{Op: Insert, Text: "x\n"})
	lines = append(lines, equalLines(6, "m")...)
	lines = append(lines, Line{Op: Delete, Text: "y\n"})

	hunks := Hunks(lines, 3)
	if len(hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(hunks))
	}
	if len(hunks[0].Lines) != 8 {
		t.Errorf("hunk has %d lines, want 8", len(hunks[0].Lines))
	}
}

func TestRender_Colored(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, "f", Compute("a\n", "b\n"), true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in colored output: %q", sb.String())
	}
}
