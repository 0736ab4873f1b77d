package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blockpatch/internal/recipe"
	"blockpatch/pkg/block"
)

func TestPlan(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gen"), 0o755); err != nil {
		t.Fatal(err)
	}
	createTempFile(t, filepath.Join(dir, "gen"), "a.go", original)
	createTempFile(t, filepath.Join(dir, "gen"), "b.go", "")
	createTempFile(t, dir, "payload.txt", "START\nNEW\n")

	src := `
patches:
  - name: gen
    files: ["gen/*.go"]
    when: "size > 0"
    start: START
    end: END
    payload_file: payload.txt
`
	rcp, err := recipe.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	rcp.Dir = dir

	targets, err := Plan(rcp, nil)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].Skip || !targets[1].Skip {
		t.Errorf("empty file should be skipped: %+v", targets)
	}
	if string(targets[0].Job.Payload) != "START\nNEW\n" || targets[0].Name != "gen" {
		t.Errorf("unexpected target: %+v", targets[0])
	}
}

func TestPlan_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "missing payload file",
			src:     `patches: [{name: a, file: x.txt, start: s, end: e, payload_file: nope.txt}]`,
			wantErr: "patch a: reading payload",
		},
		{
			name:    "no matching files",
			src:     `patches: [{name: b, files: ["*.none"], start: s, end: e, payload: p}]`,
			wantErr: "patch b: no files match",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rcp, err := recipe.Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			rcp.Dir = dir
			_, err = Plan(rcp, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Plan() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPlan_StdinSharedBetweenPatches(t *testing.T) {
	dir := t.TempDir()
	createTempFile(t, dir, "a.txt", original)
	createTempFile(t, dir, "b.txt", original)

	src := `
patches:
  - {name: a, file: a.txt, start: START, end: END, payload_file: "-"}
  - {name: b, file: b.txt, start: START, end: END, payload_file: "-"}
`
	rcp, err := recipe.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	rcp.Dir = dir

	targets, err := Plan(rcp, strings.NewReader("START\nNEW\n"))
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	for _, tg := range targets {
		if string(tg.Job.Payload) != "START\nNEW\n" {
			t.Errorf("patch %s payload = %q, want the stdin content", tg.Name, tg.Job.Payload)
		}
	}
}

func TestPlan_MissingLiteralFileIsNotSkipped(t *testing.T) {
	dir := t.TempDir()
	src := `patches: [{name: gone, file: missing.txt, when: "size > 0", start: S, end: E, payload: p}]`
	rcp, err := recipe.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	rcp.Dir = dir

	targets, err := Plan(rcp, nil)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(targets) != 1 || targets[0].Skip {
		t.Fatalf("missing file should reach the loader: %+v", targets)
	}

	rep := NewRunner(Options{}).Run(context.Background(), targets)
	if !errors.Is(rep.Err(), block.ErrIO) {
		t.Errorf("Run() error = %v, want ErrIO", rep.Err())
	}
}
