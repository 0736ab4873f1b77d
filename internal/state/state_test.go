package state

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestJournal_Latest(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	later := now.Add(1 * time.Hour)

	j := Journal{
		{File: "a.go", AfterHash: "h1", AppliedAt: now},
		{File: "b.go", AfterHash: "h2", AppliedAt: now},
		{File: "a.go", AfterHash: "h3", AppliedAt: later},
	}

	tests := []struct {
		name     string
		file     string
		wantOK   bool
		wantHash string
	}{
		{name: "most recent wins", file: "a.go", wantOK: true, wantHash: "h3"},
		{name: "single record", file: "b.go", wantOK: true, wantHash: "h2"},
		{name: "unknown file", file: "c.go", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := j.Latest(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("Latest() ok = %v, want %v", ok, tt.wantOK)
			}
			if got.AfterHash != tt.wantHash {
				t.Errorf("Latest() AfterHash = %q, want %q", got.AfterHash, tt.wantHash)
			}
		})
	}

	if n := len(j.ForFile("a.go")); n != 2 {
		t.Errorf("ForFile(a.go) returned %d records, want 2", n)
	}
	if !j.UpToDate("a.go", "h3") {
		t.Error("UpToDate(a.go, h3) = false, want true")
	}
	if j.UpToDate("a.go", "h1") {
		t.Error("UpToDate(a.go, h1) = true, want false")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".blockpatch_state.json")
	fs := NewFileStore(path)

	j, err := fs.Load()
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if len(j) != 0 {
		t.Fatalf("Load() on missing file returned %d records", len(j))
	}

	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	recs := []PatchRecord{
		{File: "x.dart", Name: "card", StartMarker: "// CARD", PayloadHash: "p", BeforeHash: "b", AfterHash: "a", Commit: "abc123", AppliedAt: at},
		{File: "y.dart", StartMarker: "// LIST", AppliedAt: at.Add(time.Minute)},
	}
	for _, r := range recs {
		if err := fs.Append(r); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	j, err = fs.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(j) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(j))
	}
	if j[0].Commit != "abc123" || !j[0].AppliedAt.Equal(at) || j[1].File != "y.dart" {
		t.Errorf("unexpected records: %+v", j)
	}
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	j, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() on empty file: %v", err)
	}
	if len(j) != 0 {
		t.Errorf("Load() returned %d records, want 0", len(j))
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("Load() on corrupt file should fail")
	}
}

func TestInMemoryStore_ReturnsCopy(t *testing.T) {
	ms := NewInMemoryStore()
	_ = ms.Append(PatchRecord{File: "a"})
	j, _ := ms.Load()
	j[0].File = "mutated"
	j2, _ := ms.Load()
	if j2[0].File != "a" {
		t.Error("Load() exposed internal storage")
	}
}

func TestFileStore_AppendReplacesFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("os.SameFile identity across renames differs on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	fs := NewFileStore(path)
	if err := fs.Append(PatchRecord{File: "a.txt"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := fs.Append(PatchRecord{File: "b.txt"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if os.SameFile(before, after) {
		t.Error("journal was rewritten in place instead of replaced")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left next to the journal: %d entries", len(entries))
	}
	if j, err := fs.Load(); err != nil || len(j) != 2 {
		t.Errorf("Load() = %d records, %v", len(j), err)
	}
}
