// Package state keeps a journal of applied patches so a later run can show
// when and from which commit a block was last regenerated.
package state

import (
	"time"
)

// PatchRecord describes one successful write of a block into a file.
// It is serialized as one element of the journal's JSON array.
type PatchRecord struct {
	File        string    `json:"file"`             // Path of the patched file
	Name        string    `json:"name,omitempty"`   // Recipe entry name, empty for ad-hoc runs
	StartMarker string    `json:"start_marker"`     // Literal start marker
	PayloadHash string    `json:"payload_hash"`     // SHA-256 of the payload
	BeforeHash  string    `json:"before_hash"`      // SHA-256 of the file before patching
	AfterHash   string    `json:"after_hash"`       // SHA-256 of the file after patching
	Commit      string    `json:"commit,omitempty"` // git HEAD at the time, if any
	AppliedAt   time.Time `json:"applied_at"`
}

// Journal is the ordered list of records, oldest first.
type Journal []PatchRecord

// ForFile returns the records whose File equals path, oldest first.
func (j Journal) ForFile(path string) Journal {
	var out Journal
	for _, r := range j {
		if r.File == path {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the most recent record for path.
func (j Journal) Latest(path string) (PatchRecord, bool) {
	for i := len(j) - 1; i >= 0; i-- {
		if j[i].File == path {
			return j[i], true
		}
	}
	return PatchRecord{}, false
}

// UpToDate reports whether the last record for path left the file with
// the given content hash, i.e. nobody has touched it since.
func (j Journal) UpToDate(path, contentHash string) bool {
	last, ok := j.Latest(path)
	return ok && last.AfterHash == contentHash
}
