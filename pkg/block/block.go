// Package block locates a marker-delimited region inside a document and
// splices a replacement payload over it.
package block

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// Document is the full content of a patched file. It is replaced as a
// whole, never edited in place.
type Document []byte

// Marker is a literal byte sequence used as a positional anchor.
type Marker string

// Payload is the opaque text substituted for a Region.
type Payload []byte

// Region is the half-open span [Start, End) running from the first start
// marker occurrence up to the first end marker occurrence.
type Region struct {
	Start          int
	End            int
	StartMarkerLen int
	EndMarkerLen   int
}

// Len returns the number of bytes the region replaces.
func (r Region) Len() int {
	return r.End - r.Start
}

// Job is one patch: two markers and the payload to put between them.
type Job struct {
	Start   Marker
	End     Marker
	Payload Payload
}

// Conventional reports whether the payload begins with the start marker,
// which keeps a second application of the same job well formed.
func (j Job) Conventional() bool {
	return Conventional(j.Payload, j.Start)
}

// Conventional reports whether p begins with the literal start marker.
func Conventional(p Payload, start Marker) bool {
	return bytes.HasPrefix(p, []byte(start))
}

// Hash returns the hex encoded SHA-256 of data. It is used to fingerprint
// payloads and document versions in the journal.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
