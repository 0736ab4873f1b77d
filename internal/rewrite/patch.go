// Package rewrite loads a file, splices a block into it and writes it back
// atomically.
package rewrite

import (
	"bytes"
	"fmt"

	"blockpatch/pkg/block"
)

// Result describes one prepared patch. Before and After hold the full
// document around the splice; nothing is written until Commit.
type Result struct {
	Path   string
	Region block.Region
	Before block.Document
	After  block.Document

	// StartLine and EndLine are the 1-based lines of the start and end
	// marker occurrences in Before.
	StartLine int
	EndLine   int
}

// Changed reports whether applying the patch alters the file.
func (r *Result) Changed() bool {
	return !bytes.Equal(r.Before, r.After)
}

// Prepare loads path and applies job in memory.
func Prepare(path string, job block.Job) (*Result, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	after, region, err := block.Apply(doc, job)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	offsets := BuildLineOffsets(doc)
	return &Result{
		Path:      path,
		Region:    region,
		Before:    doc,
		After:     after,
		StartLine: LineIndexOfByte(offsets, region.Start) + 1,
		EndLine:   LineIndexOfByte(offsets, region.End) + 1,
	}, nil
}

// Commit writes the patched document. An unchanged document is not
// rewritten.
func (r *Result) Commit() error {
	if !r.Changed() {
		return nil
	}
	return WriteFile(r.Path, r.After)
}

// PatchFile runs the whole pipeline on path: load, locate, splice, write.
// Any error leaves the file exactly as it was.
func PatchFile(path string, job block.Job) (*Result, error) {
	res, err := Prepare(path, job)
	if err != nil {
		return nil, err
	}
	if err := res.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}
