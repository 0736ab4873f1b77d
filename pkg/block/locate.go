package block

import "bytes"

// Locate finds the first occurrence of start and the first occurrence of
// end in doc. Each marker is searched independently from the beginning of
// the document. The end marker must begin after the start marker ends, so
// an empty or overlapping region is rejected with a *MarkerOrderError.
func Locate(doc Document, start, end Marker) (Region, error) {
	if start == "" {
		return Region{}, &emptyMarkerError{which: StartMarker}
	}
	if end == "" {
		return Region{}, &emptyMarkerError{which: EndMarker}
	}

	s := bytes.Index(doc, []byte(start))
	if s < 0 {
		return Region{}, &MarkerNotFoundError{Which: StartMarker, Marker: start}
	}
	e := bytes.Index(doc, []byte(end))
	if e < 0 {
		return Region{}, &MarkerNotFoundError{Which: EndMarker, Marker: end}
	}
	if e <= s+len(start) {
		return Region{}, &MarkerOrderError{Start: s, End: e, StartMarkerLen: len(start)}
	}

	return Region{
		Start:          s,
		End:            e,
		StartMarkerLen: len(start),
		EndMarkerLen:   len(end),
	}, nil
}

// Splice returns doc[:r.Start] + p + doc[r.End:] in a freshly allocated
// buffer. r must come from Locate on the same document.
func Splice(doc Document, r Region, p Payload) Document {
	if r.Start < 0 || r.End > len(doc) || r.Start >= r.End {
		panic("block: splice with invalid region")
	}
	out := make(Document, 0, len(doc)-r.Len()+len(p))
	out = append(out, doc[:r.Start]...)
	out = append(out, p...)
	out = append(out, doc[r.End:]...)
	return out
}

// Apply locates the job's region in doc and splices its payload in.
func Apply(doc Document, j Job) (Document, Region, error) {
	r, err := Locate(doc, j.Start, j.End)
	if err != nil {
		return nil, Region{}, err
	}
	return Splice(doc, r, j.Payload), r, nil
}

type emptyMarkerError struct {
	which Which
}

func (e *emptyMarkerError) Error() string {
	return e.which.String() + " marker is empty"
}

func (e *emptyMarkerError) Is(target error) bool {
	return target == ErrEmptyMarker
}
