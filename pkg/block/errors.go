package block

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is matched by errors that come from reading or writing the
	// patched resource.
	ErrIO = errors.New("block: i/o error")
	// ErrMarkerNotFound is matched by *MarkerNotFoundError.
	ErrMarkerNotFound = errors.New("block: marker not found")
	// ErrMarkerOrder is matched by *MarkerOrderError.
	ErrMarkerOrder = errors.New("block: end marker does not follow start marker")
	// ErrEmptyMarker is returned when a start or end marker is empty.
	ErrEmptyMarker = errors.New("block: empty marker")
)

// Which names one of the two markers of a job.
type Which int

const (
	StartMarker Which = iota
	EndMarker
)

func (w Which) String() string {
	if w == EndMarker {
		return "end"
	}
	return "start"
}

// MarkerNotFoundError reports a marker absent from the document.
type MarkerNotFoundError struct {
	Which  Which
	Marker Marker
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("%s marker %q not found", e.Which, abbreviate(string(e.Marker)))
}

func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

// MarkerOrderError reports an end marker whose first occurrence does not
// begin after the first start marker occurrence has ended. An end marker
// that starts inside the start marker is treated like one that precedes
// it, as is one that immediately follows it and leaves an empty region.
type MarkerOrderError struct {
	Start          int
	End            int
	StartMarkerLen int
}

func (e *MarkerOrderError) Error() string {
	switch {
	case e.End < e.Start:
		return fmt.Sprintf("end marker at offset %d precedes start marker at offset %d", e.End, e.Start)
	case e.End == e.Start:
		return fmt.Sprintf("end marker at offset %d coincides with start marker", e.End)
	case e.End < e.Start+e.StartMarkerLen:
		return fmt.Sprintf("end marker at offset %d overlaps start marker at offset %d", e.End, e.Start)
	default:
		return fmt.Sprintf("end marker at offset %d immediately follows start marker: empty region", e.End)
	}
}

func (e *MarkerOrderError) Is(target error) bool {
	return target == ErrMarkerOrder
}

// abbreviate keeps long multi-line markers readable in error messages.
func abbreviate(s string) string {
	const limit = 60
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
