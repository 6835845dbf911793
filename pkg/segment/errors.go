package segment

import (
	"errors"
	"fmt"
)

// Sentinel errors for table validation.
var (
	// ErrEmptyTable is returned when a table has no segments.
	ErrEmptyTable = errors.New("segment: table is empty")

	// ErrDuplicateID is returned when two segments share an id.
	ErrDuplicateID = errors.New("segment: duplicate id")

	// ErrMissingID is returned when a segment has no id.
	ErrMissingID = errors.New("segment: missing id")

	// ErrDegenerateRange is returned when a segment has Start >= End.
	ErrDegenerateRange = errors.New("segment: start must be less than end")

	// ErrGap is returned when a segment starts after the previous one ends.
	ErrGap = errors.New("segment: gap between segments")

	// ErrOverlap is returned when a segment starts before the previous one ends.
	ErrOverlap = errors.New("segment: segments overlap")

	// ErrCoverage is returned when the table does not start at 0 or end at 1.
	ErrCoverage = errors.New("segment: ranges must cover [0,1]")

	// ErrReturnSegments is returned when the table cannot hold the two
	// trailing return segments plus at least one feature.
	ErrReturnSegments = errors.New("segment: table needs at least one feature and two return segments")

	// ErrUnknownFormat is returned when a table file has an unsupported extension.
	ErrUnknownFormat = errors.New("segment: unknown table format")
)

// ConfigError describes a table that failed validation.
// It is fatal at startup; the orbit has no meaningful fallback.
type ConfigError struct {
	// Index is the offending segment position, or -1 for table-wide problems.
	Index int

	// ID is the offending segment id, if known.
	ID string

	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("segment table: %v", e.Err)
	}
	if e.ID != "" {
		return fmt.Sprintf("segment table [%d %q]: %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("segment table [%d]: %v", e.Index, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(index int, id string, err error) error {
	return &ConfigError{Index: index, ID: id, Err: err}
}
