package segment

import "math"

// epsilon absorbs float literal noise when checking that ranges touch.
const epsilon = 1e-9

// ReturnCount is the number of trailing return segments every table carries.
const ReturnCount = 2

// Table is an ordered, immutable list of feature segments.
// Construct it with NewTable; the zero value is not usable.
type Table struct {
	segs  []FeatureSegment
	index map[string]int
}

// NewTable validates segs and returns a table holding a private copy.
//
// The ranges must be ascending, contiguous and cover [0,1]; every id must be
// unique; the last ReturnCount entries must be return segments (empty title
// and description). Failures are reported as *ConfigError.
func NewTable(segs []FeatureSegment) (*Table, error) {
	if len(segs) == 0 {
		return nil, configErr(-1, "", ErrEmptyTable)
	}
	if len(segs) < ReturnCount+1 {
		return nil, configErr(-1, "", ErrReturnSegments)
	}

	t := &Table{
		segs:  make([]FeatureSegment, len(segs)),
		index: make(map[string]int, len(segs)),
	}

	for i, s := range segs {
		if s.ID == "" {
			return nil, configErr(i, "", ErrMissingID)
		}
		if _, dup := t.index[s.ID]; dup {
			return nil, configErr(i, s.ID, ErrDuplicateID)
		}
		if !(s.Start < s.End) || math.IsNaN(s.Start) || math.IsNaN(s.End) {
			return nil, configErr(i, s.ID, ErrDegenerateRange)
		}
		if i == 0 {
			if math.Abs(s.Start) > epsilon {
				return nil, configErr(i, s.ID, ErrCoverage)
			}
		} else {
			prevEnd := segs[i-1].End
			switch {
			case s.Start-prevEnd > epsilon:
				return nil, configErr(i, s.ID, ErrGap)
			case prevEnd-s.Start > epsilon:
				return nil, configErr(i, s.ID, ErrOverlap)
			}
		}
		if i >= len(segs)-ReturnCount && (s.Title != "" || s.Description != "") {
			return nil, configErr(i, s.ID, ErrReturnSegments)
		}

		t.index[s.ID] = i
		t.segs[i] = s.clone()
	}

	last := segs[len(segs)-1]
	if math.Abs(last.End-1) > epsilon {
		return nil, configErr(len(segs)-1, last.ID, ErrCoverage)
	}

	return t, nil
}

// MustTable is like NewTable but panics on error.
// Use it only for tables compiled into the binary.
func MustTable(segs []FeatureSegment) *Table {
	t, err := NewTable(segs)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of segments, return segments included.
func (t *Table) Len() int {
	return len(t.segs)
}

// At returns the segment at index i.
func (t *Table) At(i int) FeatureSegment {
	return t.segs[i].clone()
}

// Segments returns a copy of the ordered segments.
func (t *Table) Segments() []FeatureSegment {
	out := make([]FeatureSegment, len(t.segs))
	for i, s := range t.segs {
		out[i] = s.clone()
	}
	return out
}

// Features returns the segments that can be reported as active,
// i.e. everything except the trailing return segments.
func (t *Table) Features() []FeatureSegment {
	return t.Segments()[:len(t.segs)-ReturnCount]
}

// Next returns the index following i, wrapping from the last entry to the first.
func (t *Table) Next(i int) int {
	if i+1 >= len(t.segs) {
		return 0
	}
	return i + 1
}

// IsReturn reports whether index i is one of the trailing return segments.
func (t *Table) IsReturn(i int) bool {
	return i >= len(t.segs)-ReturnCount
}

// Lookup returns the index of the segment with the given id.
func (t *Table) Lookup(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Find returns the index of the segment whose [Start, End) range contains
// progress. Progress at or past the last End resolves to the last segment.
//
// The scan is linear: tables hold a handful of entries and are searched once
// per tick.
func (t *Table) Find(progress float64) int {
	for i, s := range t.segs {
		if s.Contains(progress) {
			return i
		}
	}
	// Past the final End (progress == 1) or inside an epsilon-sized seam:
	// take the last segment that has already started.
	found := 0
	for i, s := range t.segs {
		if s.Start <= progress {
			found = i
		}
	}
	return found
}
