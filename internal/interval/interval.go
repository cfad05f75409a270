// Package interval locates the sample range of a time window within a
// time series's timestamp source.
package interval

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNonpositiveRate reports a regular grid with no usable sample
// spacing.
var ErrNonpositiveRate = errors.New("sampling rate is not positive")

// Finder answers window queries against one series's timestamps. A
// finder is seeded once, from an explicit timestamp array or a regular
// grid, and queried for every epoch referencing the series.
type Finder struct {
	timestamps []float64
}

// NewFinder creates a finder over an explicit timestamp array. The
// array must be non-decreasing.
func NewFinder(timestamps []float64) *Finder {
	return &Finder{timestamps: timestamps}
}

// FromRate creates a finder over the regular grid start + i/rate for
// i in [0, n). The rate must be positive.
func FromRate(start, rate float64, n int) (*Finder, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("rate %g: %w", rate, ErrNonpositiveRate)
	}
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = start + float64(i)/rate
	}
	return &Finder{timestamps: ts}, nil
}

// Len returns the number of samples the finder covers.
func (f *Finder) Len() int { return len(f.timestamps) }

// Window returns the sample-range membership of [start, stop]:
// startIdx is the smallest index whose timestamp is >= start, and
// count the number of consecutive samples from startIdx with timestamp
// <= stop. An empty range (count 0) denotes no overlap and is valid.
func (f *Finder) Window(start, stop float64) (startIdx, count int) {
	startIdx = sort.SearchFloat64s(f.timestamps, start)
	end := startIdx
	for end < len(f.timestamps) && f.timestamps[end] <= stop {
		end++
	}
	return startIdx, end - startIdx
}
