// Package str holds short tandem repeat records and the occurrence counting
// used to compare a profile against unknown DNA reads.
package str

import "strings"

// Record is the observed repeat count of one marker in a profile.
type Record struct {
	Marker      string
	Occurrences int
}

// Counter counts occurrences of marker in seq.
type Counter interface {
	Count(seq, marker string) int
}

// CounterFunc adapts a plain function to Counter.
type CounterFunc func(seq, marker string) int

func (f CounterFunc) Count(seq, marker string) int { return f(seq, marker) }

// Default counts with CountOccurrences and no caching.
var Default Counter = CounterFunc(CountOccurrences)

// CountOccurrences scans seq left to right; each search resumes at the end of
// the previous match, so counted occurrences never overlap.
// An empty marker, or one longer than seq, counts 0.
func CountOccurrences(seq, marker string) int {
	if marker == "" || len(marker) > len(seq) {
		return 0
	}
	n := 0
	for i := strings.Index(seq, marker); i >= 0; {
		n++
		next := strings.Index(seq[i+len(marker):], marker)
		if next < 0 {
			break
		}
		i += len(marker) + next
	}
	return n
}

// Needed is the number of matching markers required to flag a profile with
// n markers: ceil(n/2).
func Needed(n int) int { return (n + 1) / 2 }

// MarkerResult is the comparison of one record against both reads.
type MarkerResult struct {
	Record
	Combined int
}

// Match reports whether the combined read count equals the declared count.
func (m MarkerResult) Match() bool { return m.Combined == m.Occurrences }

// Result summarizes a profile comparison.
type Result struct {
	Markers []MarkerResult
	Matched int
	Needed  int
}

// Flagged reports whether enough markers matched.
func (r Result) Flagged() bool { return r.Matched >= r.Needed }

// Evaluate compares records against the two unknown reads. A nil counter
// falls back to Default.
func Evaluate(records []Record, first, second string, c Counter) Result {
	if c == nil {
		c = Default
	}
	res := Result{
		Markers: make([]MarkerResult, len(records)),
		Needed:  Needed(len(records)),
	}
	for i, rec := range records {
		mr := MarkerResult{
			Record:   rec,
			Combined: c.Count(first, rec.Marker) + c.Count(second, rec.Marker),
		}
		if mr.Match() {
			res.Matched++
		}
		res.Markers[i] = mr
	}
	return res
}
