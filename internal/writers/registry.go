package writers

import (
	"fmt"
	"io"
	"sort"

	"strmatch/internal/report"
)

// Options tune rendering for formats that support it.
type Options struct {
	Header bool
}

// WriteFunc renders rep to w.
type WriteFunc func(w io.Writer, rep report.Report, o Options) error

// formats maps an --output name to its writer. Filled from init() blocks.
var formats = map[string]WriteFunc{}

// Register binds format to fn (last wins).
func Register(format string, fn WriteFunc) { formats[format] = fn }

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, rep report.Report, o Options) error {
	fn, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, rep, o)
}

// Known reports whether format has a writer.
func Known(format string) bool {
	_, ok := formats[format]
	return ok
}

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
