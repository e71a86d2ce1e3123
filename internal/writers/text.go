package writers

import (
	"fmt"
	"io"
	"strings"

	"strmatch/internal/report"
)

// TSVHeader is the header row for text output.
const TSVHeader = "name\tflagged\tmatched\tneeded\tmarkers"

func init() { Register("text", WriteText) }

// WriteText prints one TSV line per row. The markers column lists
// marker=declared/combined pairs.
func WriteText(w io.Writer, rep report.Report, o Options) error {
	if o.Header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range rep.Rows {
		_, err := fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%s\n",
			r.Key, r.Flagged, r.Result.Matched, r.Result.Needed, markerList(r))
		if err != nil {
			return err
		}
	}
	return nil
}

func markerList(r report.Row) string {
	if len(r.Result.Markers) == 0 {
		return "-"
	}
	parts := make([]string, len(r.Result.Markers))
	for i, m := range r.Result.Markers {
		parts[i] = fmt.Sprintf("%s=%d/%d", m.Marker, m.Occurrences, m.Combined)
	}
	return strings.Join(parts, ",")
}
