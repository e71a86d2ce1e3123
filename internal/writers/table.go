package writers

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"strmatch/internal/report"
)

func init() { Register("table", WriteTable) }

// WriteTable renders rows as an aligned, unstyled pterm table followed by a
// totals line.
func WriteTable(w io.Writer, rep report.Report, o Options) error {
	var data pterm.TableData
	if o.Header {
		data = append(data, []string{"Name", "Flagged", "Matched", "Needed", "Markers"})
	}
	for _, r := range rep.Rows {
		flag := "no"
		if r.Flagged {
			flag = "yes"
		}
		data = append(data, []string{
			r.Key, flag,
			fmt.Sprint(r.Result.Matched), fmt.Sprint(r.Result.Needed),
			markerList(r),
		})
	}

	if len(data) > 0 {
		s, err := renderPlain(data, o.Header)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "profiles=%d flagged=%d unflagged=%d removed=%d\n",
		rep.Totals.Profiles, rep.Totals.Flagged, rep.Totals.Unflagged, rep.Totals.Removed)
	return err
}

// renderPlain renders with pterm styling off and puts the host's styling
// state back afterwards, whatever it was.
func renderPlain(data pterm.TableData, header bool) (string, error) {
	raw, color := pterm.RawOutput, pterm.PrintColor
	pterm.DisableStyling()
	defer func() {
		pterm.RawOutput = raw
		if color {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
	}()
	return pterm.DefaultTable.WithHasHeader(header).WithData(data).Srender()
}
