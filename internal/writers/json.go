package writers

import (
	"bufio"
	"encoding/json"
	"io"

	"strmatch/internal/report"
)

func init() {
	Register("json", WriteJSON)
	Register("jsonl", WriteJSONL)
}

// WriteJSON writes the whole report as one indented ReportV1 document.
func WriteJSON(w io.Writer, rep report.Report, _ Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report.ToAPI(rep))
}

// WriteJSONL streams one ProfileV1 per line.
func WriteJSONL(w io.Writer, rep report.Report, _ Options) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	enc := json.NewEncoder(bw)
	for _, r := range rep.Rows {
		if err := enc.Encode(report.ToAPIProfile(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
