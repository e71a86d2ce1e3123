package writers

import (
	"io"

	"gopkg.in/yaml.v2"

	"strmatch/internal/report"
)

func init() { Register("yaml", WriteYAML) }

// WriteYAML writes the report as a ReportV1 YAML document.
func WriteYAML(w io.Writer, rep report.Report, _ Options) error {
	b, err := yaml.Marshal(report.ToAPI(rep))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
