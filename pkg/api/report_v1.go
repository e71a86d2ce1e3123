package api

// MarkerV1 is one STR comparison inside a profile.
type MarkerV1 struct {
	Marker   string `json:"marker" yaml:"marker"`
	Declared int    `json:"declared" yaml:"declared"`
	Combined int    `json:"combined" yaml:"combined"`
	Match    bool   `json:"match" yaml:"match"`
}

// ProfileV1 is the stable JSON/JSONL/YAML schema for one registry entry.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ProfileV1 struct {
	Name    string     `json:"name" yaml:"name"`
	Flagged bool       `json:"flagged" yaml:"flagged"`
	Matched int        `json:"matched" yaml:"matched"`
	Needed  int        `json:"needed" yaml:"needed"`
	Markers []MarkerV1 `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// TotalsV1 summarizes the registry after all operations ran.
type TotalsV1 struct {
	Profiles  int `json:"profiles" yaml:"profiles"`
	Flagged   int `json:"flagged" yaml:"flagged"`
	Unflagged int `json:"unflagged" yaml:"unflagged"`
	Removed   int `json:"removed" yaml:"removed"`
}

// ReportV1 is the whole-run document for json and yaml output.
type ReportV1 struct {
	FirstUnknownLen  int         `json:"first_unknown_len" yaml:"first_unknown_len"`
	SecondUnknownLen int         `json:"second_unknown_len" yaml:"second_unknown_len"`
	Height           int         `json:"height" yaml:"height"`
	Totals           TotalsV1    `json:"totals" yaml:"totals"`
	Profiles         []ProfileV1 `json:"profiles" yaml:"profiles"`
	Removed          []string    `json:"removed,omitempty" yaml:"removed,omitempty"`
	Duplicates       []string    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}
