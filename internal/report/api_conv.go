package report

import "strmatch/pkg/api"

// ToAPIProfile converts a row to the stable wire type.
func ToAPIProfile(r Row) api.ProfileV1 {
	out := api.ProfileV1{
		Name:    r.Key,
		Flagged: r.Flagged,
		Matched: r.Result.Matched,
		Needed:  r.Result.Needed,
	}
	if len(r.Result.Markers) > 0 {
		out.Markers = make([]api.MarkerV1, len(r.Result.Markers))
		for i, m := range r.Result.Markers {
			out.Markers[i] = api.MarkerV1{
				Marker:   m.Marker,
				Declared: m.Occurrences,
				Combined: m.Combined,
				Match:    m.Match(),
			}
		}
	}
	return out
}

// ToAPI converts a whole report.
func ToAPI(rep Report) api.ReportV1 {
	out := api.ReportV1{
		FirstUnknownLen:  rep.FirstUnknownLen,
		SecondUnknownLen: rep.SecondUnknownLen,
		Height:           rep.Height,
		Totals: api.TotalsV1{
			Profiles:  rep.Totals.Profiles,
			Flagged:   rep.Totals.Flagged,
			Unflagged: rep.Totals.Unflagged,
			Removed:   rep.Totals.Removed,
		},
		Profiles:   make([]api.ProfileV1, len(rep.Rows)),
		Removed:    rep.Removed,
		Duplicates: rep.Duplicates,
	}
	for i, r := range rep.Rows {
		out.Profiles[i] = ToAPIProfile(r)
	}
	return out
}
