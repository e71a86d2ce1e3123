// Package profile defines the per-person STR profile stored in the registry.
package profile

import "strmatch-core/str"

// Profile is a person's STR records plus the of-interest flag set by the
// matching pass. Records keep input order.
type Profile struct {
	STRs       []str.Record
	OfInterest bool
}

// New copies records into a fresh, unflagged Profile.
func New(records ...str.Record) *Profile {
	cp := make([]str.Record, len(records))
	copy(cp, records)
	return &Profile{STRs: cp}
}

// Len returns the number of markers.
func (p *Profile) Len() int { return len(p.STRs) }

// Evaluate compares the profile against the two unknown reads without
// touching the flag.
func (p *Profile) Evaluate(first, second string, c str.Counter) str.Result {
	return str.Evaluate(p.STRs, first, second, c)
}

// Flag sets OfInterest when the comparison passes. It never clears the flag
// and reports whether this call changed it.
func (p *Profile) Flag(first, second string, c str.Counter) bool {
	if p.OfInterest {
		return false
	}
	if p.Evaluate(first, second, c).Flagged() {
		p.OfInterest = true
		return true
	}
	return false
}
