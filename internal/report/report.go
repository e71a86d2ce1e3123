// Package report snapshots a registry into a presentation-neutral Report.
// Writers render Reports; they never touch the registry directly.
package report

import (
	"fmt"

	"strmatch-core/profile"
	"strmatch-core/registry"
	"strmatch-core/str"
)

// Selection modes for Options.Only.
const (
	OnlyAll       = "all"
	OnlyFlagged   = "flagged"
	OnlyUnflagged = "unflagged"
)

// ValidOnly reports whether s is a known selection mode.
func ValidOnly(s string) bool {
	switch s {
	case OnlyAll, OnlyFlagged, OnlyUnflagged:
		return true
	}
	return false
}

// Row is one profile, in level order.
type Row struct {
	Key     string
	Flagged bool
	Result  str.Result
}

// Node mirrors the tree shape for the tree writer.
type Node struct {
	Key     string
	Flagged bool
	Left    *Node
	Right   *Node
}

// Totals are counted over the whole registry regardless of Only.
type Totals struct {
	Profiles  int
	Flagged   int
	Unflagged int
	Removed   int
}

type Report struct {
	FirstUnknownLen  int
	SecondUnknownLen int
	Height           int
	Rows             []Row
	Root             *Node
	Totals           Totals
	Removed          []string
	Duplicates       []string
}

type Options struct {
	Only       string
	Counter    str.Counter
	Removed    []string
	Duplicates []string
}

// Build walks reg once in level order. Rows are re-evaluated against the
// unknown reads so writers can show per-marker detail.
func Build(reg *registry.Registry, o Options) (Report, error) {
	only := o.Only
	if only == "" {
		only = OnlyAll
	}
	if !ValidOnly(only) {
		return Report{}, fmt.Errorf("invalid selection %q", o.Only)
	}

	flagged := reg.CountByInterest(true)
	unflagged := reg.CountByInterest(false)
	rep := Report{
		FirstUnknownLen:  len(reg.FirstUnknown()),
		SecondUnknownLen: len(reg.SecondUnknown()),
		Height:           reg.Height(),
		Rows:             make([]Row, 0, flagged+unflagged),
		Root:             snapshot(reg.Root()),
		Totals: Totals{
			Profiles:  flagged + unflagged,
			Flagged:   flagged,
			Unflagged: unflagged,
			Removed:   len(o.Removed),
		},
		Removed:    o.Removed,
		Duplicates: o.Duplicates,
	}

	reg.Walk(func(key string, p *profile.Profile) bool {
		switch {
		case only == OnlyFlagged && !p.OfInterest:
			return true
		case only == OnlyUnflagged && p.OfInterest:
			return true
		}
		rep.Rows = append(rep.Rows, Row{
			Key:     key,
			Flagged: p.OfInterest,
			Result:  p.Evaluate(reg.FirstUnknown(), reg.SecondUnknown(), o.Counter),
		})
		return true
	})
	return rep, nil
}

func snapshot(n *registry.Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{Key: n.Key()}
	if p := n.Profile(); p != nil {
		out.Flagged = p.OfInterest
	}
	out.Left = snapshot(n.Left())
	out.Right = snapshot(n.Right())
	return out
}
