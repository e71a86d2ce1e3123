// Package dnafile reads the profile database format:
//
//	<first unknown sequence>
//	<second unknown sequence>
//	<number of people>
//	<First> <Last> <numSTRs> (<marker> <occurrences>){numSTRs}
//	...
//
// Everything after the third line is whitespace separated and may wrap
// freely across lines.
package dnafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"strmatch-core/profile"
	"strmatch-core/registry"
	"strmatch-core/str"
)

// ErrFormat wraps every malformed-input error returned by Parse.
var ErrFormat = errors.New("malformed profile database")

// maxLine bounds a single input line; unknown reads can be long.
const maxLine = 64 << 20

// Person is one database entry.
type Person struct {
	First string
	Last  string
	STRs  []str.Record
}

// Key is the registry key, "Last, First".
func (p Person) Key() string { return p.Last + ", " + p.First }

// Dataset is a fully parsed database file.
type Dataset struct {
	FirstUnknown  string
	SecondUnknown string
	People        []Person
}

// Registry builds a registry from the dataset in file order and returns the
// keys whose later entries were dropped as duplicates.
func (d *Dataset) Registry() (*registry.Registry, []string) {
	r := registry.New()
	r.SetFirstUnknown(d.FirstUnknown)
	r.SetSecondUnknown(d.SecondUnknown)
	var dups []string
	for _, p := range d.People {
		if !r.Insert(p.Key(), profile.New(p.STRs...)) {
			dups = append(dups, p.Key())
		}
	}
	return r, dups
}

// Load opens and parses path ("-" for stdin).
func Load(path string) (*Dataset, error) {
	var ds *Dataset
	err := readFrom(path, func(r io.Reader) (err error) {
		ds, err = Parse(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Parse reads a database from r.
func Parse(r io.Reader) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	tk := &tokens{sc: sc}

	var ds Dataset
	var ok bool
	if ds.FirstUnknown, ok = tk.line(); !ok {
		return nil, tk.fail("missing first unknown sequence")
	}
	if ds.SecondUnknown, ok = tk.line(); !ok {
		return nil, tk.fail("missing second unknown sequence")
	}
	countLine, ok := tk.line()
	if !ok {
		return nil, tk.fail("missing people count")
	}
	n, err := strconv.Atoi(countLine)
	if err != nil || n < 0 {
		return nil, tk.fail("bad people count %q", countLine)
	}

	ds.People = make([]Person, 0, n)
	for i := 0; i < n; i++ {
		p, err := tk.person()
		if err != nil {
			return nil, err
		}
		ds.People = append(ds.People, p)
	}
	return &ds, nil
}

// tokens hands out whole lines for the header and whitespace tokens after.
type tokens struct {
	sc     *bufio.Scanner
	lineNo int
	fields []string
	err    error
}

func (t *tokens) scan() bool {
	if !t.sc.Scan() {
		t.err = t.sc.Err()
		return false
	}
	t.lineNo++
	return true
}

func (t *tokens) line() (string, bool) {
	if !t.scan() {
		return "", false
	}
	return strings.TrimSpace(t.sc.Text()), true
}

func (t *tokens) next() (string, bool) {
	for len(t.fields) == 0 {
		if !t.scan() {
			return "", false
		}
		t.fields = strings.Fields(t.sc.Text())
	}
	f := t.fields[0]
	t.fields = t.fields[1:]
	return f, true
}

func (t *tokens) nextInt(what string) (int, error) {
	s, ok := t.next()
	if !ok {
		return 0, t.fail("missing %s", what)
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, t.fail("bad %s %q", what, s)
	}
	return v, nil
}

func (t *tokens) person() (Person, error) {
	var p Person
	var ok bool
	if p.First, ok = t.next(); !ok {
		return p, t.fail("missing first name")
	}
	if p.Last, ok = t.next(); !ok {
		return p, t.fail("missing last name for %q", p.First)
	}
	n, err := t.nextInt("STR count")
	if err != nil {
		return p, err
	}
	p.STRs = make([]str.Record, n)
	for i := range p.STRs {
		m, ok := t.next()
		if !ok {
			return p, t.fail("missing marker %d of %d for %s", i+1, n, p.Key())
		}
		occ, err := t.nextInt("occurrence count")
		if err != nil {
			return p, err
		}
		p.STRs[i] = str.Record{Marker: m, Occurrences: occ}
	}
	return p, nil
}

func (t *tokens) fail(format string, a ...any) error {
	if t.err != nil {
		return fmt.Errorf("line %d: %s: %w", t.lineNo, fmt.Sprintf(format, a...), t.err)
	}
	return fmt.Errorf("line %d: %s: %w", t.lineNo, fmt.Sprintf(format, a...), ErrFormat)
}
