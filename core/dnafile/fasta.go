package dnafile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Read is one FASTA record.
type Read struct {
	ID  string
	Seq string
}

// ReadFASTA parses every record in r. Sequence lines are concatenated as-is;
// the ID is the header up to the first whitespace.
func ReadFASTA(r io.Reader) ([]Read, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	var (
		reads []Read
		cur   *Read
		seq   strings.Builder
		ln    int
	)
	flush := func() {
		if cur != nil {
			cur.Seq = seq.String()
			reads = append(reads, *cur)
			seq.Reset()
		}
	}
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			id := strings.TrimSpace(line[1:])
			if i := strings.IndexAny(id, " \t"); i >= 0 {
				id = id[:i]
			}
			cur = &Read{ID: id}
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: sequence before first '>' header: %w", ln, ErrFormat)
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return reads, nil
}

// LoadUnknowns reads the first two FASTA records of path as the first and
// second unknown sequences. Further records are ignored.
func LoadUnknowns(path string) (first, second string, err error) {
	err = readFrom(path, func(r io.Reader) error {
		reads, err := ReadFASTA(r)
		if err != nil {
			return err
		}
		if len(reads) < 2 {
			return fmt.Errorf("want 2 FASTA records for the unknowns, got %d: %w", len(reads), ErrFormat)
		}
		first, second = reads[0].Seq, reads[1].Seq
		return nil
	})
	return first, second, err
}
