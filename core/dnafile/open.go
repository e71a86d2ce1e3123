package dnafile

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

var gzipMagic = []byte{0x1f, 0x8b}

// readFrom runs fn over the contents of path and prefixes its errors with
// the path. "-" reads stdin. Gzip input is unpacked when it starts with the
// gzip magic bytes or the name ends in .gz, so compressed stdin works too.
func readFrom(path string, fn func(io.Reader) error) error {
	var src io.Reader = os.Stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = fh.Close() }()
		src = fh
	}

	br := bufio.NewReader(src)
	if sig, _ := br.Peek(len(gzipMagic)); string(sig) == string(gzipMagic) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defer func() { _ = gr.Close() }()
		src = gr
	} else {
		src = br
	}

	if err := fn(src); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
