package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	// readBufferSize is the bufio buffer used for each source. Longer lines
	// spill into the line reader's scratch buffer.
	readBufferSize = 64 * 1024
)

// ErrInvalidUTF8 is returned when a source contains a line that is not valid UTF-8
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// lineReader yields '\n'-terminated lines, terminator included. The returned
// slice is only valid until the next call.
type lineReader struct {
	r       *bufio.Reader
	scratch []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// next returns the next line. At end of stream it returns the final
// unterminated line (if any) together with io.EOF.
func (lr *lineReader) next() ([]byte, error) {
	lr.scratch = lr.scratch[:0]
	for {
		frag, err := lr.r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			lr.scratch = append(lr.scratch, frag...)
			continue
		}
		if len(lr.scratch) > 0 {
			lr.scratch = append(lr.scratch, frag...)
			frag = lr.scratch
		}
		return frag, err
	}
}

// scanLines feeds every selected line of r to keep. It stops at the first
// read or decoding failure.
func scanLines(r io.Reader, p *Pattern, invert bool, keep func(line []byte)) error {
	lr := newLineReader(r)
	lineNo := 0

	for {
		line, err := lr.next()
		if err != nil && err != io.EOF {
			return err
		}
		if len(line) == 0 {
			return nil
		}
		lineNo++

		if !utf8.Valid(line) {
			return fmt.Errorf("line %d: %w", lineNo, ErrInvalidUTF8)
		}
		if p.Selects(line, invert) {
			keep(line)
		}

		if err == io.EOF {
			return nil
		}
	}
}

// MatchLines returns the lines of r selected by p, in order and with their
// terminators. On failure no lines are returned.
func MatchLines(r io.Reader, p *Pattern, invert bool) ([]string, error) {
	var matches []string

	err := scanLines(r, p, invert, func(line []byte) {
		matches = append(matches, string(line))
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// CountLines returns how many lines MatchLines would return, without keeping
// the lines themselves.
func CountLines(r io.Reader, p *Pattern, invert bool) (int, error) {
	count := 0

	err := scanLines(r, p, invert, func([]byte) {
		count++
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
