package main

import (
	"bufio"
	"io"
)

// exportReader rewrites backslash-escaped quotes inside quoted CSV fields
// into RFC 4180 doubled quotes, so encoding/csv accepts exports produced by
// tools that escape the non-standard way.
type exportReader struct {
	br      *bufio.Reader
	pending []byte
	quoted  bool
}

func newExportReader(r io.Reader) *exportReader {
	return &exportReader{br: bufio.NewReader(r)}
}

func (e *exportReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(e.pending) > 0 {
			m := copy(p[n:], e.pending)
			e.pending = e.pending[m:]
			n += m
			continue
		}
		c, err := e.br.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		switch {
		case c == '"':
			// Doubled quotes toggle twice, which nets out correctly.
			e.quoted = !e.quoted
			p[n] = c
			n++
		case c == '\\' && e.quoted:
			next, err := e.br.ReadByte()
			if err != nil {
				p[n] = c
				n++
				return n, nil
			}
			switch next {
			case '"':
				e.pending = []byte(`""`)
			case 'n':
				e.pending = []byte{'\n'}
			default:
				e.pending = []byte{next}
			}
		default:
			p[n] = c
			n++
		}
	}
	return n, nil
}
