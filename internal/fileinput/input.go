// Package fileinput chains named input streams into one sequential rune
// source, tracking the file/line location being scanned for error and
// trace reporting.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input reads runes sequentially through a Queue of input streams,
// advancing to the next stream as each one is exhausted.
type Input struct {
	raw   io.Reader
	rr    io.RuneReader
	Queue []io.Reader
	loc   Location
}

// At reports the location being scanned.
func (in *Input) At() Location { return in.loc }

// ReadRune reads one rune from the current stream, counting line feeds as
// they pass. When the current stream ends, reading continues from the
// next queued one; io.EOF is returned only once the queue is exhausted.
// Stream rollover surfaces as a NUL rune with a nil error.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	if r == '\n' {
		in.loc.Line++
	}

	if r != 0 {
		return r, n, nil
	}
	if err == io.EOF && in.nextIn() {
		err = nil
	}
	return 0, n, err
}

func (in *Input) nextIn() bool {
	if in.raw != nil {
		if cl, ok := in.raw.(io.Closer); ok {
			cl.Close()
		}
		in.raw, in.rr = nil, nil
	}
	if len(in.Queue) == 0 {
		return false
	}

	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.raw = r
	if rr, ok := r.(io.RuneReader); ok {
		in.rr = rr
	} else {
		in.rr = bufio.NewReader(r)
	}
	in.loc = Location{Name: nameOf(r), Line: 1}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
