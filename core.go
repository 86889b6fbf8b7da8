package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gowren/internal/fileinput"
	"github.com/jcorbin/gowren/internal/flushio"
)

// Core bundles the engine's ambient services: trace logging, the queue of
// named input streams, and flushable output.
type Core struct {
	logging
	fileinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer
}

func (core *Core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt aborts the engine with a panic that the Run boundary recovers into
// an error; output is flushed first so that the user sees everything that
// preceded the failure.
func (core *Core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (core *Core) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

// readRune pulls one rune from the input queue, flushing pending output
// first so prompts precede reads. Exhausted input surfaces as io.EOF; NUL
// runes from stream rollover are skipped.
func (core *Core) readRune() (rune, error) {
	if core.out != nil {
		if err := core.out.Flush(); err != nil {
			core.halt(err)
		}
	}

	r, _, err := core.Input.ReadRune()
	for r == 0 {
		if err != nil {
			return 0, err
		}
		r, _, err = core.Input.ReadRune()
	}
	return r, nil
}

func (core *Core) writeByte(b byte) {
	_, err := core.out.Write([]byte{b})
	core.haltif(err)
}

func (core *Core) print(s string) {
	_, err := io.WriteString(core.out, s)
	core.haltif(err)
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
