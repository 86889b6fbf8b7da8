// Package panicerr converts panics escaping a function into error values.
package panicerr

import (
	"fmt"
	"runtime/debug"
)

// Recover calls f, returning its error normally; any panic that escapes f
// is recovered into a non-nil error carrying the panic value and a
// stacktrace. The name labels the recovered error.
func Recover(name string, f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = panicError{name: name, e: e, stack: debug.Stack()}
		}
	}()
	return f()
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string {
	return fmt.Sprintf("%v paniced: %v", pe.name, pe.e)
}

// Format prints the captured stacktrace under the %+v verb.
func (pe panicError) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}
