package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/jcorbin/gowren/internal/flushio"
	"github.com/jcorbin/gowren/internal/panicerr"
)

// New builds an engine: applies options, carves the store, and installs
// the reserved globals. The engine is ready for Bind and Run.
func New(opts ...Option) *Wren {
	var w Wren
	defaultOptions.apply(&w)
	Options(opts...).apply(&w)
	w.init()
	return &w
}

// Run drives the read-eval-print loop over the queued inputs until EOF.
// Language-level errors are printed and the loop continues; I/O failures
// and VM traps end the loop and are returned.
func (w *Wren) Run(ctx context.Context) error {
	err := panicerr.Recover("Wren", func() error {
		return w.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		if err = he.error; err == nil || errors.Is(err, io.EOF) {
			return nil
		}
	}
	return err
}

// Bind registers a foreign function under name: an entry block (arity byte
// plus one registry word) is appended to the code region and the name is
// bound as a cfunction. Calls with arity above 7 yield 0.
func (w *Wren) Bind(name string, arity int, fn Func) error {
	if fn == nil {
		return errors.New("nil function")
	}
	if len(name) < 1 || len(name) > 15 {
		return fmt.Errorf("invalid name %q: length must be 1..15", name)
	}
	if arity < 0 || arity > 255 {
		return fmt.Errorf("invalid arity %v", arity)
	}
	if w.store.cp()+headerSize+len(name)+1+valueSize > w.store.dp() {
		return errors.New("store exhausted")
	}
	w.bind(name, aCFunction, w.store.cp())
	w.genUbyte(byte(arity))
	w.funcs = append(w.funcs, fn)
	w.genValue(Value(len(w.funcs)))
	return nil
}

func WithInput(r io.Reader) Option         { return withInput(r) }
func WithInputWriter(w io.WriterTo) Option { return withInputWriter(w) }
func WithOutput(w io.Writer) Option        { return withOutput(w) }
func WithTee(w io.Writer) Option           { return teeOption{w} }
func WithCapacity(n uint) Option           { return capacityOption(n) }
func WithBigEndian() Option                { return bigEndianOption{} }
func WithoutTailCalls() Option             { return noTailCallsOption{} }
func WithPrompt(prompt string) Option      { return promptOption(prompt) }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// Option configures an engine under construction.
type Option interface{ apply(w *Wren) }

var defaultOptions = Options(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
)

// Options combines any number of options into one, eliding nils.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(w *Wren) {}

type options []Option

func (opts options) apply(w *Wren) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(w)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(w *Wren) {
	w.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type capacityOption uint
type bigEndianOption struct{}
type noTailCallsOption struct{}
type promptOption string

func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }

func withInputWriter(wto io.WriterTo) pipeInput {
	r, w := io.Pipe()
	go func() {
		defer w.Close()
		wto.WriteTo(w)
	}()
	return pipeInput{r, nameOf(wto)}
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

func (i inputOption) apply(w *Wren) {
	w.Queue = append(w.Queue, i.Reader)
}

func (o outputOption) apply(w *Wren) {
	if w.out != nil {
		w.out.Flush()
	}
	w.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		w.closers = append(w.closers, cl)
	}
}

func (o teeOption) apply(w *Wren) {
	w.out = flushio.WriteFlushers(w.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		w.closers = append(w.closers, cl)
	}
}

func (n capacityOption) apply(w *Wren)  { w.capacity = uint(n) }
func (bigEndianOption) apply(w *Wren)   { w.store.bigEndian = true }
func (noTailCallsOption) apply(w *Wren) { w.noTailCalls = true }
func (p promptOption) apply(w *Wren)    { w.prompt = string(p) }

type pipeInput struct {
	*io.PipeReader
	name string
}

func (pi pipeInput) Name() string { return pi.name }

func (pi pipeInput) apply(w *Wren) {
	w.Queue = append(w.Queue, pi)
	w.closers = append(w.closers, pi)
}

// NamedReader attaches a name to a reader, for input location reporting.
func NamedReader(name string, r io.Reader) io.Reader {
	return readerName{r, name}
}

type readerName struct {
	io.Reader
	name string
}

func (nr readerName) Name() string { return nr.name }
