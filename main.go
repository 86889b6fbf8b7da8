package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jcorbin/gowren/internal/config"
	"github.com/jcorbin/gowren/internal/logio"
)

func main() {
	var (
		configPath  string
		capacity    uint
		bigEndian   bool
		noTailCalls bool
		trace       bool
		dump        bool
		timeout     time.Duration
		expr        string
	)
	flag.StringVar(&configPath, "config", "", "config file path (default per-user)")
	flag.UintVar(&capacity, "capacity", 0, "store capacity in bytes (max 65536)")
	flag.BoolVar(&bigEndian, "big-endian", false, "encode multi-byte fields big endian")
	flag.BoolVar(&noTailCalls, "no-tail-calls", false, "disable the runtime CALL to TCALL rewrite")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a store dump after execution")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.StringVar(&expr, "e", "", "phrase to run before reading stdin")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	if capacity == 0 {
		capacity = cfg.Store.Capacity
	}

	opts := []Option{
		WithCapacity(capacity),
		WithOutput(os.Stdout),
	}
	if bigEndian || cfg.Store.BigEndian {
		opts = append(opts, WithBigEndian())
	}
	if noTailCalls || !cfg.Store.TailCalls {
		opts = append(opts, WithoutTailCalls())
	}
	if trace || cfg.REPL.Trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if expr != "" {
		opts = append(opts, WithInput(NamedReader("<-e>", strings.NewReader(expr+"\n"))))
	}
	opts = append(opts, WithInput(os.Stdin))
	if term.IsTerminal(int(os.Stdin.Fd())) {
		opts = append(opts, WithPrompt(cfg.REPL.Prompt))
	}

	w := New(opts...)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer storeDumper{w: w, out: lw}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(w.Run(ctx))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
