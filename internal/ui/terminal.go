package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

type terminalUI struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewTerminal écrit sur stdout / stderr. quiet supprime la progression.
func NewTerminal(quiet bool) Interface {
	return NewWriters(os.Stdout, os.Stderr, quiet)
}

// NewWriters construit une UI sur des writers quelconques (tests, fichiers).
func NewWriters(out, errOut io.Writer, quiet bool) Interface {
	return &terminalUI{out: out, errOut: errOut, quiet: quiet}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.errOut, s)
}

func (t *terminalUI) Progress(ctx context.Context, done, total int, path string) {
	if t.quiet {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[%*d/%d] %s\n", digits(total), done, total, path)
}

// digits : largeur d'affichage de n, pour aligner le compteur.
func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
