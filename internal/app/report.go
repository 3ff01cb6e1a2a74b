package app

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/cha2xml/internal/morph"
	"github.com/patrickprogramme/cha2xml/internal/stats"
)

// FileResult : sort d'une transcription.
type FileResult struct {
	Path   string
	Output string
	Words  int // mots ordinaires transcrits
	Morph  morph.Summary
	Err    error
}

// Report résume un lot.
type Report struct {
	RunID     string
	Converted []FileResult
	Failed    []FileResult
	Words     int
	Morph     morph.Summary

	StatsPath  string
	StatsRows  int
	StatsTable []byte
	Skipped    []stats.Skipped
}

// OK vaut true si aucun fichier n'a échoué.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Pretty retourne un résumé lisible du lot.
func (r *Report) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lot %s\n", r.RunID)
	fmt.Fprintf(&b, "  convertis : %d\n", len(r.Converted))
	fmt.Fprintf(&b, "  en échec  : %d\n", len(r.Failed))
	fmt.Fprintf(&b, "  transcrits: %d mots\n", r.Words)
	if r.Morph.Words > 0 {
		fmt.Fprintf(&b, "  mots      : %d (analysés %d, inconnus %d, non transcrits %d)\n",
			r.Morph.Words, r.Morph.Analyzed, r.Morph.Unintelligible, r.Morph.Untranscribed)
	}
	if r.StatsPath != "" {
		fmt.Fprintf(&b, "  stats     : %s (%d lignes, %d écartés)\n", r.StatsPath, r.StatsRows, len(r.Skipped))
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "  ✗ %v\n", f.Err)
	}
	return strings.TrimRight(b.String(), "\n")
}
