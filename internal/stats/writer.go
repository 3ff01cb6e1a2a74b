package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Header : colonnes du tableau TSV.
var Header = []string{
	"corpus",
	"child_name",
	"child_age",
	"child_words",
	"child_analyzed",
	"child_unknown",
	"mot_words",
	"mot_analyzed",
	"mot_unknown",
}

// Writer écrit les lignes séparées par des tabulations, en-tête en premier.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
}

func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &Writer{w: cw}
}

// Write ajoute une ligne (et l'en-tête au premier appel).
func (w *Writer) Write(r Row) error {
	if err := w.header(); err != nil {
		return err
	}
	return w.w.Write(r.Record())
}

// Flush écrit l'en-tête même sans ligne, puis vide le tampon.
func (w *Writer) Flush() error {
	if err := w.header(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

func (w *Writer) header() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.w.Write(Header)
}

// Record retourne la ligne dans l'ordre de Header.
func (r Row) Record() []string {
	itoa := strconv.Itoa
	return []string{
		r.Corpus,
		r.ChildName,
		itoa(r.ChildAge),
		itoa(r.Child.Words),
		itoa(r.Child.Analyzed),
		itoa(r.Child.Unknown),
		itoa(r.Mother.Words),
		itoa(r.Mother.Analyzed),
		itoa(r.Mother.Unknown),
	}
}
