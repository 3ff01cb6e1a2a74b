package stats

import (
	"bytes"
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Skipped : document écarté des statistiques (pas d'enfant, pas d'âge).
type Skipped struct {
	Path string
	Err  error
}

// Collect lit les documents en parallèle (au plus workers à la fois) et retourne
// les lignes dans l'ordre de paths. Les documents sans enfant sont écartés et
// signalés ; toute autre erreur interrompt la collecte.
func Collect(ctx context.Context, paths []string, workers int) ([]Row, []Skipped, error) {
	rows := make([]Row, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := ReadFile(p)
			if errors.Is(err, ErrNoChild) || errors.Is(err, ErrNoAge) {
				errs[i] = err
				return nil
			}
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		out     []Row
		skipped []Skipped
	)
	for i, p := range paths {
		if errs[i] != nil {
			skipped = append(skipped, Skipped{Path: p, Err: errs[i]})
			continue
		}
		out = append(out, rows[i])
	}
	return out, skipped, nil
}

// Table rend les lignes en TSV (en-tête compris).
func Table(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
