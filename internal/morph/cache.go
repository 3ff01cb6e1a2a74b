package morph

import (
	"context"
	"errors"
	"sync"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// Entry est le résultat mémorisé pour un mot : ses analyses, ou inintelligible.
type Entry struct {
	Analyses       []model.Analysis
	Unintelligible bool
}

// Store est un cache persistant optionnel (voir SQLiteCache).
type Store interface {
	Lookup(ctx context.Context, word string) (Entry, bool, error)
	Save(ctx context.Context, word string, e Entry) error
}

// Cached décore un Analyzer avec un cache mémoire par session, et
// éventuellement un Store persistant. Sûr pour un usage concurrent.
type Cached struct {
	next  Analyzer
	store Store

	mu      sync.Mutex
	entries map[string]Entry
	calls   int // appels effectifs à next
}

// NewCached construit le décorateur. store peut être nil.
func NewCached(next Analyzer, store Store) *Cached {
	return &Cached{
		next:    next,
		store:   store,
		entries: make(map[string]Entry),
	}
}

// Analyze consulte le cache mémoire, puis le store, puis l'analyseur.
// Les mots inintelligibles sont mémorisés comme les autres.
func (c *Cached) Analyze(ctx context.Context, word string) ([]model.Analysis, error) {
	c.mu.Lock()
	e, ok := c.entries[word]
	c.mu.Unlock()
	if ok {
		return e.result()
	}

	if c.store != nil {
		e, found, err := c.store.Lookup(ctx, word)
		if err != nil {
			return nil, err
		}
		if found {
			c.remember(word, e)
			return e.result()
		}
	}

	analyses, err := c.next.Analyze(ctx, word)
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	switch {
	case errors.Is(err, ErrUnintelligible):
		e = Entry{Unintelligible: true}
	case err != nil:
		// erreurs de l'analyseur (crash, annulation) : rien n'est mémorisé
		return nil, err
	default:
		e = Entry{Analyses: analyses}
	}

	c.remember(word, e)
	if c.store != nil {
		if err := c.store.Save(ctx, word, e); err != nil {
			return nil, err
		}
	}
	return e.result()
}

// Calls retourne le nombre d'appels transmis à l'analyseur sous-jacent.
func (c *Cached) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Len retourne le nombre de mots en cache mémoire.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cached) remember(word string, e Entry) {
	c.mu.Lock()
	c.entries[word] = e
	c.mu.Unlock()
}

func (e Entry) result() ([]model.Analysis, error) {
	if e.Unintelligible {
		return nil, ErrUnintelligible
	}
	return e.Analyses, nil
}
