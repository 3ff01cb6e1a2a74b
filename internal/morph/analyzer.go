package morph

import (
	"context"
	"errors"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// ErrUnintelligible : l'analyseur n'a trouvé aucune analyse pour le mot.
var ErrUnintelligible = errors.New("unintelligible word")

// ErrMalformedOutput : la sortie de l'analyseur ne suit pas le format attendu.
var ErrMalformedOutput = errors.New("malformed analyzer output")

// Analyzer est l'abstraction utilisée par l'application. Elle facilite le test
// en autorisant une implémentation factice dans les tests.
type Analyzer interface {
	// Analyze retourne les couples (radical, partie du discours) du mot,
	// ou ErrUnintelligible.
	Analyze(ctx context.Context, word string) ([]model.Analysis, error)
}

// AnalyzerFunc adapte une fonction en Analyzer.
type AnalyzerFunc func(ctx context.Context, word string) ([]model.Analysis, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, word string) ([]model.Analysis, error) {
	return f(ctx, word)
}
