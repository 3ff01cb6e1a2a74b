package morph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// untranscribedText : transcription CHAT d'un passage inintelligible.
const untranscribedText = "xxx"

// Summary compte les mots traités par Annotate.
type Summary struct {
	Words          int
	Analyzed       int
	Unintelligible int
	Untranscribed  int
}

// Add cumule deux résumés.
func (s *Summary) Add(o Summary) {
	s.Words += o.Words
	s.Analyzed += o.Analyzed
	s.Unintelligible += o.Unintelligible
	s.Untranscribed += o.Untranscribed
}

// Annotate renseigne la morphologie de chaque mot ordinaire du Chat (ou des mots
// de son remplacement [: ...]). Un mot inintelligible reçoit l'analyse sentinelle ;
// s'il s'écrit "xxx" il est de plus marqué non transcrit.
// Toute autre erreur de l'analyseur interrompt le document.
func Annotate(ctx context.Context, c *model.Chat, a Analyzer) (Summary, error) {
	var sum Summary
	for _, u := range c.Utterances {
		for _, w := range u.Words {
			for _, target := range w.Analyzable() {
				if err := annotateWord(ctx, target, a, &sum); err != nil {
					return sum, fmt.Errorf("%s: analyse de %q : %w", c.ID, target.Text, err)
				}
			}
		}
	}
	return sum, nil
}

func annotateWord(ctx context.Context, w *model.Word, a Analyzer, sum *Summary) error {
	if w.Text == "" {
		return nil
	}
	sum.Words++

	analyses, err := a.Analyze(ctx, w.Text)
	switch {
	case errors.Is(err, ErrUnintelligible):
		m := &model.Morphology{Analyses: []model.Analysis{model.SentinelAnalysis}}
		if strings.ToLower(w.Text) == untranscribedText {
			m.Untranscribed = true
			sum.Untranscribed++
		}
		w.Morphology = m
		sum.Unintelligible++
		return nil
	case err != nil:
		return err
	}

	w.Morphology = &model.Morphology{Analyses: analyses}
	sum.Analyzed++
	return nil
}
