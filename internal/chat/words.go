package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// bracketRe isole les codes entre crochets tout en les conservant comme tokens.
var bracketRe = regexp.MustCompile(`\[[^\]]+\]`)

// ExtractWords découpe le texte d'un énoncé en mots et événements, dans l'ordre source.
// Les événements de portée mot vont sur le dernier mot émis, ceux de portée énoncé
// sont retournés à part.
func ExtractWords(text string) ([]*model.Word, []model.Event, error) {
	var (
		words     []*model.Word
		uttEvents []model.Event
	)

	addPlain := func(s string) error {
		for _, tok := range strings.Fields(s) {
			kind, ok := model.ClassifyWord(tok)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownPunctuation, tok)
			}
			words = append(words, &model.Word{Text: tok, Kind: kind})
		}
		return nil
	}

	pos := 0
	for _, loc := range bracketRe.FindAllStringIndex(text, -1) {
		if err := addPlain(text[pos:loc[0]]); err != nil {
			return nil, nil, err
		}
		pos = loc[1]

		raw := text[loc[0]:loc[1]]
		ev, ok := model.ClassifyEvent(raw)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownEvent, raw)
		}
		if !ev.WordScoped() {
			uttEvents = append(uttEvents, ev)
			continue
		}
		if len(words) == 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrOrphanEvent, raw)
		}
		words[len(words)-1].Attach(ev)
	}
	if err := addPlain(text[pos:]); err != nil {
		return nil, nil, err
	}
	return words, uttEvents, nil
}
