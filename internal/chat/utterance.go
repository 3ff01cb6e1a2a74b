package chat

import (
	"fmt"
	"regexp"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

var (
	utteranceRe = regexp.MustCompile(`^\*([^:]+):\s+(.*)`)
	commentRe   = regexp.MustCompile(`^%([^:]+):\s+(.*)`)
)

// ParseUtterance lit une ligne "*WHO: texte".
func ParseUtterance(line string) (*model.Utterance, error) {
	m := utteranceRe.FindStringSubmatch(line)
	if m == nil {
		return nil, ErrMalformedUtterance
	}
	words, events, err := ExtractWords(m[2])
	if err != nil {
		return nil, err
	}
	return &model.Utterance{
		Who:    m[1],
		Words:  words,
		Events: events,
	}, nil
}

// ParseComment lit une ligne "%com: valeur".
func ParseComment(line string) (model.UtteranceComment, error) {
	m := commentRe.FindStringSubmatch(line)
	if m == nil {
		return model.UtteranceComment{}, ErrMalformedComment
	}
	tier, ok := model.ParseCommentTier(m[1])
	if !ok {
		return model.UtteranceComment{}, fmt.Errorf("%w: %q", ErrUnknownTier, m[1])
	}
	return model.UtteranceComment{Code: m[1], Tier: tier, Value: m[2]}, nil
}
