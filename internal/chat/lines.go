package chat

import (
	"fmt"
	"regexp"
	"strings"
)

// LineKind : type d'une ligne CHAT, déduit de son premier caractère.
type LineKind int

const (
	LineAttribute LineKind = iota // @Name: value
	LineUtterance                 // *WHO: text
	LineComment                   // %tier: value
)

func (k LineKind) String() string {
	switch k {
	case LineAttribute:
		return "attribute"
	case LineUtterance:
		return "utterance"
	case LineComment:
		return "comment"
	default:
		return fmt.Sprintf("LineKind(%d)", int(k))
	}
}

// Line est une ligne logique (continuations déjà repliées).
type Line struct {
	Kind LineKind
	Text string
	No   int // numéro de la première ligne physique
}

// ignoredRe : marqueurs structurels sans donnée.
var ignoredRe = regexp.MustCompile(`^@(Begin|End|UTF8)`)

// Classify replie les continuations ("\n\t" -> " ") puis classe chaque ligne non vide.
// Les marqueurs @Begin, @End et @UTF8 sont reconnus et écartés.
func Classify(text string) ([]Line, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	// marque d'ordre des octets éventuelle (fichiers enregistrés sous Windows)
	text = strings.TrimPrefix(text, "\ufeff")

	var (
		out  []Line
		no   = 1
		rest = text
	)
	for rest != "" {
		raw, tail, found := strings.Cut(rest, "\n")
		start := no
		no++
		// une tabulation en début de ligne suivante = continuation
		for found && strings.HasPrefix(tail, "\t") {
			var next string
			next, tail, found = strings.Cut(tail[1:], "\n")
			raw += " " + next
			no++
		}
		rest = tail
		if !found {
			rest = ""
		}

		if strings.TrimSpace(raw) == "" {
			continue
		}
		if ignoredRe.MatchString(raw) {
			continue
		}

		var kind LineKind
		switch raw[0] {
		case '@':
			kind = LineAttribute
		case '*':
			kind = LineUtterance
		case '%':
			kind = LineComment
		default:
			return nil, &ParseError{Line: start, Text: raw, Err: ErrUnrecognizedLine}
		}
		out = append(out, Line{Kind: kind, Text: raw, No: start})
	}
	return out, nil
}
