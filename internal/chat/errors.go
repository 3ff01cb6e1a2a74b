package chat

import (
	"errors"
	"fmt"
)

// Erreurs structurelles : elles interrompent le traitement du fichier courant.
var (
	ErrUnrecognizedLine      = errors.New("unrecognized line kind")
	ErrMalformedParticipants = errors.New("malformed @Participants segment")
	ErrMalformedID           = errors.New("malformed @ID record")
	ErrInvalidParticipant    = errors.New("invalid participant")
	ErrOrphanEvent           = errors.New("inline event without preceding word")
	ErrUnknownEvent          = errors.New("unknown inline event")
	ErrUnknownPunctuation    = errors.New("unknown punctuation")
	ErrMalformedUtterance    = errors.New("malformed utterance line")
	ErrMalformedComment      = errors.New("malformed comment line")
	ErrUnknownTier           = errors.New("unknown comment tier")
	ErrOrphanComment         = errors.New("comment line before any utterance")
	ErrUnknownAttribute      = errors.New("unknown chat attribute")
	ErrInvalidDate           = errors.New("invalid date")
	ErrNoParticipants        = errors.New("no participants")
)

// ErrValidation : un champ obligatoire du Chat est vide.
var ErrValidation = errors.New("chat validation failed")

// ParseError situe une erreur structurelle dans le fichier source.
type ParseError struct {
	Path string
	Line int // 1-based, 0 si inconnu
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError nomme le champ obligatoire manquant.
type ValidationError struct {
	Path  string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Path, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
