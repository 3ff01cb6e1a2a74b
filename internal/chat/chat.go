package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// Attributs @ reconnus (après normalisation du nom).
const (
	attrColorWords   = "Color_words"
	attrComment      = "Comment"
	attrDate         = "Date"
	attrFont         = "Font"
	attrLanguages    = "Languages"
	attrParticipants = "Participants"
	attrPID          = "PID"
	attrSituation    = "Situation"
	attrTimeDuration = "Time_Duration"
	attrID           = "ID"
)

// chatDateLayout : 03-Mar-2015 (mois insensible à la casse).
const chatDateLayout = "2-Jan-2006"

// ParseFile lit le fichier en une fois puis le parse.
func ParseFile(path string) (*model.Chat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse construit et valide un Chat à partir du contenu d'un fichier .cha.
// path sert à dériver l'identifiant et à situer les erreurs.
func Parse(path, text string) (*model.Chat, error) {
	lines, err := Classify(text)
	if err != nil {
		return nil, withPath(err, path)
	}

	c := &model.Chat{
		ID:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}

	var current *model.Utterance
	for _, l := range lines {
		var lineErr error
		switch l.Kind {
		case LineAttribute:
			lineErr = setAttribute(c, l.Text)
		case LineUtterance:
			var u *model.Utterance
			u, lineErr = ParseUtterance(l.Text)
			if lineErr == nil {
				c.Utterances = append(c.Utterances, u)
				current = u
			}
		case LineComment:
			if current == nil {
				lineErr = ErrOrphanComment
				break
			}
			var com model.UtteranceComment
			com, lineErr = ParseComment(l.Text)
			if lineErr == nil {
				current.Comments = append(current.Comments, com)
			}
		}
		if lineErr != nil {
			return nil, &ParseError{Path: path, Line: l.No, Text: l.Text, Err: lineErr}
		}
	}

	if len(c.Participants) == 0 {
		return nil, &ParseError{Path: path, Err: ErrNoParticipants}
	}
	c.Corpus = c.Participants[0].Corpus

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate vérifie les champs obligatoires du Chat.
func Validate(c *model.Chat) error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"comment or situation", c.Comment != "" || c.Situation != ""},
		{"date", c.Date != ""},
		{"languages", len(c.Languages) > 0},
		{"participants", len(c.Participants) > 0},
		{"pid", c.PID != ""},
		{"id", c.ID != ""},
		{"corpus", c.Corpus != ""},
	}
	for _, chk := range checks {
		if !chk.ok {
			return &ValidationError{Path: c.Path, Field: chk.field}
		}
	}
	return nil
}

// normalizeAttrName : "@Time Duration:" -> "Time_Duration"
func normalizeAttrName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	name = strings.TrimSuffix(name, ":")
	return strings.ReplaceAll(name, " ", "_")
}

func setAttribute(c *model.Chat, line string) error {
	rawName, value, found := strings.Cut(line, ":")
	if !found {
		return fmt.Errorf("%w: no value", ErrUnknownAttribute)
	}
	name := normalizeAttrName(rawName)
	value = strings.TrimSpace(value)

	switch name {
	case attrLanguages:
		c.Languages = strings.Split(value, listSep)
	case attrParticipants:
		ps, err := ParseParticipants(value)
		if err != nil {
			return err
		}
		c.Participants = append(c.Participants, ps...)
	case attrID:
		matched, err := ApplyID(value, c.Participants)
		if err != nil {
			return err
		}
		if !matched {
			slog.Debug("@ID ignoré : participant inconnu", "path", c.Path, "value", value)
		}
	case attrDate:
		t, err := time.Parse(chatDateLayout, value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, value)
		}
		c.Date = t.Format("2006-01-02")
	case attrColorWords:
		c.ColorWords = value
	case attrComment:
		c.Comment = value
	case attrFont:
		c.Font = value
	case attrPID:
		c.PID = value
	case attrSituation:
		c.Situation = value
	case attrTimeDuration:
		c.TimeDuration = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return nil
}

// withPath complète un ParseError produit sans chemin.
func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = path
	}
	return err
}
