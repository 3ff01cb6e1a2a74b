package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty : rien à copier.
var ErrEmpty = errors.New("le texte à copier ne peut pas être vide")

// accès système, remplacé dans les tests
var writeAll = clipboard.WriteAll

// Copy place text (fins de ligne normalisées) dans le presse-papier.
func Copy(text string) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	return writeAll(text)
}
