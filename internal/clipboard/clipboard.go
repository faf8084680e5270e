package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier, sans BOM ni \r\n.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return Normalize(text), nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Retourne une erreur si l'opération échoue.
func WriteAll(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}

// Unsupported indique si aucun utilitaire de presse-papier n'est disponible
// (xclip/xsel/wl-clipboard absents sous Linux par exemple).
func Unsupported() bool {
	return clipboard.Unsupported
}

// Normalize retire le BOM éventuel, uniformise les fins de ligne et trim.
func Normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
