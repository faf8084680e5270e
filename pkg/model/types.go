package model

import "fmt"

// Format : formats de fichiers manipulés (entrée captions et sortie des unités).
type Format string

const (
	FormatTXT   Format = "txt"
	FormatJSON  Format = "json"
	FormatJSON3 Format = "json3"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch s {
	case "txt":
		return FormatTXT, nil
	case "json":
		return FormatJSON, nil
	case "json3":
		return FormatJSON3, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

// IsOutput indique si le format peut servir à écrire les unités d'étude.
func (f Format) IsOutput() bool {
	return f == FormatTXT || f == FormatJSON
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}

// GroupMode : granularité des unités d'étude produites par le regroupement.
//   - sentence  = une unité par phrase (identité)
//   - paragraph = 5 à 10 phrases par unité
//   - total     = tout le clip en une seule unité
type GroupMode string

const (
	GroupSentence  GroupMode = "sentence"
	GroupParagraph GroupMode = "paragraph"
	GroupTotal     GroupMode = "total"
)

// ParseGroupMode valide un mode venant de la config, d'un flag ou d'une requête HTTP.
// Chaîne vide -> GroupSentence.
func ParseGroupMode(s string) (GroupMode, error) {
	switch s {
	case "", "sentence":
		return GroupSentence, nil
	case "paragraph":
		return GroupParagraph, nil
	case "total":
		return GroupTotal, nil
	default:
		return "", fmt.Errorf("mode de regroupement inconnu: %q", s)
	}
}

func (m GroupMode) String() string {
	return string(m)
}
