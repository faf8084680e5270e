package fsutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// longueur max d'un nom de dossier, en runes (titres YouTube : 100 max en général)
const maxDirNameRunes = 120

// forbiddenRunes : interdits sous Windows ou de contrôle (DEL compris)
var forbiddenRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F\x7F]`)

// noms réservés sous Windows, quelle que soit l'extension
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// DirName transforme un titre de vidéo en nom de dossier.
// Les caractères interdits deviennent des espaces, les blancs sont réduits,
// la casse est conservée. Si rien d'utilisable ne reste, on prend fallback
// (l'ID de vidéo), lui-même nettoyé ; "" si les deux sont vides.
func DirName(title, fallback string) string {
	if name := cleanTitle(title); name != "" {
		return name
	}
	if fallback == "" {
		return ""
	}
	return FileBase(fallback)
}

func cleanTitle(title string) string {
	clean := forbiddenRunes.ReplaceAllString(title, " ")
	clean = strings.Join(strings.Fields(clean), " ")
	// Windows refuse les noms finissant par "." ou " "
	clean = strings.Trim(clean, ". ")

	if utf8.RuneCountInString(clean) > maxDirNameRunes {
		clean = string([]rune(clean)[:maxDirNameRunes])
		clean = strings.TrimRight(clean, ". ")
	}
	if clean == "" {
		return ""
	}

	stem, _, _ := strings.Cut(clean, ".")
	if reservedNames[strings.ToUpper(stem)] {
		clean = "_" + clean
	}
	return clean
}

// FileBase : nom de fichier tiré d'un ID (sensible à la casse) ; seuls les
// caractères interdits sont remplacés par "_".
func FileBase(id string) string {
	base := forbiddenRunes.ReplaceAllString(id, "_")
	if base == "" {
		return "untitled"
	}
	return base
}
