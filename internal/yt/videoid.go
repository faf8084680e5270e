package yt

import (
	"errors"
	"regexp"
)

// ErrInvalidURL : aucun ID de vidéo n'a pu être extrait de l'URL.
// L'appelant doit afficher "URL invalide" et redemander une URL.
var ErrInvalidURL = errors.New("invalid YouTube URL")

const watchURLPrefix = "https://www.youtube.com/watch?v="

// videoIDPatterns sont essayés dans l'ordre ; l'ID est la suite de caractères
// jusqu'au prochain &, saut de ligne, ? ou #.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`embed/([^&\n?#]+)`),
}

// ExtractVideoID retourne l'ID de la vidéo contenu dans rawURL.
// Aucune validation de longueur ni de charset : un ID invalide fera échouer
// les collaborateurs en aval (yt-dlp, cache), pas cette fonction.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// IsYouTubeURL indique si un ID peut être extrait de s.
func IsYouTubeURL(s string) bool {
	_, ok := ExtractVideoID(s)
	return ok
}

// WatchURL reconstruit l'URL canonique d'une vidéo à partir de son ID.
func WatchURL(id string) string {
	return watchURLPrefix + id
}
