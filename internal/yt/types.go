package yt

import (
	"encoding/json"
)

type subtitleItem struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// ytdlpOutput : sous-ensemble de la sortie `yt-dlp -j` dont on a besoin.
//
// Subtitles et AutomaticCaptions sont indexées par code langue ("en", "en-orig"...),
// chaque langue listant ses pistes (une par format : json3, vtt, srv1...).
type ytdlpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Uploader          string                    `json:"uploader"`
	Duration          float64                   `json:"duration"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ExtractedRaw contient le JSON brut et les lignes d'avertissement de yt-dlp.
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// PrettyJSON retourne un json indenté
func (r *ExtractedRaw) PrettyJSON() ([]byte, error) {
	var obj any
	if err := json.Unmarshal(r.JSON, &obj); err != nil {
		return nil, err
	}
	return json.MarshalIndent(obj, "", "  ")
}
