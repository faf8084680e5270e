package model

import "fmt"

// CaptionFragment est un morceau de sous-titre tel que livré par la source
// (YouTube json3, liste JSON...). Temps en secondes.
// Le texte doit déjà être décodé (entités HTML) quand il arrive au segmenteur.
type CaptionFragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End retourne Start + Duration.
func (f CaptionFragment) End() float64 {
	return f.Start + f.Duration
}

// Highlight : surlignage posé par l'utilisateur sur une phrase.
// Start/End sont des offsets en runes dans Sentence.Text, End exclusif.
type Highlight struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Note  string `json:"note,omitempty"`
}

// Sentence est l'unité d'apprentissage : un passage contigu du transcript,
// borné dans le temps (secondes).
type Sentence struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	StartTime   float64     `json:"startTime"`
	EndTime     float64     `json:"endTime"`
	Translation string      `json:"translation,omitempty"`
	Highlights  []Highlight `json:"highlights"`
}

// GroupedUnit a la même forme qu'une Sentence : texte concaténé des phrases
// regroupées, intervalle de temps couvrant la première et la dernière.
type GroupedUnit = Sentence

// Duration retourne EndTime - StartTime.
func (s Sentence) Duration() float64 {
	return s.EndTime - s.StartTime
}

func (s Sentence) String() string {
	return fmt.Sprintf("Sentence(%.2f-%.2f, %q)", s.StartTime, s.EndTime, s.Text)
}
