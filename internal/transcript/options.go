package transcript

import "github.com/google/uuid"

const (
	// pause (secondes) entre deux fragments qui force une coupure de phrase
	DefaultGapThreshold = 2.0
	// sécurité : longueur max (runes) d'une phrase sans ponctuation
	DefaultMaxChars = 300
	// sécurité : nombre max de mots d'une phrase sans ponctuation
	DefaultMaxWords = 40

	// un paragraphe peut se fermer sur un "." à partir de 5 phrases
	DefaultParagraphMinSentences = 5
	// coupure forcée à 10 phrases
	DefaultParagraphMaxSentences = 10
)

// IDFunc fournit un identifiant unique à chaque appel.
type IDFunc func() string

// NewUUID est le générateur par défaut (UUID v4 aléatoire).
func NewUUID() string {
	return uuid.NewString()
}

// Options paramètre Segment. Les champs à zéro prennent la valeur par défaut.
type Options struct {
	GapThreshold float64
	MaxChars     int
	MaxWords     int
	NewID        IDFunc
	Observer     Observer
}

// DefaultOptions retourne les seuils standard, des UUID et un observer muet.
func DefaultOptions() Options {
	return Options{
		GapThreshold: DefaultGapThreshold,
		MaxChars:     DefaultMaxChars,
		MaxWords:     DefaultMaxWords,
		NewID:        NewUUID,
		Observer:     NopObserver{},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GapThreshold <= 0 {
		o.GapThreshold = d.GapThreshold
	}
	if o.MaxChars <= 0 {
		o.MaxChars = d.MaxChars
	}
	if o.MaxWords <= 0 {
		o.MaxWords = d.MaxWords
	}
	if o.NewID == nil {
		o.NewID = d.NewID
	}
	if o.Observer == nil {
		o.Observer = d.Observer
	}
	return o
}

// RegroupOptions paramètre Regroup (mode paragraph surtout).
type RegroupOptions struct {
	MinSentences int
	MaxSentences int
	NewID        IDFunc
	Observer     Observer
}

func DefaultRegroupOptions() RegroupOptions {
	return RegroupOptions{
		MinSentences: DefaultParagraphMinSentences,
		MaxSentences: DefaultParagraphMaxSentences,
		NewID:        NewUUID,
		Observer:     NopObserver{},
	}
}

func (o RegroupOptions) withDefaults() RegroupOptions {
	d := DefaultRegroupOptions()
	if o.MinSentences <= 0 {
		o.MinSentences = d.MinSentences
	}
	if o.MaxSentences <= 0 {
		o.MaxSentences = d.MaxSentences
	}
	if o.NewID == nil {
		o.NewID = d.NewID
	}
	if o.Observer == nil {
		o.Observer = d.Observer
	}
	return o
}
