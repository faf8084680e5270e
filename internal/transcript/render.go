package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// Plain retourne les unités au format lisible : une unité par ligne,
// précédée de son horodatage [mm:ss].
func Plain(units []model.GroupedUnit) string {
	if len(units) == 0 {
		return ""
	}
	var b strings.Builder
	for _, u := range units {
		b.WriteString("[")
		b.WriteString(Timestamp(u.StartTime))
		b.WriteString("] ")
		b.WriteString(u.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Collapsed retourne toutes les unités en un seul paragraphe (tout sur une ligne).
// Utile pour le presse-papier.
func Collapsed(units []model.GroupedUnit) string {
	if len(units) == 0 {
		return ""
	}
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, strings.TrimSpace(u.Text))
	}
	return strings.TrimSpace(strings.Join(parts, " ")) + "\n"
}

// Render sérialise les unités dans le format de sortie demandé.
func Render(units []model.GroupedUnit, format model.Format) ([]byte, error) {
	switch format {
	case model.FormatTXT:
		return []byte(Plain(units)), nil
	case model.FormatJSON:
		if units == nil {
			units = []model.GroupedUnit{}
		}
		b, err := json.MarshalIndent(units, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("format de sortie non supporté: %q", format)
	}
}

// Timestamp formate des secondes en "mm:ss" (ou "h:mm:ss" au-delà d'une heure).
// Exemple : 65.4 -> "01:05", 3661 -> "1:01:01".
func Timestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int64(sec)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
