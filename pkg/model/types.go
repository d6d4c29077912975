package model

import "fmt"

// constantes pour les notations d'entrée/sortie
type Format string

const (
	// FormatChordPro : notation inline, accords entre crochets dans les paroles
	FormatChordPro Format = "chordpro"
	// FormatAbove : notation deux-lignes, accords positionnés en colonne
	// au-dessus des paroles
	FormatAbove Format = "above"
)

// du format en chaine à la constante de type Format, return une erreur si
// format inconnu. Les deux notations ne sont pas auto-distinguables en
// général, d'où un choix explicite via flag.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "chordpro", "pro", "inline":
		return FormatChordPro, nil
	case "above", "chords-above":
		return FormatAbove, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

func (f Format) Extension() string {
	if f == FormatAbove {
		return ".txt"
	}
	return ".pro"
}

func (f Format) String() string {
	return string(f)
}
