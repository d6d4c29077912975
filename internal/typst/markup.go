package typst

import (
	"strings"

	"github.com/patrickprogramme/chordsheet/internal/chart"
)

// ChartData regroupe les valeurs injectées dans le template typst.
type ChartData struct {
	Title   string
	Comment string
	Body    string // lignes de contenu déjà rendues en markup typst
}

// escapeTypstString échappe une valeur destinée à une chaîne typst #"...".
func escapeTypstString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// chunk : un fragment de paroles avec l'accord (éventuel) qui le précède.
type chunk struct {
	lyrics string
	symbol string // vide = pas d'accord sur ce fragment
}

// splitChunks découpe les paroles d'une ligne aux positions des accords.
// Le fragment avant le premier accord n'a pas de symbole ; chaque fragment
// suivant porte l'accord ancré à son début. Les offsets sont en runes.
func splitChunks(cl chart.ContentLine) []chunk {
	runes := []rune(cl.Lyric)
	var out []chunk

	prev := 0
	if len(cl.Chords) == 0 || cl.Chords[0].Offset > 0 {
		end := len(runes)
		if len(cl.Chords) > 0 {
			end = minInt(cl.Chords[0].Offset, len(runes))
		}
		out = append(out, chunk{lyrics: string(runes[:end])})
		prev = end
	}

	for i, a := range cl.Chords {
		start := minInt(a.Offset, len(runes))
		if start < prev {
			start = prev
		}
		end := len(runes)
		if i+1 < len(cl.Chords) {
			end = minInt(cl.Chords[i+1].Offset, len(runes))
		}
		if end < start {
			end = start
		}
		out = append(out, chunk{lyrics: string(runes[start:end]), symbol: a.Symbol.String()})
		prev = end
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RenderBody produit le markup typst du corps du chant : une suite d'appels
// #chord pour chaque fragment porteur d'accord, les paroles nues sinon.
// Chaque ligne du chant se termine par un saut de ligne typst (`\`).
func RenderBody(song *chart.Song) string {
	var b strings.Builder

	for _, line := range song.Lines {
		cl, ok := line.(chart.ContentLine)
		if !ok {
			continue
		}
		for _, ch := range splitChunks(cl) {
			if ch.symbol != "" {
				// décalage vertical uniquement si le fragment porte des paroles
				offset := ""
				if strings.TrimSpace(ch.lyrics) != "" {
					offset = "1"
				}
				b.WriteString(`#chord[#"` + escapeTypstString(ch.lyrics) + `"][#"` + escapeTypstString(ch.symbol) + ` "][` + offset + `]`)
			} else {
				b.WriteString(ch.lyrics)
			}
		}
		b.WriteString("\\\n")
	}

	return b.String()
}

// BuildChartData assemble les données du template depuis le modèle.
func BuildChartData(song *chart.Song) ChartData {
	return ChartData{
		Title:   song.Title(),
		Comment: song.Comment(),
		Body:    RenderBody(song),
	}
}
