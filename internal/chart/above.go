package chart

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/patrickprogramme/chordsheet/internal/theory"
)

// ParseAbove convertit la notation deux-lignes (accords au-dessus des
// paroles) vers le modèle. Chaque suite maximale de caractères non blancs
// d'une ligne d'accords devient un accord ancré à sa colonne de départ dans
// la ligne de paroles qui suit. Une ligne d'accords sans ligne de paroles
// (passage instrumental) produit une ContentLine aux paroles vides.
// La conversion ne peut pas échouer sur le contenu : au pire un token
// illisible devient un accord opaque à sa colonne. Seules les directives
// peuvent produire des erreurs de ligne.
func ParseAbove(text string) (*Song, []LineError) {
	song := &Song{}
	var errs []LineError
	lines := splitLines(text)
	for i := 0; i < len(lines); i++ {
		raw := lines[i]
		if l, rest, lerr, ok := parseStructural(raw, i+1); ok {
			if lerr != nil {
				errs = append(errs, *lerr)
				continue
			}
			song.Lines = append(song.Lines, l)
			// texte après l'accolade fermante : conservé comme paroles
			if rest != "" {
				song.Lines = append(song.Lines, ContentLine{Lyric: rest})
			}
			continue
		}
		if !isChordLine(raw) {
			song.Lines = append(song.Lines, ContentLine{Lyric: raw})
			continue
		}
		content := ContentLine{}
		for _, run := range nonBlankRuns(raw) {
			content.Chords = append(content.Chords, Anchor{
				Offset: run.column,
				Symbol: theory.ParseSymbol(run.text),
			})
		}
		// la ligne suivante, si elle est des paroles ordinaires, s'attache
		// à cette ligne d'accords ; sinon paroles vides (instrumental)
		if i+1 < len(lines) {
			next := lines[i+1]
			if _, _, _, structural := parseStructural(next, i+2); !structural && !isChordLine(next) {
				content.Lyric = next
				i++
			}
		}
		song.Lines = append(song.Lines, content)
	}
	return song, errs
}

// run : une suite de caractères non blancs et sa colonne de départ (en runes)
type nonBlankRun struct {
	column int
	text   string
}

func nonBlankRuns(s string) []nonBlankRun {
	var runs []nonBlankRun
	var cur strings.Builder
	start := -1
	col := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				runs = append(runs, nonBlankRun{column: start, text: cur.String()})
				cur.Reset()
				start = -1
			}
		} else {
			if start < 0 {
				start = col
			}
			cur.WriteRune(r)
		}
		col++
	}
	if start >= 0 {
		runs = append(runs, nonBlankRun{column: start, text: cur.String()})
	}
	return runs
}

// isChordLine : une ligne est une ligne d'accords quand elle n'est pas vide
// et que chacun de ses tokens est entièrement reconnu comme accord.
func isChordLine(s string) bool {
	runs := nonBlankRuns(s)
	if len(runs) == 0 {
		return false
	}
	for _, run := range runs {
		if !theory.IsChordToken(run.text) {
			return false
		}
	}
	return true
}

// placedChord : position d'affichage calculée pour un accord. La colonne
// peut différer de l'Offset logique quand un décalage anti-collision a été
// nécessaire ; le modèle n'est pas réancré pour autant.
type placedChord struct {
	column int
	text   string
}

// layoutChordRow calcule les colonnes d'affichage d'une ligne d'accords.
// Fold strictement gauche-droite : chaque accord vise sa colonne d'offset ;
// s'il entrerait en collision avec le précédent, il est poussé à droite du
// minimum nécessaire pour laisser un blanc de séparation. On ne revient
// jamais sur un accord déjà placé, la sortie est donc déterministe et
// stable par ordre.
func layoutChordRow(chords []Anchor) []placedChord {
	placed := make([]placedChord, 0, len(chords))
	min := 0
	for _, a := range chords {
		col := a.Offset
		if col < min {
			col = min
		}
		text := a.Symbol.String()
		placed = append(placed, placedChord{column: col, text: text})
		min = col + utf8.RuneCountInString(text) + 1
	}
	return placed
}

// SerializeAbove reconstruit la notation deux-lignes depuis le modèle.
// Tant qu'aucun décalage anti-collision n'est nécessaire, la mise en page
// d'origine est reproduite à l'identique.
func SerializeAbove(song *Song) string {
	var b strings.Builder
	for _, l := range song.Lines {
		switch v := l.(type) {
		case Directive:
			b.WriteByte('{')
			b.WriteString(v.Name)
			b.WriteByte(':')
			b.WriteString(v.Value)
			b.WriteByte('}')
			b.WriteByte('\n')
		case Comment:
			b.WriteString(string(v))
			b.WriteByte('\n')
		case ContentLine:
			if len(v.Chords) > 0 {
				b.WriteString(renderChordRow(layoutChordRow(v.Chords)))
				b.WriteByte('\n')
			}
			b.WriteString(v.Lyric)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderChordRow(placed []placedChord) string {
	var b strings.Builder
	col := 0
	for _, p := range placed {
		for col < p.column {
			b.WriteByte(' ')
			col++
		}
		b.WriteString(p.text)
		col += utf8.RuneCountInString(p.text)
	}
	return b.String()
}
