package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/patrickprogramme/chordsheet/internal/theory"
)

// ErrMalformedDirective : ligne {...} sans séparateur nom/valeur reconnaissable.
var ErrMalformedDirective = errors.New("directive malformée")

// LineError localise une erreur d'analyse : numéro de ligne (à partir de 1)
// et texte brut, pour que l'appelant puisse la signaler. L'analyse de la
// ligne fautive est abandonnée mais le reste du document est conservé.
type LineError struct {
	Line int
	Raw  string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("ligne %d: %v (%q)", e.Line, e.Err, e.Raw)
}

func (e LineError) Unwrap() error { return e.Err }

// splitLines découpe le texte en lignes en tolérant les fins CRLF.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// parseStructural reconnaît les lignes communes aux deux notations :
// directives et commentaires. ok=false si la ligne est du contenu.
// rest contient l'éventuel texte qui suit l'accolade fermante d'une
// directive : il appartient à l'appelant de le conserver comme contenu,
// rien ne doit disparaître silencieusement.
func parseStructural(raw string, lineNo int) (l Line, rest string, lerr *LineError, ok bool) {
	if strings.HasPrefix(raw, "#") {
		return Comment(raw), "", nil, true
	}
	if !strings.HasPrefix(raw, "{") {
		return nil, "", nil, false
	}
	end := strings.IndexByte(raw, '}')
	if end < 0 {
		return nil, "", &LineError{Line: lineNo, Raw: raw, Err: ErrMalformedDirective}, true
	}
	body := raw[1:end]
	name, value, found := strings.Cut(body, ":")
	if !found || strings.TrimSpace(name) == "" {
		return nil, "", &LineError{Line: lineNo, Raw: raw, Err: ErrMalformedDirective}, true
	}
	return Directive{Name: name, Value: value}, raw[end+1:], nil, true
}

// ParseChordPro convertit un texte en notation inline vers le modèle.
// Les erreurs de ligne sont collectées et renvoyées avec le document :
// elles ne sont jamais avalées, mais n'interrompent pas l'analyse.
func ParseChordPro(text string) (*Song, []LineError) {
	song := &Song{}
	var errs []LineError
	for i, raw := range splitLines(text) {
		if l, rest, lerr, ok := parseStructural(raw, i+1); ok {
			if lerr != nil {
				errs = append(errs, *lerr)
				continue
			}
			song.Lines = append(song.Lines, l)
			// texte après l'accolade fermante : conservé comme contenu
			if rest != "" {
				song.Lines = append(song.Lines, parseInlineContent(rest))
			}
			continue
		}
		song.Lines = append(song.Lines, parseInlineContent(raw))
	}
	return song, errs
}

// parseInlineContent analyse une ligne de contenu : paroles parsemées de
// marqueurs [accord]. L'offset d'un accord est le nombre de caractères de
// paroles (en runes) déjà émis, les crochets ne comptant pas.
func parseInlineContent(raw string) ContentLine {
	var (
		lyric  strings.Builder
		chords []Anchor
		offset int
	)
	runes := []rune(raw)
	for i := 0; i < len(runes); {
		if runes[i] == '[' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ']' {
					end = j
					break
				}
			}
			if end >= 0 {
				sym := theory.ParseSymbol(string(runes[i+1 : end]))
				chords = append(chords, Anchor{Offset: offset, Symbol: sym})
				i = end + 1
				continue
			}
			// crochet jamais refermé : traité comme des paroles ordinaires
		}
		lyric.WriteRune(runes[i])
		offset++
		i++
	}
	return ContentLine{Lyric: lyric.String(), Chords: chords}
}

// SerializeChordPro reconstruit le texte inline depuis le modèle.
// Les offsets sont définis uniquement en caractères de paroles : les
// marqueurs déjà insérés ne décalent pas les suivants.
func SerializeChordPro(song *Song) string {
	var b strings.Builder
	for _, l := range song.Lines {
		switch v := l.(type) {
		case Directive:
			b.WriteByte('{')
			b.WriteString(v.Name)
			b.WriteByte(':')
			b.WriteString(v.Value)
			b.WriteByte('}')
		case Comment:
			b.WriteString(string(v))
		case ContentLine:
			b.WriteString(serializeInlineContent(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func serializeInlineContent(c ContentLine) string {
	var b strings.Builder
	runes := []rune(c.Lyric)
	next := 0 // prochain accord à insérer
	for pos := 0; pos <= len(runes); pos++ {
		for next < len(c.Chords) && c.Chords[next].Offset <= pos {
			b.WriteByte('[')
			b.WriteString(c.Chords[next].Symbol.String())
			b.WriteByte(']')
			next++
		}
		if pos < len(runes) {
			b.WriteRune(runes[pos])
		}
	}
	// accords ancrés au-delà de la fin des paroles
	for ; next < len(c.Chords); next++ {
		b.WriteByte('[')
		b.WriteString(c.Chords[next].Symbol.String())
		b.WriteByte(']')
	}
	return b.String()
}
