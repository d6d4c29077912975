package theory

import (
	"fmt"
	"strings"
)

// Letter désigne une des 7 notes naturelles (C, D, E, F, G, A, B).
type Letter int

const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

// demi-tons des notes naturelles au dessus de C
var letterSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

const letterNames = "CDEFGAB"

// Semitone renvoie la hauteur de la lettre en demi-tons au dessus de C (0-11).
func (l Letter) Semitone() int {
	return letterSemitones[l]
}

// Step avance de n lettres dans l'alphabet musical (modulo 7, n peut être négatif).
func (l Letter) Step(n int) Letter {
	i := (int(l) + n) % 7
	if i < 0 {
		i += 7
	}
	return Letter(i)
}

func (l Letter) String() string {
	return string(letterNames[l])
}

// Note représente une note écrite : lettre + altération.
// L'arithmétique se fait toujours en demi-tons (PitchClass) ;
// la lettre et l'altération ne servent qu'à l'affichage.
type Note struct {
	Letter Letter
	Alter  int // -2 (bb) à +2 (##)
}

// PitchClass renvoie la classe de hauteur (0-11), indépendante de l'orthographe.
// Cb et B# sont ramenés dans l'octave.
func (n Note) PitchClass() int {
	pc := (n.Letter.Semitone() + n.Alter) % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

func (n Note) String() string {
	var b strings.Builder
	b.WriteByte(letterNames[n.Letter])
	switch {
	case n.Alter < 0:
		b.WriteString(strings.Repeat("b", -n.Alter))
	case n.Alter > 0:
		b.WriteString(strings.Repeat("#", n.Alter))
	}
	return b.String()
}

// orthographes canoniques des 12 classes de hauteur, version dièses et version bémols
var sharpSpellings = [12]Note{
	{C, 0}, {C, 1}, {D, 0}, {D, 1}, {E, 0}, {F, 0},
	{F, 1}, {G, 0}, {G, 1}, {A, 0}, {A, 1}, {B, 0},
}

var flatSpellings = [12]Note{
	{C, 0}, {D, -1}, {D, 0}, {E, -1}, {E, 0}, {F, 0},
	{G, -1}, {G, 0}, {A, -1}, {A, 0}, {B, -1}, {B, 0},
}

// SpellPitchClass donne l'orthographe canonique d'une classe de hauteur
// selon la préférence dièse/bémol. Jamais de double altération : c'est
// la normalisation demandée après transposition (F# + 1 donne G, pas Fx).
func SpellPitchClass(pc int, flats bool) Note {
	pc %= 12
	if pc < 0 {
		pc += 12
	}
	if flats {
		return flatSpellings[pc]
	}
	return sharpSpellings[pc]
}

// parseNote lit une note en tête de s (lettre + altérations éventuelles)
// et renvoie la note, le reste de la chaîne et un booléen de succès.
func parseNote(s string) (Note, string, bool) {
	if s == "" {
		return Note{}, s, false
	}
	idx := strings.IndexByte(letterNames, s[0])
	if idx < 0 {
		return Note{}, s, false
	}
	n := Note{Letter: Letter(idx)}
	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "bb"):
		n.Alter = -2
		rest = rest[2:]
	case strings.HasPrefix(rest, "b"):
		n.Alter = -1
		rest = rest[1:]
	case strings.HasPrefix(rest, "##"):
		n.Alter = 2
		rest = rest[2:]
	case strings.HasPrefix(rest, "#"):
		n.Alter = 1
		rest = rest[1:]
	}
	return n, rest, true
}

// ParseNote analyse une note complète ("C", "Bb", "F##"...).
// Contrairement aux symboles d'accord, une note isolée peut être invalide.
func ParseNote(s string) (Note, error) {
	n, rest, ok := parseNote(s)
	if !ok || rest != "" {
		return Note{}, fmt.Errorf("note invalide : %q", s)
	}
	return n, nil
}
