package theory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDegree est renvoyée quand un degré de gamme sort de l'intervalle 1-7.
var ErrInvalidDegree = errors.New("degré de gamme hors de l'intervalle 1-7")

// Key représente une tonalité : tonique + mode. Elle pilote deux choses :
// la préférence d'orthographe (dièses ou bémols) et la numérotation des
// degrés pour la notation Nashville.
type Key struct {
	Tonic Note
	Minor bool
}

// intervalles (en demi-tons) des gammes majeure et mineure naturelle
var (
	majorScale = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorScale = [7]int{0, 2, 3, 5, 7, 8, 10}
)

func (k Key) scale() [7]int {
	if k.Minor {
		return minorScale
	}
	return majorScale
}

func (k Key) String() string {
	if k.Minor {
		return k.Tonic.String() + "m"
	}
	return k.Tonic.String()
}

// ParseKey analyse un nom de tonalité ("G", "Bb", "F#m", "Em"...).
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	n, rest, ok := parseNote(s)
	if !ok {
		return Key{}, fmt.Errorf("tonalité invalide : %q", s)
	}
	switch rest {
	case "":
		return Key{Tonic: n}, nil
	case "m", "min":
		return Key{Tonic: n, Minor: true}, nil
	}
	return Key{}, fmt.Errorf("tonalité invalide : %q", s)
}

// PrefersFlats indique si la tonalité s'écrit avec des bémols.
// Règle du cycle des quintes : F, Bb, Eb, Ab, Db et Gb (et leurs relatives
// mineures) préfèrent les bémols, les 7 autres les dièses. Aux frontières
// enharmoniques (F#/Gb, C#/Db) c'est l'altération de la tonique elle-même
// qui tranche.
func (k Key) PrefersFlats() bool {
	if k.Tonic.Alter > 0 {
		return false
	}
	if k.Tonic.Alter < 0 {
		return true
	}
	// tonique naturelle : on regarde la majeure relative
	rel := k.Tonic.PitchClass()
	if k.Minor {
		rel = (rel + 3) % 12
	}
	return flatPreferredPC(rel)
}

// flatPreferredPC décide, pour la classe de hauteur d'une majeure relative,
// si la tonalité s'écrit en bémols. Les classes ambiguës (C#/Db, F#/Gb)
// suivent la convention Db et F#.
func flatPreferredPC(pc int) bool {
	switch pc {
	case 1, 3, 5, 8, 10: // Db, Eb, F, Ab, Bb
		return true
	}
	return false
}

// Transposed décale la tonique de n demi-tons, réorthographiée
// selon la préférence de la tonalité d'arrivée.
func (k Key) Transposed(n int) Key {
	pc := k.Tonic.PitchClass() + n
	rel := pc
	if k.Minor {
		rel += 3
	}
	rel %= 12
	if rel < 0 {
		rel += 12
	}
	return Key{Tonic: SpellPitchClass(pc, flatPreferredPC(rel)), Minor: k.Minor}
}

// Degree représente un degré Nashville : un numéro de 1 à 7, avec une
// altération éventuelle quand la note ne tombe pas sur un degré de la gamme.
type Degree struct {
	Value int
	Alter int
}

// NewDegree construit un degré en validant l'intervalle 1-7.
func NewDegree(value, alter int) (Degree, error) {
	if value < 1 || value > 7 {
		return Degree{}, fmt.Errorf("%w : %d", ErrInvalidDegree, value)
	}
	return Degree{Value: value, Alter: alter}, nil
}

func (d Degree) String() string {
	var b strings.Builder
	switch {
	case d.Alter < 0:
		b.WriteString(strings.Repeat("b", -d.Alter))
	case d.Alter > 0:
		b.WriteString(strings.Repeat("#", d.Alter))
	}
	fmt.Fprintf(&b, "%d", d.Value)
	return b.String()
}

// parseDegree lit un degré en tête de s : altération éventuelle PUIS chiffre
// (la convention Nashville écrit "b3", pas "3b").
func parseDegree(s string) (Degree, string, bool) {
	alter := 0
	rest := s
	switch {
	case strings.HasPrefix(rest, "bb"):
		alter = -2
		rest = rest[2:]
	case strings.HasPrefix(rest, "b"):
		alter = -1
		rest = rest[1:]
	case strings.HasPrefix(rest, "##"):
		alter = 2
		rest = rest[2:]
	case strings.HasPrefix(rest, "#"):
		alter = 1
		rest = rest[1:]
	}
	if rest == "" || rest[0] < '1' || rest[0] > '7' {
		return Degree{}, s, false
	}
	return Degree{Value: int(rest[0] - '0'), Alter: alter}, rest[1:], true
}

// DegreeOf calcule le degré de la note dans la tonalité. Le numéro vient de
// la distance entre les lettres (donc toujours 1-7), l'altération du nombre
// de demi-tons qui séparent la note du degré naturel de la gamme.
// Exemple : Eb en sol majeur donne b6.
func (k Key) DegreeOf(n Note) Degree {
	steps := (int(n.Letter) - int(k.Tonic.Letter)) % 7
	if steps < 0 {
		steps += 7
	}
	natural := (k.Tonic.PitchClass() + k.scale()[steps]) % 12
	alter := (n.PitchClass() - natural) % 12
	if alter < 0 {
		alter += 12
	}
	if alter > 6 {
		alter -= 12
	}
	return Degree{Value: steps + 1, Alter: alter}
}

// NoteForDegree résout un degré en note absolue dans la tonalité, orthographiée
// selon la préférence dièse/bémol de la tonalité.
func (k Key) NoteForDegree(d Degree) (Note, error) {
	if d.Value < 1 || d.Value > 7 {
		return Note{}, fmt.Errorf("%w : %d", ErrInvalidDegree, d.Value)
	}
	pc := k.Tonic.PitchClass() + k.scale()[d.Value-1] + d.Alter
	return SpellPitchClass(pc, k.PrefersFlats()), nil
}
