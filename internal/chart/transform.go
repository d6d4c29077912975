package chart

import (
	"errors"
	"fmt"

	"github.com/patrickprogramme/chordsheet/internal/theory"
)

// ErrNoKey : l'opération exige une tonalité et le chant n'en déclare pas.
var ErrNoKey = errors.New("le chant ne déclare pas de tonalité (directive key)")

// Op est une opération de réécriture des accords d'un chant.
type Op interface {
	op()
}

// Transpose décale tous les accords d'un nombre signé de demi-tons.
type Transpose struct {
	Semitones int
}

// TransposeToKey transpose vers une tonalité cible nommée. Exige que le
// chant déclare sa tonalité de départ.
type TransposeToKey struct {
	Target theory.Key
}

// ToNumbers convertit les accords en notation Nashville. Key peut être nil :
// la tonalité vient alors de la directive key du chant.
type ToNumbers struct {
	Key *theory.Key
}

// ToLetters résout une grille Nashville en accords absolus. Même convention
// pour Key que ToNumbers.
type ToLetters struct {
	Key *theory.Key
}

func (Transpose) op()      {}
func (TransposeToKey) op() {}
func (ToNumbers) op()      {}
func (ToLetters) op()      {}

// Transform produit un NOUVEAU chant dont chaque accord de chaque ligne de
// contenu est passé par la fonction correspondante du modèle d'accords.
// Le chant d'origine n'est jamais modifié. Directives et commentaires
// traversent inchangés, à une exception près : sous transposition, la
// directive key est elle-même transposée pour rester cohérente avec la
// nouvelle orthographe des accords.
//
// La seule erreur possible sur un document déjà valide est ErrInvalidDegree ;
// elle interrompt la transformation entière, jamais de chant à moitié
// transposé.
func Transform(song *Song, op Op) (*Song, error) {
	switch v := op.(type) {
	case Transpose:
		return transpose(song, normalize(v.Semitones))
	case TransposeToKey:
		from, ok := song.Key()
		if !ok {
			return nil, fmt.Errorf("transposition vers %s : %w", v.Target, ErrNoKey)
		}
		n := normalize(v.Target.Tonic.PitchClass() - from.Tonic.PitchClass())
		return transposeTo(song, n, v.Target)
	case ToNumbers:
		key, err := resolveKey(song, v.Key)
		if err != nil {
			return nil, err
		}
		return mapSymbols(song, func(s theory.Symbol) (theory.Symbol, error) {
			return s.ToNashville(key)
		})
	case ToLetters:
		key, err := resolveKey(song, v.Key)
		if err != nil {
			return nil, err
		}
		return mapSymbols(song, func(s theory.Symbol) (theory.Symbol, error) {
			return s.FromNashville(key)
		})
	}
	return nil, fmt.Errorf("opération inconnue : %T", op)
}

// normalize ramène un décalage signé dans 0-11.
func normalize(semitones int) int {
	n := semitones % 12
	if n < 0 {
		n += 12
	}
	return n
}

func resolveKey(song *Song, explicit *theory.Key) (theory.Key, error) {
	if explicit != nil {
		return *explicit, nil
	}
	key, ok := song.Key()
	if !ok {
		return theory.Key{}, ErrNoKey
	}
	return key, nil
}

func transpose(song *Song, n int) (*Song, error) {
	// la tonalité cible pilote l'orthographe ; sans directive key on
	// retombe sur do majeur (préférence dièses)
	target := theory.Key{}
	if from, ok := song.Key(); ok {
		target = from.Transposed(n)
	}
	return transposeTo(song, n, target)
}

func transposeTo(song *Song, n int, target theory.Key) (*Song, error) {
	out, err := mapSymbols(song, func(s theory.Symbol) (theory.Symbol, error) {
		return s.Transposed(n, target), nil
	})
	if err != nil {
		return nil, err
	}
	if _, ok := out.Key(); ok {
		out.SetKey(target)
	}
	return out, nil
}

func mapSymbols(song *Song, f func(theory.Symbol) (theory.Symbol, error)) (*Song, error) {
	out := song.clone()
	for i, l := range out.Lines {
		c, ok := l.(ContentLine)
		if !ok {
			continue
		}
		for j, a := range c.Chords {
			sym, err := f(a.Symbol)
			if err != nil {
				return nil, fmt.Errorf("ligne %d : %w", i+1, err)
			}
			c.Chords[j] = Anchor{Offset: a.Offset, Symbol: sym}
		}
		out.Lines[i] = c
	}
	return out, nil
}
