// Package chart contient le modèle de document d'une grille de chant
// (suite ordonnée de lignes : directives, commentaires, contenu), les
// convertisseurs texte brut <-> modèle pour les deux notations (ChordPro
// inline et accords au-dessus des paroles), et le pilote de transformation
// (transposition, conversion Nashville).
//
// Un Song est construit une fois par un parseur, transformé éventuellement
// (chaque transformation produit un NOUVEAU Song, l'original n'est jamais
// modifié), puis consommé par un sérialiseur. Aucune mutation partagée :
// des appelants concurrents peuvent parser et transformer des Song
// indépendants sans coordination.
package chart

import (
	"strings"

	"github.com/patrickprogramme/chordsheet/internal/theory"
	"github.com/patrickprogramme/chordsheet/pkg/model"
)

// Song est une grille analysée : une suite ordonnée de lignes.
type Song struct {
	Lines []Line
}

// Line est une ligne du document : directive, commentaire ou contenu.
type Line interface {
	line()
}

// Directive est une ligne de contrôle {nom: valeur}. Opaque pour la
// transposition, sauf la directive key qui fournit la tonalité du chant.
type Directive struct {
	Name  string
	Value string
}

// Comment est une ligne de commentaire (préfixe #), recopiée telle quelle.
type Comment string

// ContentLine est une ligne de paroles avec des accords ancrés à des
// positions de caractères. Invariants : Chords est trié par Offset croissant ;
// un Offset peut dépasser la fin des paroles (accords de fin de ligne ou
// passage instrumental) ; deux accords peuvent partager un Offset.
type ContentLine struct {
	Lyric  string
	Chords []Anchor
}

// Anchor attache un symbole d'accord à un index de caractère (en runes)
// dans les paroles de la ligne.
type Anchor struct {
	Offset int
	Symbol theory.Symbol
}

func (Directive) line()   {}
func (Comment) line()     {}
func (ContentLine) line() {}

// directive réservée : la tonalité du chant
const keyDirective = "key"

// Title renvoie la valeur de la première directive title, ou "".
func (s *Song) Title() string {
	return strings.TrimSpace(s.directive("title"))
}

// Comment renvoie la valeur de la première directive comment, ou "".
func (s *Song) Comment() string {
	return strings.TrimSpace(s.directive("comment"))
}

func (s *Song) directive(name string) string {
	for _, l := range s.Lines {
		if d, ok := l.(Directive); ok && d.Name == name {
			return d.Value
		}
	}
	return ""
}

// Key renvoie la tonalité déclarée par la directive key, si elle existe
// et se laisse analyser.
func (s *Song) Key() (theory.Key, bool) {
	raw := s.directive(keyDirective)
	if raw == "" {
		return theory.Key{}, false
	}
	k, err := theory.ParseKey(raw)
	if err != nil {
		return theory.Key{}, false
	}
	return k, true
}

// SetKey remplace la valeur de la directive key, ou en insère une après le
// bloc de directives d'en-tête si le chant n'en avait pas.
func (s *Song) SetKey(key theory.Key) {
	for i, l := range s.Lines {
		if d, ok := l.(Directive); ok && d.Name == keyDirective {
			d.Value = " " + key.String()
			s.Lines[i] = d
			return
		}
	}
	at := len(s.Lines)
	for i, l := range s.Lines {
		if _, ok := l.(Directive); !ok {
			at = i
			break
		}
	}
	inserted := make([]Line, 0, len(s.Lines)+1)
	inserted = append(inserted, s.Lines[:at]...)
	inserted = append(inserted, Directive{Name: keyDirective, Value: " " + key.String()})
	inserted = append(inserted, s.Lines[at:]...)
	s.Lines = inserted
}

// Meta extrait les métadonnées utiles au rendu aval (titre, tonalité...).
func (s *Song) Meta() model.Meta {
	m := model.Meta{
		Title:   s.Title(),
		Comment: s.Comment(),
	}
	if k, ok := s.Key(); ok {
		m.Key = k.String()
	}
	for _, l := range s.Lines {
		if d, ok := l.(Directive); ok {
			m.Directives = append(m.Directives, model.Directive{
				Name:  d.Name,
				Value: strings.TrimSpace(d.Value),
			})
		}
	}
	return m
}

// clone copie le Song en profondeur. Les symboles eux-mêmes sont immuables,
// les ancres ne le sont pas.
func (s *Song) clone() *Song {
	out := &Song{Lines: make([]Line, len(s.Lines))}
	for i, l := range s.Lines {
		if c, ok := l.(ContentLine); ok {
			cp := ContentLine{Lyric: c.Lyric, Chords: append([]Anchor(nil), c.Chords...)}
			out.Lines[i] = cp
			continue
		}
		out.Lines[i] = l
	}
	return out
}
