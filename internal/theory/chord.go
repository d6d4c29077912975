package theory

import "strings"

// Symbol est un symbole d'accord tel qu'il apparaît dans une grille.
// Trois formes : l'accord écrit en lettres (Chord), l'accord Nashville
// (NashvilleChord) et le token opaque (Opaque) pour tout ce qui n'a pas pu
// être analysé. Les trois partagent la même interface pour que le code en
// aval n'ait pas à distinguer les cas.
type Symbol interface {
	// String resérialise le symbole. Invariant : String(ParseSymbol(x)) == x
	// pour toute entrée, reconnue ou non.
	String() string

	// Transposed décale le symbole de n demi-tons, orthographié selon la
	// tonalité cible. Les accords Nashville (relatifs à la tonalité) et les
	// tokens opaques passent inchangés.
	Transposed(n int, target Key) Symbol

	// ToNashville convertit vers la notation Nashville relative à key.
	ToNashville(key Key) (Symbol, error)

	// FromNashville résout un accord Nashville en accord absolu dans key.
	FromNashville(key Key) (Symbol, error)
}

// tokens de qualité reconnus, essayés dans l'ordre (du plus long au plus
// court : le premier qui matche gagne, donc "maj7" avant "m", "sus4" avant
// "sus"...)
var qualityTokens = []string{
	"maj13", "maj11",
	"add11", "add9", "add4", "add2",
	"sus2", "sus4",
	"maj9", "maj7", "dim7",
	"#11", "b13",
	"m13", "m11",
	"maj", "min", "dim", "aug", "sus",
	"m9", "m7", "m6",
	"b5", "b6", "b9", "#5", "#9",
	"13", "11",
	"m", "9", "7", "6", "5", "4", "2",
	"+", "-", "°", "ø",
}

// Chord est un accord structuré : fondamentale, suite ordonnée de tokens de
// qualité, suffixe non reconnu conservé tel quel, et basse optionnelle
// (notation slash). L'ordre des tokens est préservé pour resérialiser
// fidèlement.
type Chord struct {
	Root   Note
	Tokens []string
	Suffix string
	Bass   *Note
}

// NashvilleChord est l'équivalent en degrés : la fondamentale (et la basse
// éventuelle) sont des degrés relatifs à une tonalité, la qualité est copiée
// sans changement.
type NashvilleChord struct {
	Root   Degree
	Tokens []string
	Suffix string
	Bass   *Degree
}

// Opaque est un token qui n'a pas pu être analysé comme accord.
// Il traverse toutes les transformations sans être modifié.
type Opaque string

// ParseSymbol analyse un symbole d'accord. Elle ne peut pas échouer :
// tout ce qui ne commence pas par une note ou un degré devient Opaque.
func ParseSymbol(s string) Symbol {
	if root, rest, ok := parseNote(s); ok {
		tokens, suffix, bassText := splitTail(rest)
		c := &Chord{Root: root, Tokens: tokens, Suffix: suffix}
		if bassText != "" {
			if bass, brest, ok := parseNote(bassText); ok && brest == "" {
				c.Bass = &bass
				return c
			}
			// une basse illisible retourne dans le suffixe, avec son slash
			c.Suffix += "/" + bassText
		}
		return c
	}
	if root, rest, ok := parseDegree(s); ok {
		tokens, suffix, bassText := splitTail(rest)
		c := &NashvilleChord{Root: root, Tokens: tokens, Suffix: suffix}
		if bassText != "" {
			if bass, brest, ok := parseDegree(bassText); ok && brest == "" {
				c.Bass = &bass
				return c
			}
			c.Suffix += "/" + bassText
		}
		return c
	}
	return Opaque(s)
}

// splitTail découpe ce qui suit la fondamentale : une suite de tokens de
// qualité reconnus (match glouton, plus long d'abord), puis le suffixe non
// reconnu, puis le texte après le dernier "/" comme candidat basse.
func splitTail(s string) (tokens []string, suffix, bass string) {
	rest := s
	if i := strings.LastIndexByte(rest, '/'); i >= 0 && i+1 < len(rest) {
		bass = rest[i+1:]
		rest = rest[:i]
	}
scan:
	for rest != "" {
		for _, tok := range qualityTokens {
			if strings.HasPrefix(rest, tok) {
				tokens = append(tokens, tok)
				rest = rest[len(tok):]
				continue scan
			}
		}
		break
	}
	return tokens, rest, bass
}

// IsChordToken indique si s est entièrement reconnu comme accord (lettres ou
// Nashville), sans suffixe résiduel. C'est le critère utilisé pour décider
// qu'une ligne est une ligne d'accords dans la notation deux-lignes.
func IsChordToken(s string) bool {
	switch c := ParseSymbol(s).(type) {
	case *Chord:
		return c.Suffix == ""
	case *NashvilleChord:
		return c.Suffix == ""
	}
	return false
}

func (c *Chord) String() string {
	var b strings.Builder
	b.WriteString(c.Root.String())
	for _, tok := range c.Tokens {
		b.WriteString(tok)
	}
	b.WriteString(c.Suffix)
	if c.Bass != nil {
		b.WriteByte('/')
		b.WriteString(c.Bass.String())
	}
	return b.String()
}

// Transposed décale la fondamentale et la basse de n demi-tons (normalisés
// modulo 12) et réorthographie selon la préférence de la tonalité cible.
// La qualité n'est pas touchée : transposer n'agit que sur les hauteurs.
func (c *Chord) Transposed(n int, target Key) Symbol {
	flats := target.PrefersFlats()
	out := &Chord{
		Root:   SpellPitchClass(c.Root.PitchClass()+n, flats),
		Tokens: append([]string(nil), c.Tokens...),
		Suffix: c.Suffix,
	}
	if c.Bass != nil {
		bass := SpellPitchClass(c.Bass.PitchClass()+n, flats)
		out.Bass = &bass
	}
	return out
}

func (c *Chord) ToNashville(key Key) (Symbol, error) {
	out := &NashvilleChord{
		Root:   key.DegreeOf(c.Root),
		Tokens: append([]string(nil), c.Tokens...),
		Suffix: c.Suffix,
	}
	if c.Bass != nil {
		bass := key.DegreeOf(*c.Bass)
		out.Bass = &bass
	}
	return out, nil
}

// FromNashville sur un accord déjà écrit en lettres est l'identité.
func (c *Chord) FromNashville(Key) (Symbol, error) {
	return c, nil
}

func (c *NashvilleChord) String() string {
	var b strings.Builder
	b.WriteString(c.Root.String())
	for _, tok := range c.Tokens {
		b.WriteString(tok)
	}
	b.WriteString(c.Suffix)
	if c.Bass != nil {
		b.WriteByte('/')
		b.WriteString(c.Bass.String())
	}
	return b.String()
}

// Transposed est l'identité : les degrés sont relatifs à la tonalité,
// ils ne bougent pas quand on transpose.
func (c *NashvilleChord) Transposed(int, Key) Symbol {
	return c
}

// ToNashville sur un accord déjà en degrés est l'identité.
func (c *NashvilleChord) ToNashville(Key) (Symbol, error) {
	return c, nil
}

func (c *NashvilleChord) FromNashville(key Key) (Symbol, error) {
	root, err := key.NoteForDegree(c.Root)
	if err != nil {
		return nil, err
	}
	out := &Chord{
		Root:   root,
		Tokens: append([]string(nil), c.Tokens...),
		Suffix: c.Suffix,
	}
	if c.Bass != nil {
		bass, err := key.NoteForDegree(*c.Bass)
		if err != nil {
			return nil, err
		}
		out.Bass = &bass
	}
	return out, nil
}

func (o Opaque) String() string { return string(o) }

func (o Opaque) Transposed(int, Key) Symbol { return o }

func (o Opaque) ToNashville(Key) (Symbol, error) { return o, nil }

func (o Opaque) FromNashville(Key) (Symbol, error) { return o, nil }
