package chart

import (
	"errors"
	"reflect"
	"testing"
)

const sampleChordPro = `{title: Amazing Grace}
{key: G}
# grille de travail
A[G]mazing grace how [G/B]sweet the [Cadd9]sound[G]
That saved a wretch like me`

func TestParseChordPro(t *testing.T) {
	song, errs := ParseChordPro(sampleChordPro)
	if len(errs) != 0 {
		t.Fatalf("erreurs inattendues : %v", errs)
	}
	if len(song.Lines) != 5 {
		t.Fatalf("attendu 5 lignes, obtenu %d", len(song.Lines))
	}

	if d, ok := song.Lines[0].(Directive); !ok || d.Name != "title" || d.Value != " Amazing Grace" {
		t.Fatalf("ligne 0 : directive title attendue, obtenu %#v", song.Lines[0])
	}
	if c, ok := song.Lines[2].(Comment); !ok || string(c) != "# grille de travail" {
		t.Fatalf("ligne 2 : commentaire attendu, obtenu %#v", song.Lines[2])
	}

	content, ok := song.Lines[3].(ContentLine)
	if !ok {
		t.Fatalf("ligne 3 : contenu attendu, obtenu %#v", song.Lines[3])
	}
	if content.Lyric != "Amazing grace how sweet the sound" {
		t.Fatalf("paroles = %q", content.Lyric)
	}
	// les crochets ne comptent pas dans les offsets
	wantOffsets := []int{1, 18, 28, 33}
	wantSymbols := []string{"G", "G/B", "Cadd9", "G"}
	if len(content.Chords) != len(wantOffsets) {
		t.Fatalf("attendu %d accords, obtenu %#v", len(wantOffsets), content.Chords)
	}
	for i, a := range content.Chords {
		if a.Offset != wantOffsets[i] || a.Symbol.String() != wantSymbols[i] {
			t.Errorf("accord %d = (%d, %s); attendu (%d, %s)",
				i, a.Offset, a.Symbol, wantOffsets[i], wantSymbols[i])
		}
	}

	if title := song.Title(); title != "Amazing Grace" {
		t.Errorf("Title() = %q", title)
	}
	key, ok := song.Key()
	if !ok || key.String() != "G" {
		t.Errorf("Key() = %v, %v", key, ok)
	}
}

func TestParseChordPro_MalformedDirective(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"pas de deux-points", "{soc}"},
		{"accolade jamais refermée", "{title: oops"},
		{"nom vide", "{: value}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			song, errs := ParseChordPro("{key: C}\n" + tc.in + "\nlyrics")
			if len(errs) != 1 {
				t.Fatalf("attendu 1 erreur, obtenu %v", errs)
			}
			if !errors.Is(errs[0], ErrMalformedDirective) {
				t.Fatalf("attendu ErrMalformedDirective, obtenu %v", errs[0])
			}
			if errs[0].Line != 2 || errs[0].Raw != tc.in {
				t.Fatalf("erreur mal localisée : %+v", errs[0])
			}
			// la ligne fautive est abandonnée, le reste survit
			if len(song.Lines) != 2 {
				t.Fatalf("attendu 2 lignes restantes, obtenu %d", len(song.Lines))
			}
		})
	}
}

func TestParseChordPro_TextAfterDirectivePreserved(t *testing.T) {
	song, errs := ParseChordPro("{title: Amazing Grace} these words remain\n")
	if len(errs) != 0 {
		t.Fatalf("erreurs inattendues : %v", errs)
	}
	if len(song.Lines) != 2 {
		t.Fatalf("attendu 2 lignes (directive + contenu), obtenu %#v", song.Lines)
	}
	if d, ok := song.Lines[0].(Directive); !ok || d.Name != "title" {
		t.Fatalf("ligne 0 : directive title attendue, obtenu %#v", song.Lines[0])
	}
	c, ok := song.Lines[1].(ContentLine)
	if !ok || c.Lyric != " these words remain" {
		t.Fatalf("texte après l'accolade perdu : %#v", song.Lines[1])
	}

	// rien ne disparaît à la resérialisation
	out := SerializeChordPro(song)
	want := "{title: Amazing Grace}\n these words remain\n"
	if out != want {
		t.Fatalf("sortie = %q; attendu %q", out, want)
	}
}

func TestParseChordPro_ChordsAfterDirective(t *testing.T) {
	song, errs := ParseChordPro("{key: G} [G]la\n")
	if len(errs) != 0 {
		t.Fatalf("erreurs inattendues : %v", errs)
	}
	if len(song.Lines) != 2 {
		t.Fatalf("attendu 2 lignes, obtenu %#v", song.Lines)
	}
	c, ok := song.Lines[1].(ContentLine)
	if !ok || c.Lyric != " la" || len(c.Chords) != 1 || c.Chords[0].Symbol.String() != "G" {
		t.Fatalf("accords après la directive mal conservés : %#v", song.Lines[1])
	}
}

func TestParseChordPro_UnclosedBracketIsLyrics(t *testing.T) {
	song, errs := ParseChordPro("la [G note [manquante")
	if len(errs) != 0 {
		t.Fatalf("erreurs inattendues : %v", errs)
	}
	c := song.Lines[0].(ContentLine)
	if c.Lyric != "la [G note [manquante" || len(c.Chords) != 0 {
		t.Fatalf("crochet non refermé mal traité : %#v", c)
	}
}

func TestChordProRoundTrip(t *testing.T) {
	inputs := []string{
		sampleChordPro + "\n",
		"[G][D][Em][C]\n",                    // instrumental, accords consécutifs
		"Trailing [1]chords [4]here[5][1]\n", // Nashville + accords de fin
		"{x:y}\n\nplain line\n# comment\n",   // mélange
		"paroles sans accords\n",
	}
	for _, in := range inputs {
		song, errs := ParseChordPro(in)
		if len(errs) != 0 {
			t.Fatalf("erreurs inattendues pour %q : %v", in, errs)
		}
		out := SerializeChordPro(song)
		if out != in {
			t.Errorf("aller-retour inexact :\nentrée  %q\nsortie  %q", in, out)
		}
		// idempotence au niveau du modèle
		song2, _ := ParseChordPro(out)
		if !reflect.DeepEqual(song, song2) {
			t.Errorf("modèle non idempotent pour %q", in)
		}
	}
}

func TestSerializeChordPro_OffsetsPastEnd(t *testing.T) {
	song := &Song{Lines: []Line{
		ContentLine{
			Lyric: "fin",
			Chords: []Anchor{
				{Offset: 0, Symbol: sym(t, "G")},
				{Offset: 10, Symbol: sym(t, "D")},
			},
		},
	}}
	got := SerializeChordPro(song)
	want := "[G]fin[D]\n"
	if got != want {
		t.Fatalf("sortie = %q; attendu %q", got, want)
	}
}
