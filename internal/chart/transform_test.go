package chart

import (
	"errors"
	"testing"

	"github.com/patrickprogramme/chordsheet/internal/theory"
)

func parseSong(t *testing.T, text string) *Song {
	t.Helper()
	song, errs := ParseChordPro(text)
	if len(errs) != 0 {
		t.Fatalf("erreurs de parse inattendues : %v", errs)
	}
	return song
}

func key(t *testing.T, s string) theory.Key {
	t.Helper()
	k, err := theory.ParseKey(s)
	if err != nil {
		t.Fatalf("ParseKey(%q): %v", s, err)
	}
	return k
}

func TestTransform_Transpose(t *testing.T) {
	song := parseSong(t, "{key: G}\nA[G]mazing [G/B]grace [Cadd9]how [N.C.]sweet")
	out, err := Transform(song, Transpose{Semitones: 2})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got := SerializeChordPro(out)
	want := "{key: A}\nA[A]mazing [A/C#]grace [Dadd9]how [N.C.]sweet\n"
	if got != want {
		t.Fatalf("sortie :\n%s\nattendu :\n%s", got, want)
	}
}

func TestTransform_DoesNotMutateOriginal(t *testing.T) {
	song := parseSong(t, "{key: G}\n[G]la [D]la")
	before := SerializeChordPro(song)
	if _, err := Transform(song, Transpose{Semitones: 5}); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if after := SerializeChordPro(song); after != before {
		t.Fatalf("le chant d'origine a été modifié :\navant %q\naprès %q", before, after)
	}
}

func TestTransform_TransposeToKey(t *testing.T) {
	song := parseSong(t, "{key: G}\n[G]la [Em]la [D/F#]la")
	out, err := Transform(song, TransposeToKey{Target: key(t, "Bb")})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got := SerializeChordPro(out)
	want := "{key: Bb}\n[Bb]la [Gm]la [F/A]la\n"
	if got != want {
		t.Fatalf("sortie :\n%s\nattendu :\n%s", got, want)
	}
}

func TestTransform_TransposeToKeyRequiresKey(t *testing.T) {
	song := parseSong(t, "[G]la")
	if _, err := Transform(song, TransposeToKey{Target: key(t, "A")}); !errors.Is(err, ErrNoKey) {
		t.Fatalf("attendu ErrNoKey, obtenu %v", err)
	}
}

func TestTransform_TwelveSemitonesKeepsPitchClasses(t *testing.T) {
	song := parseSong(t, "{key: Eb}\n[Eb]la [Ab/C]la [Cm7]la")
	out, err := Transform(song, Transpose{Semitones: 12})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	origLine := song.Lines[1].(ContentLine)
	outLine := out.Lines[1].(ContentLine)
	for i := range origLine.Chords {
		a := origLine.Chords[i].Symbol.(*theory.Chord)
		b := outLine.Chords[i].Symbol.(*theory.Chord)
		if a.Root.PitchClass() != b.Root.PitchClass() {
			t.Errorf("accord %d : pc %d -> %d", i, a.Root.PitchClass(), b.Root.PitchClass())
		}
	}
}

func TestTransform_ToNumbers(t *testing.T) {
	song := parseSong(t, "{key: G}\n[G]la [D]la [Eb]la [G/B]la")
	out, err := Transform(song, ToNumbers{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got := SerializeChordPro(out)
	want := "{key: G}\n[1]la [5]la [b6]la [1/3]la\n"
	if got != want {
		t.Fatalf("sortie :\n%s\nattendu :\n%s", got, want)
	}
}

func TestTransform_ToNumbersWithoutKeyFails(t *testing.T) {
	song := parseSong(t, "[G]la")
	if _, err := Transform(song, ToNumbers{}); !errors.Is(err, ErrNoKey) {
		t.Fatalf("attendu ErrNoKey, obtenu %v", err)
	}
}

func TestTransform_ToLetters(t *testing.T) {
	song := parseSong(t, "[1]Lorem [2m]ipsum [1/3]dolor [4]sit")
	g := key(t, "G")
	out, err := Transform(song, ToLetters{Key: &g})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got := SerializeChordPro(out)
	want := "[G]Lorem [Am]ipsum [G/B]dolor [C]sit\n"
	if got != want {
		t.Fatalf("sortie :\n%s\nattendu :\n%s", got, want)
	}
}

func TestTransform_ToLettersInvalidDegreeAbortsWhole(t *testing.T) {
	song := parseSong(t, "[1]la")
	line := song.Lines[0].(ContentLine)
	line.Chords = append(line.Chords, Anchor{
		Offset: 2,
		Symbol: &theory.NashvilleChord{Root: theory.Degree{Value: 9}},
	})
	song.Lines[0] = line

	g := key(t, "G")
	out, err := Transform(song, ToLetters{Key: &g})
	if !errors.Is(err, theory.ErrInvalidDegree) {
		t.Fatalf("attendu ErrInvalidDegree, obtenu %v", err)
	}
	if out != nil {
		t.Fatalf("jamais de chant à moitié transformé, obtenu %#v", out)
	}
}

func TestTransform_NashvilleRoundTrip(t *testing.T) {
	src := "{key: Eb}\n[Eb]la [Bb/D]la [Cm]la [Ab]la"
	song := parseSong(t, src)
	nums, err := Transform(song, ToNumbers{})
	if err != nil {
		t.Fatalf("ToNumbers: %v", err)
	}
	back, err := Transform(nums, ToLetters{})
	if err != nil {
		t.Fatalf("ToLetters: %v", err)
	}
	if got := SerializeChordPro(back); got != src+"\n" {
		t.Fatalf("aller-retour Nashville :\n%s\nattendu :\n%s", got, src)
	}
}

func TestTransform_SetKeyInsertsAfterHeader(t *testing.T) {
	song := parseSong(t, "{title: Sans tonalité}\n[G]la")
	song.SetKey(key(t, "D"))
	got := SerializeChordPro(song)
	want := "{title: Sans tonalité}\n{key: D}\n[G]la\n"
	if got != want {
		t.Fatalf("sortie :\n%s\nattendu :\n%s", got, want)
	}
}
