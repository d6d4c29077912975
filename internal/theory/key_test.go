package theory

import (
	"errors"
	"testing"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want Note
	}{
		{"C", Note{C, 0}},
		{"D#", Note{D, 1}},
		{"Ebb", Note{E, -2}},
		{"F##", Note{F, 2}},
		{"Db", Note{D, -1}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseNote(tc.in)
			if err != nil {
				t.Fatalf("ParseNote(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseNote(%q) = %v; attendu %v", tc.in, got, tc.want)
			}
			if got.String() != tc.in {
				t.Fatalf("String() = %q; attendu %q", got.String(), tc.in)
			}
		})
	}

	for _, bad := range []string{"", "H", "C%", "bb", "Cb#"} {
		if _, err := ParseNote(bad); err == nil {
			t.Errorf("ParseNote(%q) devrait échouer", bad)
		}
	}
}

func TestNotePitchClass(t *testing.T) {
	tests := []struct {
		in   Note
		want int
	}{
		{Note{C, 0}, 0},
		{Note{B, -1}, 10},
		{Note{C, -1}, 11}, // Cb retombe dans l'octave
		{Note{B, 1}, 0},   // B# aussi
		{Note{F, 2}, 7},
	}
	for _, tc := range tests {
		if got := tc.in.PitchClass(); got != tc.want {
			t.Errorf("%v.PitchClass() = %d; attendu %d", tc.in, got, tc.want)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in    string
		minor bool
	}{
		{"G", false},
		{"Bb", false},
		{"F#m", true},
		{"Em", true},
		{"Abmin", true},
	}
	for _, tc := range tests {
		k, err := ParseKey(tc.in)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tc.in, err)
		}
		if k.Minor != tc.minor {
			t.Errorf("ParseKey(%q).Minor = %v; attendu %v", tc.in, k.Minor, tc.minor)
		}
	}
	for _, bad := range []string{"", "maj", "Gmx", "8"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) devrait échouer", bad)
		}
	}
}

func TestKeyPrefersFlats(t *testing.T) {
	flats := []string{"F", "Bb", "Eb", "Ab", "Db", "Gb", "Dm", "Gm", "Cm", "Fm", "Bbm"}
	sharps := []string{"C", "G", "D", "A", "E", "B", "F#", "C#", "Am", "Em", "Bm", "F#m"}
	for _, s := range flats {
		if k, _ := ParseKey(s); !k.PrefersFlats() {
			t.Errorf("%s devrait préférer les bémols", s)
		}
	}
	for _, s := range sharps {
		if k, _ := ParseKey(s); k.PrefersFlats() {
			t.Errorf("%s devrait préférer les dièses", s)
		}
	}
}

func TestKeyTransposed(t *testing.T) {
	tests := []struct {
		in        string
		semitones int
		want      string
	}{
		{"G", 3, "Bb"},
		{"C", -1, "B"},
		{"E", 2, "F#"},
		{"Em", 1, "Fm"},
		{"Bb", 2, "C"},
		{"F#m", 12, "F#m"},
	}
	for _, tc := range tests {
		k := func() Key {
			k, err := ParseKey(tc.in)
			if err != nil {
				t.Fatalf("ParseKey(%q): %v", tc.in, err)
			}
			return k
		}()
		if got := k.Transposed(tc.semitones).String(); got != tc.want {
			t.Errorf("%s transposé de %d = %s; attendu %s", tc.in, tc.semitones, got, tc.want)
		}
	}
}

func TestNoteForDegree_Invalid(t *testing.T) {
	k, _ := ParseKey("C")
	if _, err := k.NoteForDegree(Degree{Value: 0}); !errors.Is(err, ErrInvalidDegree) {
		t.Fatalf("degré 0 : attendu ErrInvalidDegree, obtenu %v", err)
	}
}
