package typst

import (
	"strings"
	"testing"

	"github.com/patrickprogramme/chordsheet/internal/chart"
)

// helper : parse une grille ChordPro et échoue si une ligne est rejetée
func parseSong(t *testing.T, text string) *chart.Song {
	t.Helper()
	song, errs := chart.ParseChordPro(text)
	if len(errs) != 0 {
		t.Fatalf("lignes rejetées au parsing: %v", errs)
	}
	return song
}

func TestRenderBodyChordCalls(t *testing.T) {
	song := parseSong(t, "{title: Test}\nA[G]mazing [C]grace\n")

	out := RenderBody(song)

	// le fragment avant le premier accord passe tel quel
	if !strings.HasPrefix(out, "A#chord[") {
		t.Fatalf("attendu paroles nues avant le premier accord, obtenu:\n%s", out)
	}
	// chaque accord porteur de paroles reçoit le décalage 1
	if !strings.Contains(out, `#chord[#"mazing "][#"G "][1]`) {
		t.Fatalf("appel #chord manquant pour G, obtenu:\n%s", out)
	}
	if !strings.Contains(out, `#chord[#"grace"][#"C "][1]`) {
		t.Fatalf("appel #chord manquant pour C, obtenu:\n%s", out)
	}
	// chaque ligne se termine par un saut de ligne typst
	if !strings.HasSuffix(out, "\\\n") {
		t.Fatalf("fin de ligne typst manquante, obtenu:\n%q", out)
	}
}

func TestRenderBodyInstrumentalLine(t *testing.T) {
	// accords sans paroles : pas de décalage vertical
	song := parseSong(t, "[G][D]\n")

	out := RenderBody(song)

	if !strings.Contains(out, `#chord[#""][#"G "][]`) {
		t.Fatalf("accord instrumental G mal rendu:\n%s", out)
	}
	if !strings.Contains(out, `#chord[#""][#"D "][]`) {
		t.Fatalf("accord instrumental D mal rendu:\n%s", out)
	}
}

func TestRenderBodySkipsDirectivesAndComments(t *testing.T) {
	song := parseSong(t, "{title: Test}\n{key: G}\n# brouillon\n[G]la\n")

	out := RenderBody(song)

	if strings.Contains(out, "title") || strings.Contains(out, "key") || strings.Contains(out, "brouillon") {
		t.Fatalf("directives ou commentaires dans le corps typst:\n%s", out)
	}
}

func TestRenderBodyEscapesTypstStrings(t *testing.T) {
	song := parseSong(t, `[G]dites "oui"`+"\n")

	out := RenderBody(song)

	if !strings.Contains(out, `#chord[#"dites \"oui\""][#"G "][1]`) {
		t.Fatalf("guillemets non échappés:\n%s", out)
	}
}

func TestBuildChartDataMeta(t *testing.T) {
	song := parseSong(t, "{title: Amazing Grace}\n{comment: arrangement simple}\n[G]la\n")

	data := BuildChartData(song)

	if data.Title != "Amazing Grace" {
		t.Fatalf("titre: attendu %q, obtenu %q", "Amazing Grace", data.Title)
	}
	if data.Comment != "arrangement simple" {
		t.Fatalf("commentaire: attendu %q, obtenu %q", "arrangement simple", data.Comment)
	}
	if data.Body == "" {
		t.Fatal("corps vide")
	}
}
