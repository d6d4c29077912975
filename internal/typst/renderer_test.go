package typst

import (
	"strings"
	"testing"

	"github.com/patrickprogramme/chordsheet/internal/assets"
)

func TestRendererFromEmbeddedAssets(t *testing.T) {
	r, err := NewRendererFromFS(assets.Embedded, []string{"templates/*.tmpl"})
	if err != nil {
		t.Fatalf("NewRendererFromFS: %v", err)
	}

	data := ChartData{
		Title:   "Amazing Grace",
		Comment: "arrangement simple",
		Body:    `#chord[#"la"][#"G "][1]\` + "\n",
	}
	out, err := r.Render("chart.typ.tmpl", data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, `#import "@preview/chordx:0.6.1": single-chord`) {
		t.Fatalf("préambule chordx manquant:\n%s", s)
	}
	if !strings.Contains(s, "= Amazing Grace") {
		t.Fatalf("titre manquant:\n%s", s)
	}
	if !strings.Contains(s, "arrangement simple") {
		t.Fatalf("commentaire manquant:\n%s", s)
	}
	if !strings.Contains(s, data.Body) {
		t.Fatalf("corps manquant:\n%s", s)
	}
}

func TestRendererWithoutTitleOmitsHeading(t *testing.T) {
	r, err := NewRendererFromFS(assets.Embedded, []string{"templates/*.tmpl"})
	if err != nil {
		t.Fatalf("NewRendererFromFS: %v", err)
	}

	out, err := r.Render("chart.typ.tmpl", ChartData{Body: "la\\\n"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "= ") {
			t.Fatalf("titre rendu alors qu'aucun n'était fourni:\n%s", out)
		}
	}
}
