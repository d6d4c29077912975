package typst

import (
	"reflect"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		fontPath string
		want     []string
	}{
		{
			name:     "sans dossier de polices",
			fontPath: "",
			want:     []string{"compile", "-", "out.pdf"},
		},
		{
			name:     "avec dossier de polices",
			fontPath: "/usr/share/fonts/perso",
			want:     []string{"compile", "--font-path", "/usr/share/fonts/perso", "-", "out.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTypstConfig(false, tt.fontPath)
			got := cfg.BuildArgs("out.pdf")
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("BuildArgs = %v, attendu %v", got, tt.want)
			}
		})
	}
}
