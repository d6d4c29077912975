package typst

import (
	"context"
	"fmt"
)

// Interface est l'abstraction utilisée par l'application. Elle facilite le test
// en autorisant une implémentation factice dans les tests.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	Compile(ctx context.Context, source []byte, outPath string) (*CompileResult, error)
}

// CompileResult contient les éventuels avertissements émis par typst sur stderr.
type CompileResult struct {
	Warnings []string
}

// PrintWarnings affiche les avertissements de typst
func (r *CompileResult) PrintWarnings() {
	if r == nil || len(r.Warnings) == 0 {
		return
	}
	fmt.Println("⚠️  Avertissements typst :")
	for _, w := range r.Warnings {
		fmt.Printf("  - %s\n", w)
	}
}

// Typst représente la commande typst à exécuter (nom de binaire ou chemin) + options.
type Typst struct {
	Name   string
	Path   string // chemin résolu vers l'exe (vide = PATH système)
	Config TypstConfig
}

func (t Typst) ShowPath() {
	if t.Path == "" {
		fmt.Println("typst path: (PATH système)")
		return
	}
	fmt.Println("typst path:", t.Path)
}
