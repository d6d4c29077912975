package typst

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// NewTypst construit une instance. resolvedPath peut être vide : on cherchera
// alors le binaire dans le PATH système.
func NewTypst(name string, resolvedPath string, cfg TypstConfig) *Typst {
	return &Typst{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

// CheckBinary vérifie que le binaire typst existe et est un fichier.
func (t *Typst) CheckBinary() error {
	if t == nil {
		return fmt.Errorf("typst non initialisé")
	}

	if t.Path == "" {
		// pas de chemin configuré : recherche dans le PATH
		if _, err := exec.LookPath(t.Name); err != nil {
			return fmt.Errorf("typst introuvable dans le PATH (%s) : %w", t.Name, err)
		}
		return nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return fmt.Errorf("typst introuvable (%s) à l'emplacement spécifié : %v", t.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour typst est un répertoire, pas un fichier exécutable")
	}

	return nil
}

func (t *Typst) exe() string {
	if t.Path != "" {
		return t.Path
	}
	return t.Name
}

// Compile exécute `typst compile - <outPath>` en passant source sur stdin.
// Les lignes écrites par typst sur stderr sont renvoyées comme avertissements
// quand la compilation réussit.
func (t *Typst) Compile(ctx context.Context, source []byte, outPath string) (*CompileResult, error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		fmt.Printf("PDF compilé en %s\n", elapsed)
	}()

	args := t.Config.BuildArgs(outPath)

	cmd := exec.CommandContext(ctx, t.exe(), args...)
	cmd.Stdin = bytes.NewReader(source)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("typst compile failed: %w, output: %s", err, stderr.String())
	}

	var warnings []string
	for _, line := range strings.Split(stderr.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		warnings = append(warnings, line)
	}
	return &CompileResult{Warnings: warnings}, nil
}
