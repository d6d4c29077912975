package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/chordsheet/internal/app"
	"github.com/patrickprogramme/chordsheet/internal/assets"
	"github.com/patrickprogramme/chordsheet/internal/bootstrap"
	"github.com/patrickprogramme/chordsheet/internal/config"
	"github.com/patrickprogramme/chordsheet/internal/typst"
	"github.com/patrickprogramme/chordsheet/internal/ui"
)

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "chordsheet.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "chordsheet.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	// s'assurer que les templates existent (dans binDir/templates)
	tplDir := filepath.Join(binDir, "templates")
	if err := bootstrap.EnsureTemplatesPresent(
		tplDir,
		assets.Embedded,
		assets.DefaultTemplatePaths,
	); err != nil {
		log.Printf("warning: ensure templates present: %v", err)
	}

	// -export-templates : (re)déposer les templates embarqués puis quitter
	if flags.ExportTemplates {
		status, err := bootstrap.ExportDefaults(assets.Embedded, "templates", tplDir, true)
		for p, s := range status {
			fmt.Printf("%s: %s\n", p, s)
		}
		if err != nil {
			log.Fatalf("export templates: %v", err)
		}
		return
	}

	// charger la config depuis flags.ConfigPath
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// appliquer le flag -copy par-dessus la config
	if flags.Copy {
		cfg.CopyToClipboard = true
	}

	// construction du renderer (templates à côté du binaire)
	renderer, err := typst.DefaultRenderer(exePath)
	if err != nil {
		log.Fatalf("impossible de construire le renderer: %v", err)
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags, renderer)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "chordsheet.yaml", "path to config file")
	flag.StringVar(&f.InputPath, "in", "", "fichier de chant à convertir (optionnel)")
	flag.StringVar(&f.OutputPath, "out", "", "fichier de sortie ('-' = stdout, vide = dérivé du titre)")
	flag.StringVar(&f.From, "from", "", "notation d'entrée : chordpro | above")
	flag.StringVar(&f.To, "to", "", "notation de sortie : chordpro | above")
	flag.IntVar(&f.Transpose, "transpose", 0, "transposer de n demi-tons (signé)")
	flag.StringVar(&f.Key, "key", "", "tonalité cible (ou de référence avec -numbers/-letters)")
	flag.BoolVar(&f.Numbers, "numbers", false, "convertir les accords en notation Nashville")
	flag.BoolVar(&f.Letters, "letters", false, "résoudre une grille Nashville en accords absolus")
	flag.StringVar(&f.PDFPath, "pdf", "", "compiler aussi un PDF via typst vers ce chemin")
	flag.BoolVar(&f.Copy, "copy", false, "copier le résultat dans le presse-papier")
	flag.BoolVar(&f.Watch, "watch", false, "reconvertir à chaque modification du fichier d'entrée")
	flag.StringVar(&f.TypstPath, "typst-path", "", "chemin vers l'exécutable typst")
	flag.BoolVar(&f.ExportTemplates, "export-templates", false, "déposer les templates embarqués puis quitter")
	flag.Parse()

	// le premier argument positionnel vaut -in
	if f.InputPath == "" && flag.NArg() > 0 {
		f.InputPath = flag.Arg(0)
	}
	return f
}
