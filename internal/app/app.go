package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/chordsheet/internal/chart"
	"github.com/patrickprogramme/chordsheet/internal/clipboard"
	"github.com/patrickprogramme/chordsheet/internal/config"
	"github.com/patrickprogramme/chordsheet/internal/fsutil"
	"github.com/patrickprogramme/chordsheet/internal/typst"
	"github.com/patrickprogramme/chordsheet/internal/ui"
	"github.com/patrickprogramme/chordsheet/pkg/model"
)

const (
	defaultCompileTimeout = 2 * time.Minute
	filePerm              = 0o644
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath string
	InputPath  string
	OutputPath string // "-" = stdout, "" = dérivé du titre dans output_dir
	From       string
	To         string

	// transformations (mutuellement exclusives, sauf -key comme référence
	// pour -numbers / -letters)
	Transpose int
	Key       string
	Numbers   bool
	Letters   bool

	PDFPath   string
	Copy      bool
	Watch     bool
	TypstPath string

	ExportTemplates bool
}

// App orchestre les différentes dépendances (UI, typst, FS...)
type App struct {
	cfg         *config.Config
	ui          ui.Interface
	flags       *CLIFlags
	typstClient typst.Interface // **présent** : client typst initialisé à la demande
	renderer    *typst.Renderer
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, renderer *typst.Renderer) *App {
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		renderer: renderer,
	}
}

// Run exécute le flux principal : résolution du fichier d'entrée, conversion
// (une fois ou en continu avec -watch).
func (a *App) Run(ctx context.Context) error {
	// Récupération du fichier d'entrée : priorité flag > clipboard > prompt
	input := a.flags.InputPath
	if input == "" {
		p, err := a.ui.GetInputPath(ctx)
		if err != nil {
			return fmt.Errorf("get input path: %w", err)
		}
		input = p
	}

	// si l'utilisateur a passé -typst-path, l'appliquer et re-résoudre
	if a.flags.TypstPath != "" {
		a.cfg.Typst.Path = a.flags.TypstPath
		a.cfg.ResolveTypstPath()
	}

	if a.flags.Watch {
		return a.watch(ctx, input)
	}

	if err := a.convertOnce(ctx, input); err != nil {
		return err
	}

	// session interactive (chemin venu du presse-papier ou du prompt) :
	// laisser la fenêtre ouverte pour que le résultat reste lisible
	if a.flags.InputPath == "" {
		return a.ui.WaitForExit(ctx)
	}
	return nil
}

// convertOnce lit le fichier, applique la transformation demandée et écrit
// le résultat (fichier, stdout, presse-papier, PDF selon les flags).
func (a *App) convertOnce(ctx context.Context, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input %s: %w", inputPath, err)
	}

	from, to, err := a.resolveFormats()
	if err != nil {
		return err
	}

	song, lineErrs := parseSong(string(data), from)
	a.reportLineErrors(ctx, lineErrs)
	a.ui.PrintInfo(ctx, song.Meta().String())

	op, err := buildOp(a.flags)
	if err != nil {
		return err
	}
	if op != nil {
		out, err := chart.Transform(song, op)
		if err != nil {
			return fmt.Errorf("transformation: %w", err)
		}
		song = out
	}

	text := serializeSong(song, to)

	if err := a.deliver(ctx, song, text, to); err != nil {
		return err
	}

	if a.flags.PDFPath != "" {
		if err := a.ExportPDF(ctx, song, a.flags.PDFPath); err != nil {
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("opération annulée")
			}
			return err
		}
	}

	return nil
}

// deliver écrit le texte converti vers stdout, un fichier explicite, ou un
// fichier dérivé du titre, et gère la copie presse-papier.
func (a *App) deliver(ctx context.Context, song *chart.Song, text string, to model.Format) error {
	switch {
	case a.flags.OutputPath == "-":
		fmt.Print(text)
	case a.flags.OutputPath != "":
		if err := fsutil.WriteFileAtomic(a.flags.OutputPath, []byte(text), filePerm); err != nil {
			return fmt.Errorf("write output %s: %w", a.flags.OutputPath, err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Grille écrite dans :\n%s", a.flags.OutputPath))
	default:
		base := fsutil.SanitizeFilename(song.Title())
		outPath, err := fsutil.SaveTextAtomic(a.cfg.OutputDir, base, to.Extension(), []byte(text), true)
		if err != nil {
			return fmt.Errorf("cannot save file to disk: %v", err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Grille écrite dans :\n%s", outPath))
	}

	if a.flags.Copy || a.cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: copie presse-papier impossible: %v", err))
		} else if clipboard.ClipboardEquals(text) {
			a.ui.PrintInfo(ctx, "Résultat copié dans le presse-papier.")
		}
	}
	return nil
}

// ExportPDF rend le markup typst du chant puis lance la compilation.
// Le client typst est initialisé à la première demande.
func (a *App) ExportPDF(ctx context.Context, song *chart.Song, pdfPath string) error {
	if a.typstClient == nil {
		warnings, err := a.cfg.ValidateTypstPresence()
		if err != nil {
			return fmt.Errorf("typst config: %w", err)
		}
		for _, w := range warnings {
			a.ui.PrintError(ctx, "⚠️  "+w)
		}

		tp, version, err := typst.InitTypst(ctx, a.cfg)
		if err != nil {
			return fmt.Errorf("typst init: %w", err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("typst %s", version))
		a.typstClient = tp
	}

	source, err := a.renderer.Render("chart.typ.tmpl", typst.BuildChartData(song))
	if err != nil {
		return fmt.Errorf("render error: %v", err)
	}

	if dir := filepath.Dir(pdfPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create pdf dir: %w", err)
		}
	}

	cctx, cancel := context.WithTimeout(ctx, defaultCompileTimeout)
	defer cancel()

	res, err := a.typstClient.Compile(cctx, source, pdfPath)
	if err != nil {
		return fmt.Errorf("compile pdf: %w", err)
	}
	if a.cfg.Typst.ShowWarnings {
		res.PrintWarnings()
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("PDF écrit dans :\n%s", pdfPath))
	return nil
}
