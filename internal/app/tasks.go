package app

import (
	"context"
	"fmt"

	"github.com/patrickprogramme/chordsheet/internal/chart"
	"github.com/patrickprogramme/chordsheet/internal/theory"
	"github.com/patrickprogramme/chordsheet/pkg/model"
)

// resolveFormats détermine les notations d'entrée et de sortie :
// priorité flag > config.
func (a *App) resolveFormats() (model.Format, model.Format, error) {
	fromRaw := a.flags.From
	if fromRaw == "" {
		fromRaw = a.cfg.InputFormat
	}
	from, err := model.ParseFormat(fromRaw)
	if err != nil {
		return "", "", fmt.Errorf("notation d'entrée: %w", err)
	}

	toRaw := a.flags.To
	if toRaw == "" {
		toRaw = a.cfg.OutputFormat
	}
	to, err := model.ParseFormat(toRaw)
	if err != nil {
		return "", "", fmt.Errorf("notation de sortie: %w", err)
	}
	return from, to, nil
}

// parseSong analyse le texte selon la notation demandée. Les lignes fautives
// sont signalées dans le deuxième résultat, le reste du chant est conservé.
func parseSong(text string, f model.Format) (*chart.Song, []chart.LineError) {
	if f == model.FormatAbove {
		return chart.ParseAbove(text)
	}
	return chart.ParseChordPro(text)
}

func serializeSong(song *chart.Song, f model.Format) string {
	if f == model.FormatAbove {
		return chart.SerializeAbove(song)
	}
	return chart.SerializeChordPro(song)
}

// buildOp traduit les flags en une opération de transformation, ou nil si
// aucune n'est demandée. Vérifie les exclusions mutuelles ; -key seul
// transpose vers la tonalité cible, combiné à -numbers ou -letters il
// fournit la tonalité de référence.
func buildOp(f *CLIFlags) (chart.Op, error) {
	count := 0
	if f.Transpose != 0 {
		count++
	}
	if f.Numbers {
		count++
	}
	if f.Letters {
		count++
	}
	if f.Key != "" && !f.Numbers && !f.Letters {
		count++
	}
	if count > 1 {
		return nil, fmt.Errorf("flags incompatibles : choisir une seule transformation (-transpose, -key, -numbers, -letters)")
	}

	var keyRef *theory.Key
	if f.Key != "" {
		k, err := theory.ParseKey(f.Key)
		if err != nil {
			return nil, fmt.Errorf("flag -key: %w", err)
		}
		keyRef = &k
	}

	switch {
	case f.Numbers:
		return chart.ToNumbers{Key: keyRef}, nil
	case f.Letters:
		return chart.ToLetters{Key: keyRef}, nil
	case f.Transpose != 0:
		return chart.Transpose{Semitones: f.Transpose}, nil
	case keyRef != nil:
		return chart.TransposeToKey{Target: *keyRef}, nil
	}
	return nil, nil
}

// reportLineErrors affiche les lignes rejetées par le parseur. Non fatal :
// le reste du chant est traité normalement.
func (a *App) reportLineErrors(ctx context.Context, errs []chart.LineError) {
	for _, e := range errs {
		a.ui.PrintError(ctx, fmt.Sprintf("⚠️  ligne %d ignorée : %v", e.Line, e.Err))
	}
}
