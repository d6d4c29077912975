package typst

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/chordsheet/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitTypst initialise le client typst, vérifie le binaire et récupère la version.
// Retourne le client (implémentant Interface) et la version.
func InitTypst(ctx context.Context, cfg *config.Config) (Interface, string, error) {
	tcfg := NewTypstConfig(cfg.Typst.ShowWarnings, cfg.Typst.FontPath)
	tp := NewTypst(cfg.Typst.Name, cfg.Typst.ResolvedPath, *tcfg)
	tp.ShowPath()

	// vérifier la présence du binaire
	if err := tp.CheckBinary(); err != nil {
		return nil, "", fmt.Errorf("typst introuvable : %w", err)
	}

	// récupérer la version (avec timeout)
	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := tp.GetVersion(vctx)
	if err != nil {
		return tp, "", fmt.Errorf("échec récupération version typst : %w", err)
	}

	return tp, version, nil
}
