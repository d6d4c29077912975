package typst

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GetVersion exécute le binaire typst avec l'option --version et retourne sa sortie.
// Utilise CombinedOutput pour capturer à la fois stdout et stderr,
// ce qui facilite le diagnostic en cas d'échec.
func (t *Typst) GetVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, t.exe(), "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("échec exécution typst --version : %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}
