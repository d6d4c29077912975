package typst

// TypstConfig représente les flags ajoutables quand on lance typst compile
type TypstConfig struct {
	FontPath     string // --font-path : dossier de polices supplémentaires
	ShowWarnings bool   // false => les diagnostics non fatals ne sont pas affichés
}

// NewTypstConfig initialise une configuration standard, showWarnings et
// fontPath viennent du yaml de config
func NewTypstConfig(showWarnings bool, fontPath string) *TypstConfig {
	return &TypstConfig{
		FontPath:     fontPath,
		ShowWarnings: showWarnings,
	}
}

// BuildArgs construit la slice des arguments à passer à typst.
// Le "-" demande à typst de lire le document sur stdin.
func (c *TypstConfig) BuildArgs(outPath string) []string {
	args := make([]string, 0, 5)
	args = append(args, "compile")
	if c.FontPath != "" {
		args = append(args, "--font-path", c.FontPath)
	}
	args = append(args, "-", outPath)
	return args
}
