package assets

import "embed"

//go:embed chordsheet.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "chordsheet.example.yaml"

// DefaultTemplatePaths : liste ordonnée des templates "par défaut" embarqués.
// Ce sont des chemins relatifs DANS Embedded (ex: "templates/chart.typ.tmpl").
var DefaultTemplatePaths = []string{
	"templates/chart.typ.tmpl",
}

// TemplateByName donne un accès par clé (map).
var TemplateByName = map[string]string{
	"chart_typst": "templates/chart.typ.tmpl",
}
