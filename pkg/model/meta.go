package model

import "fmt"

// Directive est une paire nom/valeur extraite d'une ligne de contrôle.
type Directive struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Meta regroupe les métadonnées d'une grille, à destination des rendus
// aval (PDF notamment) : titre, tonalité, commentaire d'arrangement, et la
// liste complète des directives telles que déclarées.
type Meta struct {
	Title      string      `json:"title,omitempty"`
	Key        string      `json:"key,omitempty"`
	Comment    string      `json:"comment,omitempty"`
	Directives []Directive `json:"directives,omitempty"`
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[Title=%q, Key=%s, Directives=%d]",
		m.Title, m.Key, len(m.Directives))
}
