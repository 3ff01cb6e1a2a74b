package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
	"text/template"

	"github.com/patrickprogramme/cha2xml/internal/assets"
	"github.com/patrickprogramme/cha2xml/pkg/model"
)

var errNilRenderer = errors.New("renderer nil")

// Renderer produit les documents XML. Les templates sont parsés au premier rendu
// puis partagés en lecture seule : un même Renderer sert toutes les conversions.
type Renderer struct {
	fsys     fs.FS
	patterns []string

	once sync.Once
	tmpl *template.Template
	err  error
}

// NewFromFS prépare un Renderer sur les patterns de fsys (syntaxe fs.Glob).
func NewFromFS(fsys fs.FS, patterns ...string) (*Renderer, error) {
	switch {
	case fsys == nil:
		return nil, fmt.Errorf("source de templates nil")
	case len(patterns) == 0:
		return nil, fmt.Errorf("aucun motif de template")
	}
	return &Renderer{fsys: fsys, patterns: patterns}, nil
}

// New : templates embarqués dans le binaire.
func New() *Renderer {
	return &Renderer{fsys: assets.Embedded, patterns: []string{assets.TemplatePattern}}
}

// FromDir charge les templates d'un dossier (templates_dir). Les erreurs de
// syntaxe sont remontées immédiatement plutôt qu'au premier document.
func FromDir(dir string) (*Renderer, error) {
	if st, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("dossier de templates : %w", err)
	} else if !st.IsDir() {
		return nil, fmt.Errorf("dossier de templates : %s n'est pas un répertoire", dir)
	}
	r, err := NewFromFS(os.DirFS(dir), path.Base(assets.TemplatePattern))
	if err != nil {
		return nil, err
	}
	return r, r.ParseNow()
}

func (r *Renderer) load() error {
	r.once.Do(func() {
		t := template.New("cha2xml").Funcs(baseFuncMap())
		for _, p := range r.patterns {
			if _, err := t.ParseFS(r.fsys, p); err != nil {
				r.err = fmt.Errorf("templates %q : %w", p, err)
				return
			}
		}
		r.tmpl = t
	})
	return r.err
}

// ParseNow parse les templates sans attendre le premier rendu.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return errNilRenderer
	}
	return r.load()
}

// Render exécute le template name (nom de fichier, ex. "talkbank.xml.tmpl").
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	if err := r.ParseNow(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("exécution de %s : %w", name, err)
	}
	return buf.Bytes(), nil
}

// Document rend un Chat validé en XML TalkBank, lignes blanches supprimées.
func (r *Renderer) Document(c *model.Chat) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("chat nil")
	}
	out, err := r.Render(assets.DocumentTemplate, c)
	if err != nil {
		return nil, fmt.Errorf("rendu de %s : %w", c.ID, err)
	}
	return StripBlankLines(out), nil
}

// TemplateNames liste les templates chargés (vide tant que rien n'est parsé).
func (r *Renderer) TemplateNames() []string {
	if r == nil || r.tmpl == nil {
		return nil
	}
	var names []string
	for _, t := range r.tmpl.Templates() {
		names = append(names, t.Name())
	}
	return names
}
