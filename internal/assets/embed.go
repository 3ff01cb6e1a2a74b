package assets

import "embed"

//go:embed cha2xml.example.yaml
//go:embed templates/*.tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "cha2xml.example.yaml"

// TemplatePattern : motif des templates embarqués (pour ParseFS).
const TemplatePattern = "templates/*.tmpl"

// DocumentTemplate : nom (basename) du template du document TalkBank.
const DocumentTemplate = "talkbank.xml.tmpl"

// DefaultTemplatePaths : templates "par défaut" embarqués, chemins DANS Embedded.
var DefaultTemplatePaths = []string{
	"templates/" + DocumentTemplate,
}
