package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// Namespace TalkBank des documents produits.
const Namespace = "http://www.talkbank.org/ns/talkbank"

// baseFuncMap construit la liste des fonctions exposées aux templates.
func baseFuncMap() template.FuncMap {
	return template.FuncMap{
		"namespace": func() string { return Namespace },
		"xml":       escape,
		"attr":      attr,
		"join":      strings.Join,
		"event":     eventXML,
	}
}

// escape échappe texte et valeurs d'attributs.
func escape(s string) string {
	var b bytes.Buffer
	// xml.EscapeText n'échoue que si le writer échoue
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// attr retourne ` name="value"`, ou "" si value est vide.
func attr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + escape(value) + `"`
}

// eventXML rend un événement selon la forme associée à sa catégorie.
// Les remplacements sont rendus à l'intérieur du <w> : rien ici.
func eventXML(e model.Event) string {
	r := e.Rule
	switch r.Form {
	case model.FormReplacement:
		return ""
	case model.FormFreecode:
		return "<freecode>" + escape(e.Raw) + "</freecode>"
	case model.FormTimes:
		return "<" + r.Element + attr("times", e.Payload) + "/>"
	}

	open := "<" + r.Element + attr("type", r.Type)
	if e.Payload == "" {
		return open + "/>"
	}
	return open + ">" + escape(e.Payload) + "</" + r.Element + ">"
}
