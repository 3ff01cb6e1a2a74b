package stats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// ErrNoChild : le document ne déclare aucun participant enfant.
var ErrNoChild = errors.New("no child participant")

// ErrNoAge : l'âge de l'enfant est absent ou illisible.
var ErrNoAge = errors.New("child age missing")

var (
	unknownRe = regexp.MustCompile(`^#{4,}`)
	ageRe     = regexp.MustCompile(`(\d+)Y`)
)

// rôles reconnus comme enfant
var childRoles = map[string]bool{"Target_Child": true, "Child": true}

// childSpeaker : who des énoncés comptés pour l'enfant, tout le reste compte pour la mère.
const childSpeaker = "CHI"

// Counts : mots, analysés, inconnus.
type Counts struct {
	Words    int
	Analyzed int
	Unknown  int
}

func (c *Counts) add(o Counts) {
	c.Words += o.Words
	c.Analyzed += o.Analyzed
	c.Unknown += o.Unknown
}

// Row : une ligne du tableau, une par transcription.
type Row struct {
	Corpus    string
	ChildName string
	ChildAge  int // années entières
	Child     Counts
	Mother    Counts
}

// structure minimale du document produit
type xmlChat struct {
	XMLName      xml.Name         `xml:"CHAT"`
	Participants []xmlParticipant `xml:"Participants>participant"`
	Utterances   []xmlUtterance   `xml:"u"`
}

type xmlParticipant struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Role string `xml:"role,attr"`
	Age  string `xml:"age,attr"`
}

type xmlUtterance struct {
	Who    string     `xml:"who,attr"`
	Words  []xmlWord  `xml:"w"`
	Groups []xmlGroup `xml:"g"`
}

type xmlGroup struct {
	Words []xmlWord `xml:"w"`
}

type xmlWord struct {
	Mor         []xmlMor        `xml:"mor"`
	Replacement *xmlReplacement `xml:"replacement"`
}

type xmlReplacement struct {
	Words []xmlWord `xml:"w"`
}

type xmlMor struct {
	POS string `xml:"mw>pos>c"`
}

// ReadFile lit un document XML produit et calcule sa ligne de statistiques.
// Le corpus est le nom du dossier parent.
func ReadFile(path string) (Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Row{}, fmt.Errorf("lecture %s: %w", path, err)
	}
	row, err := Parse(data)
	if err != nil {
		return Row{}, fmt.Errorf("%s: %w", path, err)
	}
	row.Corpus = filepath.Base(filepath.Dir(path))
	return row, nil
}

// Parse calcule les statistiques d'un document (sans le corpus).
func Parse(data []byte) (Row, error) {
	var doc xmlChat
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Row{}, fmt.Errorf("decode xml: %w", err)
	}

	child, ok := findChild(doc.Participants)
	if !ok {
		return Row{}, ErrNoChild
	}
	m := ageRe.FindStringSubmatch(child.Age)
	if m == nil {
		return Row{}, fmt.Errorf("%w: %q", ErrNoAge, child.Age)
	}
	age, err := strconv.Atoi(m[1])
	if err != nil {
		return Row{}, fmt.Errorf("%w: %q", ErrNoAge, child.Age)
	}

	row := Row{ChildName: child.Name, ChildAge: age}
	for _, u := range doc.Utterances {
		c := countUtterance(u)
		if u.Who == childSpeaker {
			row.Child.add(c)
		} else {
			row.Mother.add(c)
		}
	}
	return row, nil
}

func findChild(ps []xmlParticipant) (xmlParticipant, bool) {
	for _, p := range ps {
		if childRoles[p.Role] {
			return p, true
		}
	}
	return xmlParticipant{}, false
}

// countUtterance compte les <w> de l'énoncé et de ses groupes <g>.
func countUtterance(u xmlUtterance) Counts {
	var c Counts
	c.add(countWords(u.Words))
	for _, g := range u.Groups {
		c.add(countWords(g.Words))
	}
	return c
}

func countWords(ws []xmlWord) Counts {
	var c Counts
	for _, w := range ws {
		c.Words++
		// un mot remplacé est jugé sur le premier mot du remplacement
		if w.Replacement != nil && len(w.Replacement.Words) > 0 {
			w = w.Replacement.Words[0]
		}
		if isAnalyzed(w) {
			c.Analyzed++
		} else {
			c.Unknown++
		}
	}
	return c
}

func isAnalyzed(w xmlWord) bool {
	for _, m := range w.Mor {
		if !unknownRe.MatchString(m.POS) {
			return true
		}
	}
	return false
}
