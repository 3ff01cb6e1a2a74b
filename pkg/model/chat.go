package model

import (
	"fmt"
	"strings"
)

// Chat regroupe tout ce qui a été extrait d'une transcription CHAT (un fichier .cha).
type Chat struct {
	ID           string // nom du fichier sans extension
	Path         string // chemin source
	Participants []*Participant
	Utterances   []*Utterance

	// attributs généraux (@Comment, @Date, ...)
	ColorWords   string
	Comment      string
	Date         string // formaté YYYY-MM-DD
	Font         string
	Languages    []string
	PID          string
	Situation    string
	TimeDuration string

	// Corpus vient du premier participant
	Corpus string
}

// WordCount compte les mots ordinaires (hors ponctuation et pauses) de toutes les lignes.
func (c Chat) WordCount() int {
	n := 0
	for _, u := range c.Utterances {
		for _, w := range u.Words {
			if w.Kind == WordRegular {
				n++
			}
		}
	}
	return n
}

func (c Chat) String() string {
	return fmt.Sprintf("Chat[ID=%s, Corpus=%s, Date=%s, Participants=%d, Utterances=%d]",
		c.ID, c.Corpus, c.Date, len(c.Participants), len(c.Utterances))
}

// Participant représente un locuteur déclaré dans @Participants, complété par @ID.
type Participant struct {
	ID   string
	Name string
	Role string

	// métadonnées de @ID, vides par défaut
	Age       string // durée ISO-8601 (P2Y3M10D)
	Corpus    string
	Custom    string
	Education string
	Group     string
	Language  string
	SES       string
	Sex       string
}

func (p Participant) String() string {
	pairs := [][2]string{
		{"age", p.Age}, {"corpus", p.Corpus}, {"custom", p.Custom},
		{"education", p.Education}, {"group", p.Group}, {"language", p.Language},
		{"role", p.Role}, {"SES", p.SES}, {"sex", p.Sex},
	}
	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		if kv[1] != "" {
			parts = append(parts, kv[0]+": "+kv[1])
		}
	}
	return fmt.Sprintf("Participant<%s: %s>", p.ID, strings.Join(parts, ", "))
}

// Utterance correspond à une ligne "*CHI: ..." et aux lignes %xxx qui la suivent.
type Utterance struct {
	Who      string // référence vers Participant.ID
	Words    []*Word
	Events   []Event // événements de portée énoncé ([^ ...])
	Comments []UtteranceComment
}

// Word est un token de l'énoncé (mot, ponctuation ou pause).
type Word struct {
	Text       string
	Kind       WordKind
	Events     []Event     // événements de portée mot, dans l'ordre source
	Morphology *Morphology // renseigné uniquement par l'analyse morphologique

	// Replacements : mots du premier [: ...], rendus (et analysés) à la place du mot
	Replacements []*Word
}

// Attach ajoute un événement au mot. Le premier remplacement fixe Replacements.
func (w *Word) Attach(e Event) {
	w.Events = append(w.Events, e)
	if e.Category != EventReplacement || w.Replacements != nil {
		return
	}
	for _, text := range strings.Fields(e.Payload) {
		w.Replacements = append(w.Replacements, &Word{Text: text, Kind: WordRegular})
	}
}

// Analyzable retourne les mots à soumettre à l'analyse morphologique :
// les mots de remplacement s'il y en a, sinon le mot lui-même (s'il est ordinaire).
func (w *Word) Analyzable() []*Word {
	if len(w.Replacements) > 0 {
		return w.Replacements
	}
	if w.Kind != WordRegular {
		return nil
	}
	return []*Word{w}
}

// Group indique si le mot porte des événements rendus à côté de lui (dans un <g>).
func (w Word) Group() bool {
	for _, e := range w.Events {
		if e.Rule.Form != FormReplacement {
			return true
		}
	}
	return false
}

// Event est un code entre crochets ([/], [* m], [^ ...]).
type Event struct {
	Raw      string // texte brut, crochets compris
	Category EventCategory
	Payload  string // contenu libre après le préfixe (ex: "3" pour [x 3])
	Rule     EventRule
}

// WordScoped vaut true si l'événement s'attache au mot précédent.
func (e Event) WordScoped() bool {
	return e.Rule.Scope == ScopeWord
}

func (e Event) String() string {
	return e.Raw
}

// ClassifyEvent construit un Event à partir du texte brut entre crochets.
// Fonction pure : seule la forme du préfixe compte.
func ClassifyEvent(raw string) (Event, bool) {
	rule, ok := LookupEventRule(raw)
	if !ok {
		return Event{}, false
	}
	ev := Event{Raw: raw, Category: rule.Category, Rule: rule}
	if rule.Open() {
		inner := strings.TrimSuffix(raw[len(rule.Prefix):], "]")
		ev.Payload = strings.TrimSpace(inner)
	}
	return ev, true
}

// UtteranceComment correspond à une ligne "%com: ..." rattachée à un énoncé.
type UtteranceComment struct {
	Code  string // code brut (com, act...)
	Tier  CommentTier
	Value string
}

// Analysis est un couple (radical, partie du discours) renvoyé par l'analyseur.
type Analysis struct {
	Stem string
	POS  string
}

// SentinelAnalysis remplace l'analyse d'un mot inintelligible.
var SentinelAnalysis = Analysis{Stem: "####", POS: "####"}

// Morphology porte le résultat de l'analyse morphologique d'un mot.
type Morphology struct {
	Untranscribed bool
	Analyses      []Analysis
}

// Stems joint les radicaux avec "; " (un par analyse).
func (m Morphology) Stems() string {
	out := make([]string, 0, len(m.Analyses))
	for _, a := range m.Analyses {
		out = append(out, a.Stem)
	}
	return strings.Join(out, "; ")
}

// POS joint les parties du discours avec "; ".
func (m Morphology) POS() string {
	out := make([]string, 0, len(m.Analyses))
	for _, a := range m.Analyses {
		out = append(out, a.POS)
	}
	return strings.Join(out, "; ")
}
