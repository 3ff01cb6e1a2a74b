package model

import (
	"sort"
	"strings"
)

// WordKind classe un token d'énoncé : mot ordinaire, ponctuation ou pause.
type WordKind string

const (
	WordRegular     WordKind = "regular"
	WordPeriod      WordKind = "period"
	WordExclamation WordKind = "exclamation"
	WordQuestion    WordKind = "question"
	WordComma       WordKind = "comma"
	WordPause       WordKind = "pause"
)

// PauseMarker est la forme littérale d'une pause simple.
const PauseMarker = "(.)"

// wordKinds : table unique littéral -> catégorie
var wordKinds = map[string]WordKind{
	".":         WordPeriod,
	"!":         WordExclamation,
	"?":         WordQuestion,
	",":         WordComma,
	PauseMarker: WordPause,
}

// asciiPunctuation reprend l'ensemble de ponctuation ASCII (équivalent string.punctuation)
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ClassifyWord retourne la catégorie d'un token à partir de son texte littéral.
// ok == false signale un signe de ponctuation isolé qui n'a pas de rendu connu.
func ClassifyWord(text string) (WordKind, bool) {
	if k, found := wordKinds[text]; found {
		return k, true
	}
	if len(text) == 1 && strings.ContainsRune(asciiPunctuation, rune(text[0])) {
		return "", false
	}
	return WordRegular, true
}

// IsPunctuation vaut true pour . ! ? et ,
func (k WordKind) IsPunctuation() bool {
	return k == WordPeriod || k == WordExclamation || k == WordQuestion || k == WordComma
}

// PunctuationType donne la valeur de l'attribut type de <t> (p, e, q).
// La virgule n'a pas d'équivalent : elle est rendue comme tagMarker.
func (k WordKind) PunctuationType() string {
	switch k {
	case WordPeriod:
		return "p"
	case WordExclamation:
		return "e"
	case WordQuestion:
		return "q"
	case WordComma:
		return "comma"
	default:
		return ""
	}
}

// EventScope indique à quoi s'attache un événement entre crochets.
type EventScope string

const (
	ScopeWord      EventScope = "word"
	ScopeUtterance EventScope = "utterance"
)

// EventCategory est la catégorie fermée d'un code entre crochets.
type EventCategory string

const (
	EventContrastiveStressing     EventCategory = "Contrastive Stressing"
	EventStressing                EventCategory = "Stressing"
	EventErrorMarking             EventCategory = "Error Marking"
	EventReformulation            EventCategory = "Reformulation"
	EventRetracing                EventCategory = "Retracing"
	EventRepetition               EventCategory = "Repetition"
	EventOverlapPrecedes          EventCategory = "Overlap Precedes"
	EventOverlapFollows           EventCategory = "Overlap Follows"
	EventBestGuess                EventCategory = "Best Guess"
	EventParalinguisticMaterial   EventCategory = "Paralinguistic Material"
	EventPostcodes                EventCategory = "Postcodes"
	EventCommentOnMainLine        EventCategory = "Comment on Main Line"
	EventExplanation              EventCategory = "Explanation"
	EventReplacement              EventCategory = "Replacement"
	EventAlternativeTranscription EventCategory = "Alternative Transcription"
	EventComplexLocalEvent        EventCategory = "Complex Local Event"
	EventMultipleRepetition       EventCategory = "Multiple Repetition"
)

// EventForm décrit la forme XML produite pour une catégorie.
type EventForm string

const (
	// FormInline : <element type="..."/> ou <element type="...">payload</element>
	FormInline EventForm = "inline"
	// FormTimes : <r times="payload"/>
	FormTimes EventForm = "times"
	// FormReplacement : <replacement><w>..</w></replacement> à l'intérieur du <w>
	FormReplacement EventForm = "replacement"
	// FormFreecode : <freecode>code brut</freecode>
	FormFreecode EventForm = "freecode"
)

// EventRule associe un préfixe de crochet à sa catégorie et à son rendu.
// Un préfixe sans "]" final accepte un contenu libre (payload).
type EventRule struct {
	Prefix   string
	Category EventCategory
	Scope    EventScope
	Form     EventForm
	Element  string
	Type     string
}

// Open indique si le préfixe attend un contenu avant le "]".
func (r EventRule) Open() bool {
	return !strings.HasSuffix(r.Prefix, "]")
}

// EventRules : table unique de correspondance préfixe -> catégorie.
var EventRules = []EventRule{
	{"[!!]", EventContrastiveStressing, ScopeWord, FormInline, "k", "contrastive stressing"},
	{"[!]", EventStressing, ScopeWord, FormInline, "k", "stressing"},
	{"[*", EventErrorMarking, ScopeWord, FormInline, "error", ""},
	{"[///]", EventReformulation, ScopeWord, FormInline, "k", "retracing reformulation"},
	{"[//]", EventRetracing, ScopeWord, FormInline, "k", "retracing with correction"},
	{"[/]", EventRepetition, ScopeWord, FormInline, "k", "retracing"},
	{"[<]", EventOverlapPrecedes, ScopeWord, FormInline, "overlap", "overlap precedes"},
	{"[=!", EventParalinguisticMaterial, ScopeWord, FormInline, "ga", "paralinguistics"},
	{"[>]", EventOverlapFollows, ScopeWord, FormInline, "overlap", "overlap follows"},
	{"[?]", EventBestGuess, ScopeWord, FormInline, "k", "best guess"},
	{"[+", EventPostcodes, ScopeWord, FormInline, "postcode", ""},
	{"[%", EventCommentOnMainLine, ScopeWord, FormInline, "ga", "comments"},
	{"[=", EventExplanation, ScopeWord, FormInline, "ga", "explanation"},
	{"[:", EventReplacement, ScopeWord, FormReplacement, "replacement", ""},
	{"[=?", EventAlternativeTranscription, ScopeWord, FormInline, "ga", "alternative"},
	{"[^", EventComplexLocalEvent, ScopeUtterance, FormFreecode, "freecode", ""},
	{"[x", EventMultipleRepetition, ScopeWord, FormTimes, "r", ""},
}

// rulesByPrefixLen : même table triée du préfixe le plus long au plus court,
// pour que "[///]" ne soit jamais pris pour "[/]".
var rulesByPrefixLen = func() []EventRule {
	out := append([]EventRule(nil), EventRules...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Prefix) > len(out[j].Prefix)
	})
	return out
}()

// LookupEventRule retourne la règle dont le préfixe correspond à raw (plus long d'abord).
func LookupEventRule(raw string) (EventRule, bool) {
	for _, r := range rulesByPrefixLen {
		if strings.HasPrefix(raw, r.Prefix) {
			return r, true
		}
	}
	return EventRule{}, false
}

// CommentTier est la catégorie canonique d'une ligne %type.
type CommentTier string

const (
	TierActions         CommentTier = "actions"
	TierAddressee       CommentTier = "addressee"
	TierComments        CommentTier = "comments"
	TierErrCoding       CommentTier = "errcoding"
	TierExplanation     CommentTier = "explanation"
	TierParalinguistics CommentTier = "paralinguistics"
)

// commentTiers : code court CHAT -> catégorie
var commentTiers = map[string]CommentTier{
	"act": TierActions,
	"add": TierAddressee,
	"com": TierComments,
	"err": TierErrCoding,
	"exp": TierExplanation,
	"par": TierParalinguistics,
}

// ParseCommentTier convertit un code (com, act...) en catégorie.
func ParseCommentTier(code string) (CommentTier, bool) {
	t, ok := commentTiers[code]
	return t, ok
}

func (t CommentTier) String() string {
	return string(t)
}
