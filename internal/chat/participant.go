package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// listSep sépare les entrées de @Participants et @Languages.
const listSep = " , "

// idFields : nombre de champs d'un enregistrement @ID.
const idFields = 10

// ParseParticipants découpe la valeur de @Participants : "CHI Name Target_Child , MOT Mother".
func ParseParticipants(value string) ([]*model.Participant, error) {
	segments := strings.Split(value, listSep)
	out := make([]*model.Participant, 0, len(segments))
	for _, seg := range segments {
		fields := strings.Fields(seg)
		switch len(fields) {
		case 2:
			out = append(out, &model.Participant{ID: fields[0], Role: fields[1]})
		case 3:
			out = append(out, &model.Participant{ID: fields[0], Name: fields[1], Role: fields[2]})
		default:
			return nil, fmt.Errorf("%w: %q", ErrMalformedParticipants, seg)
		}
	}
	return out, nil
}

// ApplyID joint un enregistrement @ID au participant correspondant.
// Champs : language|corpus|id|age|sex|group|SES|role|education|custom.
// Un id inconnu est ignoré : matched vaut alors false.
func ApplyID(value string, participants []*model.Participant) (matched bool, err error) {
	fields := strings.Split(value, "|")
	// les lignes @ID se terminent en général par "|"
	if len(fields) == idFields+1 && fields[idFields] == "" {
		fields = fields[:idFields]
	}
	if len(fields) != idFields {
		return false, fmt.Errorf("%w: %d fields, want %d", ErrMalformedID, len(fields), idFields)
	}

	var p *model.Participant
	for _, cand := range participants {
		if cand.ID == fields[2] {
			p = cand
			break
		}
	}
	if p == nil {
		return false, nil
	}

	p.Language = fields[0]
	p.Corpus = fields[1]
	p.Age = NormalizeAge(fields[3])
	p.Sex = fields[4]
	p.Group = fields[5]
	p.SES = fields[6]
	p.Role = fields[7]
	p.Education = fields[8]
	p.Custom = fields[9]

	if err := validateParticipant(p); err != nil {
		return true, err
	}
	return true, nil
}

func validateParticipant(p *model.Participant) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidParticipant)
	case p.Role == "":
		return fmt.Errorf("%w: %s has no role", ErrInvalidParticipant, p.ID)
	case p.Language == "":
		return fmt.Errorf("%w: %s has no language", ErrInvalidParticipant, p.ID)
	}
	return nil
}

// ageRe : notation CHAT années;mois.jours
var ageRe = regexp.MustCompile(`^(\d+);(\d+)\.(\d+)`)

// NormalizeAge convertit "2;03.10" en "P2Y3M10D". Toute autre forme donne "".
func NormalizeAge(raw string) string {
	m := ageRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	n := make([]int, 3)
	for i := range n {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			// dépassement de capacité
			return ""
		}
		n[i] = v
	}
	return fmt.Sprintf("P%dY%dM%dD", n[0], n[1], n[2])
}
