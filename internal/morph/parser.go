package morph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// analysisRe : "radical //_S_ sg n, //", répété sur la ligne.
var analysisRe = regexp.MustCompile(`(\S+)\s+//(.*?)//`)

// ParseOutput lit la sortie d'etana : la première ligne reprend le mot,
// la seconde porte les analyses. Aucune analyse reconnue -> ErrUnintelligible.
func ParseOutput(out string) ([]model.Analysis, error) {
	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedOutput, out)
	}

	var res []model.Analysis
	for _, m := range analysisRe.FindAllStringSubmatch(lines[1], -1) {
		pos := strings.TrimSpace(m[2])
		pos = strings.TrimSpace(strings.TrimSuffix(pos, ","))
		if pos == "" {
			continue
		}
		res = append(res, model.Analysis{Stem: m[1], POS: pos})
	}
	if len(res) == 0 {
		return nil, ErrUnintelligible
	}
	return res, nil
}
