package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// --- Tests pour ParseParticipants ------------------------------------------

func TestParseParticipants(t *testing.T) {
	ps, err := ParseParticipants("CHI Mari Target_Child , MOT Mother")
	require.NoError(t, err)
	require.Len(t, ps, 2)

	assert.Equal(t, model.Participant{ID: "CHI", Name: "Mari", Role: "Target_Child"}, *ps[0])
	assert.Equal(t, model.Participant{ID: "MOT", Role: "Mother"}, *ps[1])
}

func TestParseParticipants_Malformed(t *testing.T) {
	for _, in := range []string{"CHI", "CHI Mari Big Target_Child", "CHI Target_Child , MOT"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseParticipants(in)
			assert.ErrorIs(t, err, ErrMalformedParticipants)
		})
	}
}

// --- Tests pour ApplyID ----------------------------------------------------

func TestApplyID_JoinsMetadata(t *testing.T) {
	ps, err := ParseParticipants("CHI Target_Child , MOT Mother")
	require.NoError(t, err)

	matched, err := ApplyID("eng|corpus1|CHI|2;3.10|male|||Target_Child||", ps)
	require.NoError(t, err)
	assert.True(t, matched)

	chi := ps[0]
	assert.Equal(t, "CHI", chi.ID)
	assert.Equal(t, "eng", chi.Language)
	assert.Equal(t, "corpus1", chi.Corpus)
	assert.Equal(t, "P2Y3M10D", chi.Age)
	assert.Equal(t, "male", chi.Sex)
	assert.Equal(t, "Target_Child", chi.Role)
	assert.Empty(t, chi.Group)
	assert.Empty(t, chi.SES)

	// MOT n'est pas touché
	assert.Empty(t, ps[1].Language)
}

func TestApplyID_WithoutTrailingBar(t *testing.T) {
	ps := []*model.Participant{{ID: "MOT", Role: "Mother"}}
	matched, err := ApplyID("est|vija|MOT||female|||Mother||x", ps)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, "x", ps[0].Custom)
	assert.Empty(t, ps[0].Age)
}

func TestApplyID_UnknownParticipantIgnored(t *testing.T) {
	ps := []*model.Participant{{ID: "CHI", Role: "Target_Child"}}
	matched, err := ApplyID("eng|corpus1|FAT|||||Father||", ps)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, model.Participant{ID: "CHI", Role: "Target_Child"}, *ps[0])
}

func TestApplyID_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"too few fields", "eng|corpus1|CHI", ErrMalformedID},
		{"too many fields", "eng|c|CHI|||||Target_Child|||x|", ErrMalformedID},
		{"missing language", "|corpus1|CHI|||||Target_Child||", ErrInvalidParticipant},
		{"missing role", "eng|corpus1|CHI|||||||", ErrInvalidParticipant},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ps := []*model.Participant{{ID: "CHI", Role: "Target_Child"}}
			_, err := ApplyID(tc.in, ps)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// --- Tests pour NormalizeAge -----------------------------------------------

func TestNormalizeAge(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2;3.10", "P2Y3M10D"},
		{"2;03.05", "P2Y3M5D"},
		{"10;11.30", "P10Y11M30D"},
		{"1;06.", ""},
		{"1;06", ""},
		{"2;3x10", ""},
		{"", ""},
		{"P2Y3M10D", ""},
		{"abc", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeAge(tc.in))
		})
	}
}

func TestNormalizeAge_OwnOutputIsStable(t *testing.T) {
	out := NormalizeAge("2;3.10")
	// la forme normalisée n'est pas une notation CHAT : la renormaliser donne ""
	assert.Equal(t, "", NormalizeAge(out))
	assert.Equal(t, NormalizeAge(NormalizeAge(out)), NormalizeAge(out))
}
