package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/cha2xml/internal/chat"
	"github.com/patrickprogramme/cha2xml/internal/config"
	"github.com/patrickprogramme/cha2xml/internal/morph"
	"github.com/patrickprogramme/cha2xml/internal/render"
	"github.com/patrickprogramme/cha2xml/internal/stats"
	"github.com/patrickprogramme/cha2xml/pkg/model"
)

const chaTemplate = `@UTF8
@Begin
@Languages:	est
@Participants:	CHI Mari Target_Child , MOT Mother
@ID:	est|vija|CHI|3;01.02|female|||Target_Child||
@ID:	est|vija|MOT|||||Mother||
@PID:	11312/a-1
@Date:	01-Jan-2015
@Comment:	test
*CHI:	%s
*MOT:	vaata seda !
@End
`

// fakeUI garde les messages affichés.
type fakeUI struct {
	mu       sync.Mutex
	infos    []string
	errs     []string
	progress int
}

func (f *fakeUI) PrintInfo(ctx context.Context, s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos = append(f.infos, s)
}

func (f *fakeUI) PrintError(ctx context.Context, s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, s)
}

func (f *fakeUI) Progress(ctx context.Context, done, total int, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress++
}

// fakeAnalyzer : "xxx" inintelligible, "boom" en panne, le reste analysé.
var fakeAnalyzer = morph.AnalyzerFunc(func(ctx context.Context, word string) ([]model.Analysis, error) {
	switch word {
	case "xxx":
		return nil, morph.ErrUnintelligible
	case "boom":
		return nil, errors.New("analyseur en panne")
	}
	return []model.Analysis{{Stem: word, POS: "_S_"}}, nil
})

// writeCha écrit une transcription valide dont l'énoncé de CHI est chiLine.
func writeCha(t *testing.T, root, rel, chiLine string) string {
	t.Helper()
	return writeRaw(t, root, rel, strings.Replace(chaTemplate, "%s", chiLine, 1))
}

func writeRaw(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		SourceDir: filepath.Join(dir, "cha"),
		OutputDir: filepath.Join(dir, "xml"),
		Workers:   2,
		Log:       config.LogConfig{Level: "info", Format: "text"},
		Stats:     config.StatsConfig{Output: filepath.Join(dir, "data.tsv")},
	}
}

func TestRun_ConvertsTree(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Stats.Enabled = true
	writeCha(t, cfg.SourceDir, "vija/mari01.cha", "maja xxx .")
	writeCha(t, cfg.SourceDir, "vija/mari02.CHA", "auto [!] on .")
	bad := writeRaw(t, cfg.SourceDir, "vija/bad.cha", "@Languages:\test\nhello\n")

	u := &fakeUI{}
	a := New(cfg, u, render.New(), fakeAnalyzer, nil)
	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.OK())
	require.Len(t, report.Converted, 2)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, bad, report.Failed[0].Path)
	assert.ErrorIs(t, report.Failed[0].Err, chat.ErrUnrecognizedLine)
	assert.Equal(t, 3, u.progress)

	out := filepath.Join(cfg.OutputDir, "vija", "mari01.xml")
	assert.Equal(t, out, report.Converted[0].Output)
	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `<w untranscribed="unintelligible">xxx`)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "vija", "mari02.xml"))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "vija", "bad.xml"))

	// 2 mots par énoncé ; seul xxx est inconnu
	assert.Equal(t, morph.Summary{Words: 8, Analyzed: 7, Unintelligible: 1, Untranscribed: 1}, report.Morph)

	tsv, err := os.ReadFile(cfg.Stats.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(tsv)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(stats.Header, "\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "vija\tMari\t3\t2\t1\t1\t"), lines[1])
	assert.Equal(t, 2, report.StatsRows)
	assert.Equal(t, tsv, report.StatsTable)
}

func TestRun_WithoutAnalyzer(t *testing.T) {
	cfg := newTestConfig(t)
	writeCha(t, cfg.SourceDir, "a.cha", "maja .")

	report, err := New(cfg, &fakeUI{}, render.New(), nil, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Converted, 1)
	assert.True(t, report.OK())
	assert.Zero(t, report.Morph)
	// maja, vaata, seda
	assert.Equal(t, 3, report.Converted[0].Words)
	assert.Equal(t, 3, report.Words)

	doc, err := os.ReadFile(filepath.Join(cfg.OutputDir, "a.xml"))
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<mor")
	assert.NoFileExists(t, cfg.Stats.Output)
}

func TestRun_AnalyzerFailureStaysPerFile(t *testing.T) {
	cfg := newTestConfig(t)
	writeCha(t, cfg.SourceDir, "a.cha", "boom .")
	writeCha(t, cfg.SourceDir, "b.cha", "maja .")

	report, err := New(cfg, &fakeUI{}, render.New(), fakeAnalyzer, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Failed, 1)
	require.Len(t, report.Converted, 1)
	assert.Contains(t, report.Failed[0].Err.Error(), "boom")
	assert.Equal(t, filepath.Join(cfg.OutputDir, "b.xml"), report.Converted[0].Output)
}

func TestRun_NoTranscripts(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0o755))

	u := &fakeUI{}
	report, err := New(cfg, u, render.New(), nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Converted)
	require.Len(t, u.infos, 1)
	assert.Contains(t, u.infos[0], "Aucune transcription")
}

func TestRun_MissingSource(t *testing.T) {
	cfg := newTestConfig(t)

	_, err := New(cfg, &fakeUI{}, render.New(), nil, nil).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := newTestConfig(t)
	writeCha(t, cfg.SourceDir, "a.cha", "maja .")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(cfg, &fakeUI{}, render.New(), fakeAnalyzer, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Converted)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "a.xml"))
}

func TestCLIFlags_Apply(t *testing.T) {
	cfg := &config.Config{SourceDir: "cha", OutputDir: "xml", Workers: 4}

	(&CLIFlags{}).Apply(cfg)
	assert.Equal(t, "cha", cfg.SourceDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Analyzer.Enabled)

	(&CLIFlags{SourceDir: "in", OutputDir: "out", Workers: 8, Morph: true, Stats: true}).Apply(cfg)
	assert.Equal(t, "in", cfg.SourceDir)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Analyzer.Enabled)
	assert.True(t, cfg.Stats.Enabled)
}

func TestReport_Pretty(t *testing.T) {
	r := &Report{
		RunID:     "r1",
		Converted: []FileResult{{Path: "a.cha"}},
		Failed:    []FileResult{{Path: "b.cha", Err: errors.New("b.cha:3: ligne non reconnue")}},
		Words:     5,
		Morph:     morph.Summary{Words: 4, Analyzed: 3, Unintelligible: 1},
		StatsPath: "data.tsv",
		StatsRows: 1,
	}
	s := r.Pretty()
	assert.Contains(t, s, "Lot r1")
	assert.Contains(t, s, "convertis : 1")
	assert.Contains(t, s, "en échec  : 1")
	assert.Contains(t, s, "transcrits: 5 mots")
	assert.Contains(t, s, "mots      : 4 (analysés 3, inconnus 1, non transcrits 0)")
	assert.Contains(t, s, "stats     : data.tsv (1 lignes, 0 écartés)")
	assert.Contains(t, s, "b.cha:3: ligne non reconnue")
	assert.False(t, strings.HasSuffix(s, "\n"))
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("ignoré")
	logger.Warn("gardé", "path", "a.cha")

	out := buf.String()
	assert.NotContains(t, out, "ignoré")
	assert.Contains(t, out, `"msg":"gardé"`)
	assert.Contains(t, out, `"path":"a.cha"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{" WARN ", "WARN"},
		{"error", "ERROR"},
		{"info", "INFO"},
		{"bavard", "INFO"},
		{"", "INFO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in).String(), "level %q", tt.in)
	}
}
