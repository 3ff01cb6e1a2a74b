package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/cha2xml/internal/assets"
)

func TestEnsureConfigPresent(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "conf", "cha2xml.yaml")

	require.NoError(t, EnsureConfigPresent(dst, assets.Embedded, assets.DefaultConfigAsset))
	want, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	require.NoError(t, err)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// fichier existant : conservé tel quel
	require.NoError(t, os.WriteFile(dst, []byte("workers: 2\n"), 0o644))
	require.NoError(t, EnsureConfigPresent(dst, assets.Embedded, assets.DefaultConfigAsset))
	got, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "workers: 2\n", string(got))
}

func TestEnsureConfigPresent_MissingAsset(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "cha2xml.yaml")
	err := EnsureConfigPresent(dst, fstest.MapFS{}, "absent.yaml")
	require.Error(t, err)
	assert.NoFileExists(t, dst)
}

func TestEnsureTemplatesPresent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")

	require.NoError(t, EnsureTemplatesPresent(dir, assets.Embedded, assets.DefaultTemplatePaths))
	dest := filepath.Join(dir, assets.DocumentTemplate)
	assert.FileExists(t, dest)

	require.NoError(t, os.WriteFile(dest, []byte("local"), 0o644))
	require.NoError(t, EnsureTemplatesPresent(dir, assets.Embedded, assets.DefaultTemplatePaths))
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "local", string(got))
}

func TestEnsureTemplatesPresent_NotADir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "templates")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.Error(t, EnsureTemplatesPresent(file, assets.Embedded, assets.DefaultTemplatePaths))
}

func TestExportDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/a.tmpl":     {Data: []byte("A")},
		"templates/sub/b.tmpl": {Data: []byte("B")},
		"templates/c.tmpl":     {Data: []byte("C")},
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tmpl"), []byte("A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.tmpl"), []byte("local"), 0o644))

	status, err := ExportDefaults(fsys, "templates", dir, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"templates/a.tmpl":     StatusUnchanged,
		"templates/sub/b.tmpl": StatusWritten,
		"templates/c.tmpl":     StatusSkipped,
	}, status)

	got, err := os.ReadFile(filepath.Join(dir, "sub", "b.tmpl"))
	require.NoError(t, err)
	assert.Equal(t, "B", string(got))

	status, err = ExportDefaults(fsys, "templates", dir, true)
	require.NoError(t, err)
	assert.Equal(t, StatusOverwritten, status["templates/c.tmpl"])

	got, err = os.ReadFile(filepath.Join(dir, "c.tmpl"))
	require.NoError(t, err)
	assert.Equal(t, "C", string(got))

	backups, err := filepath.Glob(filepath.Join(dir, "c.tmpl.bak.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestRelTo(t *testing.T) {
	assert.Equal(t, ".", relTo("templates", "templates"))
	assert.Equal(t, "sub/b.tmpl", relTo("templates", "templates/sub/b.tmpl"))
	assert.Equal(t, "x.tmpl", relTo(".", "x.tmpl"))
}
