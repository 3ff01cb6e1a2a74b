package morph

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// fakeEtana écrit un script qui imite la sortie d'etana.
func fakeEtana(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script shell")
	}
	script := `#!/bin/sh
read word
echo "$word"
case "$word" in
  xxx|qwz) echo "    ####" ;;
  crash) echo "dictionary missing" >&2; exit 3 ;;
  slow) exec sleep 5 ;;
  *) echo "    $word //_S_ sg n, //    $word //_S_ sg g, //" ;;
esac
`
	path := filepath.Join(t.TempDir(), "etana")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestEtana_Analyze(t *testing.T) {
	et := NewEtana("etana", fakeEtana(t), "dct", 0)
	require.NoError(t, et.CheckBinary())

	got, err := et.Analyze(context.Background(), "maja")
	require.NoError(t, err)
	assert.Equal(t, []model.Analysis{
		{Stem: "maja", POS: "_S_ sg n"},
		{Stem: "maja", POS: "_S_ sg g"},
	}, got)

	_, err = et.Analyze(context.Background(), "qwz")
	assert.ErrorIs(t, err, ErrUnintelligible)
}

func TestEtana_Crash(t *testing.T) {
	et := NewEtana("etana", fakeEtana(t), "", 0)
	_, err := et.Analyze(context.Background(), "crash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dictionary missing")
	assert.NotErrorIs(t, err, ErrUnintelligible)
}

func TestEtana_Timeout(t *testing.T) {
	et := NewEtana("etana", fakeEtana(t), "", 50*time.Millisecond)
	_, err := et.Analyze(context.Background(), "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEtana_BuildArgs(t *testing.T) {
	assert.Equal(t, []string{"-path", "dct"}, NewEtana("etana", "", "dct", 0).BuildArgs())
	assert.Empty(t, NewEtana("etana", "", "", 0).BuildArgs())
}

func TestEtana_CheckBinary(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, NewEtana("etana", filepath.Join(dir, "nope-etana"), "", 0).CheckBinary())
	assert.Error(t, NewEtana("etana", dir, "", 0).CheckBinary())

	var et *Etana
	assert.Error(t, et.CheckBinary())
}
