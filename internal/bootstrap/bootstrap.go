package bootstrap

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/cha2xml/internal/fsutil"
)

// Statuts retournés par ExportDefaults, par fichier embarqué.
const (
	StatusWritten     = "written"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped (different)"
	StatusOverwritten = "overwritten"
)

const filePerm = 0o644

// ExportDefaults recopie tout ce qui se trouve sous srcPrefix dans fsys vers destDir,
// hiérarchie comprise. Un fichier existant et différent n'est remplacé que si force
// est vrai, après sauvegarde horodatée.
func ExportDefaults(fsys fs.FS, srcPrefix, destDir string, force bool) (map[string]string, error) {
	status := make(map[string]string)

	err := fs.WalkDir(fsys, srcPrefix, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel := relTo(srcPrefix, p)
		dest := filepath.Join(destDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("lecture de la ressource embarquée %s : %w", p, err)
		}

		existing, err := os.ReadFile(dest)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if err := fsutil.WriteFileAtomic(dest, data, filePerm); err != nil {
				return err
			}
			status[p] = StatusWritten
		case err != nil:
			return fmt.Errorf("lecture de %s : %w", dest, err)
		case bytes.Equal(existing, data):
			status[p] = StatusUnchanged
		case !force:
			status[p] = StatusSkipped
		default:
			backup := dest + ".bak." + time.Now().Format("20060102T150405")
			if err := os.WriteFile(backup, existing, filePerm); err != nil {
				return fmt.Errorf("sauvegarde de %s : %w", dest, err)
			}
			if err := fsutil.WriteFileAtomic(dest, data, filePerm); err != nil {
				return err
			}
			status[p] = StatusOverwritten
		}
		return nil
	})
	return status, err
}

// EnsureTemplatesPresent dépose dans tplDir chaque template de srcFiles (chemins
// DANS fsys) qui n'y est pas encore. Un template déjà présent n'est jamais remplacé,
// ce qui préserve les modifications locales.
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) error {
	if st, err := os.Stat(tplDir); err == nil && !st.IsDir() {
		return fmt.Errorf("%s existe mais n'est pas un répertoire", tplDir)
	}
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return fmt.Errorf("création du dossier de templates %s : %w", tplDir, err)
	}

	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, path.Base(src))
		if _, err := copyIfMissing(fsys, src, dest); err != nil {
			return err
		}
	}
	return nil
}

// copyIfMissing écrit la ressource src vers dest si dest n'existe pas.
// Retourne true si le fichier a été écrit.
func copyIfMissing(fsys fs.FS, src, dest string) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("test de %s : %w", dest, err)
	}

	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return false, fmt.Errorf("ressource embarquée %s : %w", src, err)
	}
	if err := fsutil.WriteFileAtomic(dest, data, filePerm); err != nil {
		return false, fmt.Errorf("écriture de %s : %w", dest, err)
	}
	return true, nil
}

// relTo : chemin de p relatif à prefix, en notation fs.FS (slashs).
func relTo(prefix, p string) string {
	if p == prefix {
		return "."
	}
	if prefix == "." {
		return p
	}
	return p[len(prefix)+1:]
}
