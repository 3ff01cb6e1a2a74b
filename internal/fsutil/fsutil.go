package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TranscriptExt : extension des transcriptions CHAT.
const TranscriptExt = ".cha"

// FindTranscripts parcourt root récursivement et retourne les fichiers .cha, triés.
func FindTranscripts(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dossier source %s : %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dossier source invalide : %s", root)
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), TranscriptExt) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// OutputPath calcule la sortie d'une transcription : même sous-dossier relatif
// sous outDir, extension remplacée par ext (".xml").
func OutputPath(srcRoot, srcPath, outDir, ext string) (string, error) {
	rel, err := filepath.Rel(srcRoot, srcPath)
	if err != nil {
		return "", fmt.Errorf("chemin relatif de %s : %w", srcPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s n'est pas sous %s", srcPath, srcRoot)
	}
	base := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(outDir, base+ext), nil
}

// WriteFileAtomic remplace destPath par data sans jamais laisser de fichier
// partiel : les octets passent par un temporaire du même dossier, renommé à la fin.
// Les dossiers parents sont créés au besoin.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("création de %s : %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destPath)+".*")
	if err != nil {
		return fmt.Errorf("fichier temporaire dans %s : %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s : %w", tmp.Name(), err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("écriture %s : %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s : %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("fermeture %s : %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("renommage vers %s : %w", destPath, err)
	}
	return nil
}
