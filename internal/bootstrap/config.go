package bootstrap

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// EnsureConfigPresent crée dstPath à partir de l'asset embarqué s'il n'existe pas.
// Idempotent : un fichier existant n'est jamais touché.
func EnsureConfigPresent(dstPath string, fsys fs.FS, assetPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("création du dossier de %s : %w", dstPath, err)
	}

	written, err := copyIfMissing(fsys, assetPath, dstPath)
	if err != nil {
		return fmt.Errorf("configuration par défaut : %w", err)
	}
	if written {
		slog.Info("configuration par défaut créée", "path", dstPath)
	}
	return nil
}
