package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/cha2xml/internal/fsutil"
)

// migrations[v] fait passer une config de la version v à v+1.
var migrations = map[int]func(*Config){
	// 0 -> 1 : les fichiers sans section stats n'avaient pas de sortie
	0: func(c *Config) {
		if c.Stats.Output == "" {
			c.Stats.Output = "./data.tsv"
		}
	},
}

// upgrade sauvegarde le fichier, applique les migrations depuis cfg.ConfigVersion
// puis réécrit le fichier. En cas d'échec d'écriture, la sauvegarde est remise en place.
func upgrade(cfg *Config) error {
	if cfg.configFilePath == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu")
	}
	from := cfg.ConfigVersion

	original, err := os.ReadFile(cfg.configFilePath)
	if err != nil {
		return fmt.Errorf("lecture avant migration : %w", err)
	}
	backup := cfg.configFilePath + ".bak." + time.Now().Format("20060102T150405")
	if err := fsutil.WriteFileAtomic(backup, original, 0o644); err != nil {
		return fmt.Errorf("sauvegarde %s : %w", backup, err)
	}

	for v := from; v < CurrentConfigVersion; v++ {
		if step, ok := migrations[v]; ok {
			step(cfg)
		}
	}
	cfg.ConfigVersion = CurrentConfigVersion

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encodage YAML : %w", err)
	}
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, out, 0o644); err != nil {
		_ = fsutil.WriteFileAtomic(cfg.configFilePath, original, 0o644)
		return fmt.Errorf("écriture de %s : %w", cfg.configFilePath, err)
	}

	slog.Info("configuration migrée", "from", from, "to", CurrentConfigVersion, "backup", backup)
	return nil
}
