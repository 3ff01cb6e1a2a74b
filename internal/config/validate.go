package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
)

// Validate vérifie les règles métier de la configuration chargée (Load l'appelle).
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	if strings.TrimSpace(c.SourceDir) == "" {
		return fmt.Errorf("source_dir est vide")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir est vide")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers doit être > 0 (reçu %d)", c.Workers)
	}
	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("log.level invalide : %q", c.Log.Level)
	}
	if !slices.Contains(validFormats, c.Log.Format) {
		return fmt.Errorf("log.format invalide : %q", c.Log.Format)
	}
	if c.Stats.Enabled && c.Stats.Output == "" {
		return fmt.Errorf("stats.output est vide alors que stats.enabled est actif")
	}
	if c.Analyzer.Enabled && c.Analyzer.Timeout < 0 {
		return fmt.Errorf("analyzer.timeout doit être >= 0 (reçu %s)", c.Analyzer.Timeout)
	}
	return nil
}

// ValidateAnalyzerPresence vérifie de manière statique que l'exécutable résolu existe.
// Retourne des avertissements (non fataux) et une erreur si c'est critique.
func (c *Config) ValidateAnalyzerPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	c.ResolveAnalyzerPath()

	p := strings.TrimSpace(c.Analyzer.ResolvedPath)
	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent de l'analyseur n'existe pas : %s", parent))
			return warnings, nil
		}
		return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin de l'analyseur n'est pas un répertoire : %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("analyseur introuvable à l'emplacement configuré : %s", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour l'analyseur est un répertoire : %s", p)
	}
	return warnings, nil
}
