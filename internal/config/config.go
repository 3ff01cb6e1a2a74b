package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/patrickprogramme/cha2xml/internal/assets"
	"github.com/patrickprogramme/cha2xml/internal/bootstrap"
)

const CurrentConfigVersion = 1

// DefaultPath : fichier de configuration lu quand aucun chemin n'est fourni.
const DefaultPath = "cha2xml.yaml"

// Config : paramètres de l'application.
// Priorité : ENV > YAML > valeurs par défaut (tags env-default).
type Config struct {
	// Chemins
	SourceDir    string `yaml:"source_dir"    env:"CHA2XML_SOURCE_DIR"    env-default:"./cha_transcripts"`
	OutputDir    string `yaml:"output_dir"    env:"CHA2XML_OUTPUT_DIR"    env-default:"./xml_files"`
	TemplatesDir string `yaml:"templates_dir" env:"CHA2XML_TEMPLATES_DIR"`

	// Conversion parallèle
	Workers int `yaml:"workers" env:"CHA2XML_WORKERS" env-default:"4"`

	Log      LogConfig      `yaml:"log"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Stats    StatsConfig    `yaml:"stats"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// LogConfig : niveau (debug|info|warn|error) et format (text|json) des logs.
type LogConfig struct {
	Level  string `yaml:"level"  env:"CHA2XML_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"CHA2XML_LOG_FORMAT" env-default:"text"`
}

// AnalyzerConfig : analyseur morphologique externe (etana).
type AnalyzerConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"CHA2XML_ANALYZER_ENABLED"`
	Name      string        `yaml:"name"       env:"CHA2XML_ANALYZER_NAME"      env-default:"etana"`
	Path      string        `yaml:"path"       env:"CHA2XML_ANALYZER_PATH"`
	DictPath  string        `yaml:"dict_path"  env:"CHA2XML_ANALYZER_DICT_PATH" env-default:"etana"`
	Timeout   time.Duration `yaml:"timeout"    env:"CHA2XML_ANALYZER_TIMEOUT"   env-default:"10s"`
	CachePath string        `yaml:"cache_path" env:"CHA2XML_ANALYZER_CACHE_PATH"`

	// ResolvedPath contient le chemin effectif vers l'exécutable
	ResolvedPath string `yaml:"-"`
}

// StatsConfig : tableau de statistiques (TSV) produit après conversion.
type StatsConfig struct {
	Enabled bool   `yaml:"enabled" env:"CHA2XML_STATS_ENABLED"`
	Output  string `yaml:"output"  env:"CHA2XML_STATS_OUTPUT" env-default:"./data.tsv"`
}

// Path retourne le fichier d'où la configuration a été lue.
func (c *Config) Path() string {
	return c.configFilePath
}

// Load lit la config ; si le fichier n'existe pas, l'exemple embarqué est copié d'abord.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	var cfg Config
	if err := cleanenv.ParseYAML(bytes.NewReader(data), &cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	// la migration ne voit que le contenu du fichier
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := upgrade(&cfg); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}

	// variables d'environnement puis valeurs par défaut pour les champs restés vides
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("lecture de l'environnement : %w", err)
	}
	cfg.normalizeConfig()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalizeConfig() {
	c.SourceDir = filepath.Clean(c.SourceDir)
	c.OutputDir = filepath.Clean(c.OutputDir)
	if strings.TrimSpace(c.TemplatesDir) != "" {
		c.TemplatesDir = filepath.Clean(c.TemplatesDir)
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	c.Log.Level = strings.TrimSpace(strings.ToLower(c.Log.Level))
	c.Log.Format = strings.TrimSpace(strings.ToLower(c.Log.Format))

	c.Stats.Output = strings.TrimSpace(c.Stats.Output)
	c.Analyzer.CachePath = strings.TrimSpace(c.Analyzer.CachePath)

	c.ResolveAnalyzerPath()
}

// ResolveAnalyzerPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié Analyzer.Name ou Analyzer.Path.
func (c *Config) ResolveAnalyzerPath() {
	if c == nil {
		return
	}

	c.Analyzer.Name = strings.TrimSpace(c.Analyzer.Name)
	if c.Analyzer.Name == "" {
		c.Analyzer.Name = "etana"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.Analyzer.Name), ".exe") {
		c.Analyzer.Name = c.Analyzer.Name + ".exe"
	}

	exeName := c.Analyzer.Name
	cfgPath := strings.TrimSpace(c.Analyzer.Path)
	if cfgPath == "" {
		c.Analyzer.ResolvedPath = "./" + exeName
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// chemin déjà terminé par l'exécutable, sinon répertoire
	if filepath.Base(cleanPath) == exeName {
		c.Analyzer.ResolvedPath = cleanPath
	} else {
		c.Analyzer.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
