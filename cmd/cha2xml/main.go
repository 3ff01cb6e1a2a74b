package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/patrickprogramme/cha2xml/internal/app"
	"github.com/patrickprogramme/cha2xml/internal/assets"
	"github.com/patrickprogramme/cha2xml/internal/bootstrap"
	"github.com/patrickprogramme/cha2xml/internal/clipboard"
	"github.com/patrickprogramme/cha2xml/internal/config"
	"github.com/patrickprogramme/cha2xml/internal/morph"
	"github.com/patrickprogramme/cha2xml/internal/render"
	"github.com/patrickprogramme/cha2xml/internal/ui"
)

const defaultTemplatesDir = "templates"

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	// .env facultatif : les variables CHA2XML_* peuvent y être définies
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	// crée le fichier depuis l'exemple embarqué au premier lancement
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)
	logger.Debug("configuration", "path", cfg.Path(), "workers", cfg.Workers)
	tui := ui.NewTerminal(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.ExportTemplates {
		return exportTemplates(ctx, cfg, tui)
	}

	renderer, err := buildRenderer(cfg)
	if err != nil {
		logger.Error("templates", "error", err)
		return 1
	}
	logger.Debug("templates chargés", "dir", cfg.TemplatesDir, "names", renderer.TemplateNames())

	var analyzer morph.Analyzer
	if cfg.Analyzer.Enabled {
		warnings, err := cfg.ValidateAnalyzerPresence()
		for _, w := range warnings {
			logger.Warn(w)
		}
		if err != nil {
			logger.Error("analyseur", "error", err)
			return 1
		}
		cached, closeCache, err := morph.Init(cfg)
		if err != nil {
			logger.Error("analyseur", "error", err)
			return 1
		}
		defer func() {
			if err := closeCache(); err != nil {
				logger.Warn("fermeture du cache", "error", err)
			}
		}()
		analyzer = cached
	}

	report, err := app.New(cfg, tui, renderer, analyzer, logger).Run(ctx)
	if report != nil {
		tui.PrintInfo(ctx, report.Pretty())
	}
	if err != nil {
		logger.Error("conversion", "error", err)
		return 1
	}

	if flags.Copy {
		text := report.Pretty()
		if len(report.StatsTable) > 0 {
			text = string(report.StatsTable)
		}
		if err := clipboard.Copy(text); err != nil {
			tui.PrintError(ctx, fmt.Sprintf("presse-papier : %v", err))
		} else {
			tui.PrintInfo(ctx, "Copié dans le presse-papier.")
		}
	}

	if !report.OK() {
		return 1
	}
	return 0
}

// buildRenderer : templates_dir s'il est configuré (complété par les templates
// embarqués manquants), sinon les templates embarqués.
func buildRenderer(cfg *config.Config) (*render.Renderer, error) {
	if cfg.TemplatesDir == "" {
		r := render.New()
		return r, r.ParseNow()
	}
	if err := bootstrap.EnsureTemplatesPresent(cfg.TemplatesDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
		return nil, err
	}
	return render.FromDir(cfg.TemplatesDir)
}

func exportTemplates(ctx context.Context, cfg *config.Config, tui ui.Interface) int {
	dir := cfg.TemplatesDir
	if dir == "" {
		dir = defaultTemplatesDir
	}
	status, err := bootstrap.ExportDefaults(assets.Embedded, "templates", dir, false)

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tui.PrintInfo(ctx, fmt.Sprintf("%-40s %s", name, status[name]))
	}
	if err != nil {
		slog.Error("export des templates", "dir", dir, "error", err)
		return 1
	}
	return 0
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", config.DefaultPath, "fichier de configuration")
	flag.StringVar(&f.SourceDir, "src", "", "dossier des transcriptions .cha (remplace source_dir)")
	flag.StringVar(&f.OutputDir, "out", "", "dossier de sortie XML (remplace output_dir)")
	flag.IntVar(&f.Workers, "workers", 0, "nombre de conversions en parallèle")
	flag.BoolVar(&f.Morph, "morph", false, "ajouter l'analyse morphologique (etana)")
	flag.BoolVar(&f.Stats, "stats", false, "écrire le tableau de statistiques TSV")
	flag.BoolVar(&f.Copy, "copy", false, "copier le résumé (ou le TSV) dans le presse-papier")
	flag.BoolVar(&f.ExportTemplates, "export-templates", false, "écrire les templates embarqués dans templates_dir puis quitter")
	flag.Parse()
	return f
}
