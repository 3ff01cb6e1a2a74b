package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/patrickprogramme/cha2xml/internal/config"
	"github.com/patrickprogramme/cha2xml/internal/fsutil"
	"github.com/patrickprogramme/cha2xml/internal/morph"
	"github.com/patrickprogramme/cha2xml/internal/render"
	"github.com/patrickprogramme/cha2xml/internal/ui"
)

// CLIFlags contient les valeurs des flags, appliquées par-dessus la config.
type CLIFlags struct {
	ConfigPath      string
	SourceDir       string
	OutputDir       string
	Workers         int
	Morph           bool
	Stats           bool
	Copy            bool
	ExportTemplates bool
}

// Apply reporte les flags renseignés dans cfg.
func (f *CLIFlags) Apply(cfg *config.Config) {
	if f.SourceDir != "" {
		cfg.SourceDir = f.SourceDir
	}
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Morph {
		cfg.Analyzer.Enabled = true
	}
	if f.Stats {
		cfg.Stats.Enabled = true
	}
}

// App orchestre une conversion par lots : recherche, conversion parallèle,
// statistiques.
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	renderer *render.Renderer
	analyzer morph.Analyzer // nil : pas d'analyse morphologique
	logger   *slog.Logger
}

// New construit l'application. analyzer peut être nil.
func New(cfg *config.Config, uiClient ui.Interface, renderer *render.Renderer, analyzer morph.Analyzer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		renderer: renderer,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Run convertit toutes les transcriptions de source_dir. L'échec d'un fichier est
// consigné dans le rapport sans interrompre les autres ; seule l'annulation de ctx
// (ou une erreur d'infrastructure) arrête le lot.
func (a *App) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := a.logger.With("run_id", report.RunID)

	paths, err := fsutil.FindTranscripts(a.cfg.SourceDir)
	if err != nil {
		return report, fmt.Errorf("recherche des transcriptions : %w", err)
	}
	log.Info("conversion", "files", len(paths), "src", a.cfg.SourceDir, "out", a.cfg.OutputDir, "morph", a.analyzer != nil)
	if len(paths) == 0 {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Aucune transcription %s dans %s", fsutil.TranscriptExt, a.cfg.SourceDir))
		return report, nil
	}

	results := make([]FileResult, len(paths))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := a.convertFile(gctx, p)
			results[i] = res
			a.ui.Progress(gctx, int(done.Add(1)), len(paths), p)

			if res.Err != nil {
				if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
					return res.Err
				}
				log.Warn("conversion échouée", "path", p, "error", res.Err)
				return nil
			}
			log.Debug("converti", "path", p, "output", res.Output, "words", res.Words)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, res := range results {
		switch {
		case res.Path == "":
			// jamais lancé (annulation)
		case res.Err != nil:
			report.Failed = append(report.Failed, res)
		default:
			report.Converted = append(report.Converted, res)
			report.Words += res.Words
			report.Morph.Add(res.Morph)
		}
	}
	if waitErr != nil {
		return report, fmt.Errorf("conversion interrompue : %w", waitErr)
	}

	if a.cfg.Stats.Enabled {
		if err := a.writeStats(ctx, report); err != nil {
			return report, err
		}
		log.Info("statistiques écrites", "path", report.StatsPath, "rows", report.StatsRows, "skipped", len(report.Skipped))
	}

	log.Info("terminé", "converted", len(report.Converted), "failed", len(report.Failed))
	return report, nil
}
