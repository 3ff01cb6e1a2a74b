package app

import (
	"context"
	"fmt"

	"github.com/patrickprogramme/cha2xml/internal/chat"
	"github.com/patrickprogramme/cha2xml/internal/fsutil"
	"github.com/patrickprogramme/cha2xml/internal/morph"
	"github.com/patrickprogramme/cha2xml/internal/stats"
)

const (
	outputExt = ".xml"
	filePerm  = 0o644
)

// convertFile : .cha -> (morphologie) -> XML écrit sous output_dir.
func (a *App) convertFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}

	c, err := chat.ParseFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Words = c.WordCount()
	a.logger.Debug("transcription lue", "chat", c.String(), "words", res.Words)

	if a.analyzer != nil {
		sum, err := morph.Annotate(ctx, c, a.analyzer)
		res.Morph = sum
		if err != nil {
			res.Err = err
			return res
		}
	}

	doc, err := a.renderer.Document(c)
	if err != nil {
		res.Err = fmt.Errorf("%s : %w", path, err)
		return res
	}

	out, err := fsutil.OutputPath(a.cfg.SourceDir, path, a.cfg.OutputDir, outputExt)
	if err != nil {
		res.Err = err
		return res
	}
	if err := fsutil.WriteFileAtomic(out, doc, filePerm); err != nil {
		res.Err = fmt.Errorf("écriture de %s : %w", out, err)
		return res
	}
	res.Output = out
	return res
}

// writeStats relit les documents produits et écrit le tableau TSV.
func (a *App) writeStats(ctx context.Context, report *Report) error {
	outputs := make([]string, 0, len(report.Converted))
	for _, r := range report.Converted {
		outputs = append(outputs, r.Output)
	}

	rows, skipped, err := stats.Collect(ctx, outputs, a.cfg.Workers)
	if err != nil {
		return fmt.Errorf("statistiques : %w", err)
	}
	table, err := stats.Table(rows)
	if err != nil {
		return fmt.Errorf("statistiques : %w", err)
	}
	if err := fsutil.WriteFileAtomic(a.cfg.Stats.Output, table, filePerm); err != nil {
		return fmt.Errorf("écriture de %s : %w", a.cfg.Stats.Output, err)
	}

	report.StatsPath = a.cfg.Stats.Output
	report.StatsRows = len(rows)
	report.StatsTable = table
	report.Skipped = skipped
	return nil
}
