package morph

import (
	"fmt"
	"log/slog"

	"github.com/patrickprogramme/cha2xml/internal/config"
)

// Init construit l'analyseur décrit par la configuration : etana derrière un cache
// mémoire, plus le cache SQLite si cache_path est renseigné.
// La fonction retournée libère le cache persistant ; elle n'est jamais nil.
func Init(cfg *config.Config) (*Cached, func() error, error) {
	noop := func() error { return nil }

	et := NewEtana(cfg.Analyzer.Name, cfg.Analyzer.ResolvedPath, cfg.Analyzer.DictPath, cfg.Analyzer.Timeout)
	if err := et.CheckBinary(); err != nil {
		return nil, noop, fmt.Errorf("analyseur introuvable : %w", err)
	}
	slog.Debug("analyseur morphologique", "path", et.exe(), "dict", et.DictPath)

	if cfg.Analyzer.CachePath == "" {
		return NewCached(et, nil), noop, nil
	}

	store, err := OpenSQLiteCache(cfg.Analyzer.CachePath)
	if err != nil {
		return nil, noop, err
	}
	return NewCached(et, store), store.Close, nil
}
