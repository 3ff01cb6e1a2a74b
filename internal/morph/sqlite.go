package morph

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	word           TEXT PRIMARY KEY,
	unintelligible INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS analyses (
	word TEXT    NOT NULL REFERENCES words(word) ON DELETE CASCADE,
	seq  INTEGER NOT NULL,
	stem TEXT    NOT NULL,
	pos  TEXT    NOT NULL,
	PRIMARY KEY (word, seq)
);`

// SQLiteCache garde les analyses d'une exécution à l'autre.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache ouvre (ou crée) la base et son schéma.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open analyzer cache: %w", err)
	}
	// un seul écrivain
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping analyzer cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create analyzer cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Close ferme la base.
func (s *SQLiteCache) Close() error {
	return s.db.Close()
}

// Lookup retourne l'entrée mémorisée pour word, found == false si absente.
func (s *SQLiteCache) Lookup(ctx context.Context, word string) (Entry, bool, error) {
	var unintelligible bool
	err := s.db.QueryRowContext(ctx,
		`SELECT unintelligible FROM words WHERE word = ?`, word).Scan(&unintelligible)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query word %q: %w", word, err)
	}
	if unintelligible {
		return Entry{Unintelligible: true}, true, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT stem, pos
		FROM analyses
		WHERE word = ?
		ORDER BY seq ASC
	`, word)
	if err != nil {
		return Entry{}, false, fmt.Errorf("query analyses %q: %w", word, err)
	}
	defer rows.Close()

	var e Entry
	for rows.Next() {
		var a model.Analysis
		if err := rows.Scan(&a.Stem, &a.POS); err != nil {
			return Entry{}, false, fmt.Errorf("scan analysis: %w", err)
		}
		e.Analyses = append(e.Analyses, a)
	}
	return e, true, rows.Err()
}

// Save remplace l'entrée de word.
func (s *SQLiteCache) Save(ctx context.Context, word string, e Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM analyses WHERE word = ?`, word); err != nil {
		return fmt.Errorf("delete analyses %q: %w", word, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO words (word, unintelligible) VALUES (?, ?)`,
		word, e.Unintelligible); err != nil {
		return fmt.Errorf("insert word %q: %w", word, err)
	}
	for i, a := range e.Analyses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO analyses (word, seq, stem, pos) VALUES (?, ?, ?, ?)`,
			word, i, a.Stem, a.POS); err != nil {
			return fmt.Errorf("insert analysis %q: %w", word, err)
		}
	}
	return tx.Commit()
}
