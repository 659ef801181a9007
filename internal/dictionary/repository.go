// Package dictionary provides read access to the dictionary store and
// the CSV importer that populates it.
package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/honyakun/localdict/internal/config"
	"github.com/honyakun/localdict/internal/database"
)

// ErrNotFound is returned when no entry matches a lookup word.
var ErrNotFound = errors.New("dictionary entry not found")

const entryColumns = "surface, lemma, pos, translation_ja, example_ko, example_ja, tags"

// Repository provides read-only dictionary queries. Each call opens a
// fresh connection to the store and closes it before returning, so a
// repository can outlive any individual database handle.
type Repository struct {
	openDB func() (*sqlx.DB, error)
}

// NewRepository creates a Repository over the configured store file.
func NewRepository(cfg config.DatabaseConfig) *Repository {
	return &Repository{
		openDB: func() (*sqlx.DB, error) {
			return database.Open(cfg)
		},
	}
}

// Lookup finds the first entry whose surface matches word case
// insensitively, falling back to a lemma match. Returns ErrNotFound
// when neither column matches.
func (r *Repository) Lookup(ctx context.Context, word string) (Document, error) {
	var doc Document

	db, err := r.openDB()
	if err != nil {
		return doc, fmt.Errorf("open dictionary store: %w", err)
	}
	defer func() { _ = db.Close() }()

	var entry Entry
	err = db.GetContext(ctx, &entry,
		"SELECT "+entryColumns+" FROM dict WHERE surface = ? COLLATE NOCASE LIMIT 1", word)
	if errors.Is(err, sql.ErrNoRows) {
		err = db.GetContext(ctx, &entry,
			"SELECT "+entryColumns+" FROM dict WHERE lemma = ? COLLATE NOCASE LIMIT 1", word)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("query dictionary entry: %w", err)
	}

	return entry.Document(), nil
}

// Search returns up to limit entries whose surface, lemma or tags
// contain term as a substring, in insertion order. No ranking is
// applied; case sensitivity follows the store's LIKE collation.
func (r *Repository) Search(ctx context.Context, term string, limit int) ([]Document, error) {
	db, err := r.openDB()
	if err != nil {
		return nil, fmt.Errorf("open dictionary store: %w", err)
	}
	defer func() { _ = db.Close() }()

	var entries []Entry
	pattern := "%" + term + "%"
	err = db.SelectContext(ctx, &entries,
		"SELECT "+entryColumns+" FROM dict WHERE surface LIKE ? OR lemma LIKE ? OR tags LIKE ? LIMIT ?",
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search dictionary entries: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, entry.Document())
	}
	return docs, nil
}
