package dictionary

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"

	"github.com/honyakun/localdict/internal/database"
)

// Importer loads dictionary entries from a header-keyed CSV file.
// It is the only writer of the dict table and runs offline, possibly
// while the server holds short-lived read connections.
type Importer struct {
	db *sqlx.DB
}

// NewImporter creates an Importer over an open store connection.
func NewImporter(db *sqlx.DB) *Importer {
	return &Importer{db: db}
}

// ImportCSV reads CSV records from r and inserts one row per record,
// all within a single transaction. The header row names the columns;
// "word" is accepted as an alias for "surface", and an absent lemma
// defaults to the surface form. Returns the number of rows inserted.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	entries, err := readEntries(r)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	// A concurrently running server can hold the SQLite write lock
	// briefly; retry the whole transaction on lock contention.
	err = retry.Do(
		func() error {
			return database.RunInTx(ctx, i.db, func(ctx context.Context, tx *sqlx.Tx) error {
				for _, entry := range entries {
					_, err := tx.NamedExecContext(ctx,
						"INSERT INTO dict (surface, lemma, pos, translation_ja, example_ko, example_ja, tags) VALUES (:surface, :lemma, :pos, :translation_ja, :example_ko, :example_ja, :tags)",
						entry)
					if err != nil {
						return fmt.Errorf("insert dictionary entry %q: %w", entry.Surface, err)
					}
				}
				return nil
			})
		},
		retry.Attempts(3),
		retry.RetryIf(isLockedErr),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return 0, err
	}

	return len(entries), nil
}

func isLockedErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

func readEntries(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(records[0]))
	for idx, name := range records[0] {
		columns[strings.TrimSpace(name)] = idx
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var entries []Entry
	for _, record := range records[1:] {
		surface := field(record, "surface")
		if surface == "" {
			surface = field(record, "word")
		}
		lemma := field(record, "lemma")
		if lemma == "" {
			lemma = surface
		}
		entries = append(entries, Entry{
			Surface:       surface,
			Lemma:         lemma,
			POS:           field(record, "pos"),
			TranslationJA: field(record, "translation_ja"),
			ExampleKO:     field(record, "example_ko"),
			ExampleJA:     field(record, "example_ja"),
			Tags:          field(record, "tags"),
		})
	}
	return entries, nil
}
