package profile

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/tsingjyujing/langdetect/utils"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var ddl string

// GetDDL returns the schema used by SQLStore.
func GetDDL() string {
	return ddl
}

// SQLStore keeps profiles in a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (or creates) a SQLite database and its tables.
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	store, err := NewSQLStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore creates the tables on an already opened database.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, GetDDL()); err != nil {
		return nil, fmt.Errorf("create profile tables: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Save replaces the stored profile with the same name.
func (s *SQLStore) Save(ctx context.Context, doc Document) error {
	if doc.Name == "" {
		return fmt.Errorf("invalid profile name: %q", doc.Name)
	}
	totals, err := json.Marshal(doc.NGramTotals)
	if err != nil {
		return err
	}
	inserted, err := utils.WithTx(ctx, s.db, nil, func(tx *sql.Tx) (int, error) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ngram_frequency WHERE profile_name = ?`, doc.Name); err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO language_profile (name, n_words) VALUES (?, ?)
			ON CONFLICT (name) DO UPDATE SET n_words = excluded.n_words, updated_at = unixepoch()
		`, doc.Name, string(totals)); err != nil {
			return 0, err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO ngram_frequency (profile_name, gram, count) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func(stmt *sql.Stmt) {
			if err := stmt.Close(); err != nil {
				logger.WithError(err).Error("Failed to close statement")
			}
		}(stmt)
		for gram, count := range doc.Frequencies {
			if _, err := stmt.ExecContext(ctx, doc.Name, gram, count); err != nil {
				return 0, err
			}
		}
		return len(doc.Frequencies), nil
	})
	if err != nil {
		return err
	}
	logger.WithField("profile", doc.Name).WithField("grams", inserted).Debug("Saved language profile")
	return nil
}

func (s *SQLStore) Load(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, n_words FROM language_profile ORDER BY name`)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0)
	for rows.Next() {
		var (
			doc    Document
			totals string
		)
		if err := rows.Scan(&doc.Name, &totals); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if err := json.Unmarshal([]byte(totals), &doc.NGramTotals); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("profile %q: %w", doc.Name, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range docs {
		freq, err := s.loadFrequencies(ctx, docs[i].Name)
		if err != nil {
			return nil, err
		}
		docs[i].Frequencies = freq
	}
	return docs, nil
}

func (s *SQLStore) loadFrequencies(ctx context.Context, name string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT gram, count FROM ngram_frequency WHERE profile_name = ?`, name)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.WithError(err).Error("Failed to close rows")
		}
	}(rows)

	freq := make(map[string]int)
	for rows.Next() {
		var (
			gram  string
			count int
		)
		if err := rows.Scan(&gram, &count); err != nil {
			return nil, err
		}
		freq[gram] = count
	}
	return freq, rows.Err()
}

// Delete removes a stored profile. Removing an unknown name is not an error.
func (s *SQLStore) Delete(ctx context.Context, name string) error {
	_, err := utils.WithTx(ctx, s.db, nil, func(tx *sql.Tx) (any, error) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ngram_frequency WHERE profile_name = ?`, name); err != nil {
			return nil, err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM language_profile WHERE name = ?`, name)
		return nil, err
	})
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
