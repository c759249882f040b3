package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

var errDocumentWithoutID = errors.New("document has no string id field")

// SQLite stores documents as JSON rows in a single table keyed by
// (collection, id) and serves owner queries through json_extract.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open document database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	s := &SQLite{db: db}
	if err = s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize document schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			body       TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLite) GetByID(ctx context.Context, collection, id string) (Document, error) {
	const query = `SELECT body FROM documents WHERE collection = ? AND id = ?`

	var body string
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}

	return decodeBody(collection, body)
}

func (s *SQLite) QueryByOwner(ctx context.Context, collection, field, ownerID string) ([]Document, error) {
	const query = `SELECT body FROM documents WHERE collection = ? AND json_extract(body, ?) = ?`

	rows, err := s.db.QueryContext(ctx, query, collection, "$."+field, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query documents %s by %s: %w", collection, field, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var body string
		if err = rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan document body: %w", err)
		}
		doc, err := decodeBody(collection, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents %s: %w", collection, err)
	}
	return docs, nil
}

func (s *SQLite) Put(ctx context.Context, collection string, doc Document) error {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return errDocumentWithoutID
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serialize document %s/%s: %w", collection, id, err)
	}

	const query = `INSERT OR REPLACE INTO documents (collection, id, body) VALUES (?, ?, ?)`
	if _, err = s.db.ExecContext(ctx, query, collection, id, string(body)); err != nil {
		return fmt.Errorf("put document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func decodeBody(collection, body string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("decode document body in %s: %w", collection, err)
	}
	return doc, nil
}
