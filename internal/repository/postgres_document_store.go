package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    data       JSONB NOT NULL DEFAULT '{}'::jsonb,
    seq        BIGSERIAL,
    PRIMARY KEY (collection, id)
)`

type postgresDocumentStore struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresDocumentStore(db *sql.DB, logger *logrus.Logger) domain.DocumentStore {
	return &postgresDocumentStore{
		db:  db,
		log: logger,
	}
}

// EnsureDocumentsSchema creates the documents table when it is missing.
func EnsureDocumentsSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("could not create documents table: %w", err)
	}
	return nil
}

func (r *postgresDocumentStore) List(ctx context.Context, collection string) ([]domain.Document, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1 ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, collection)
	if err != nil {
		r.log.Errorf("Failed to list documents in %s: %v", collection, err)
		return nil, fmt.Errorf("could not list %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			r.log.Errorf("Failed to scan document row in %s: %v", collection, err)
			return nil, fmt.Errorf("could not read %s row: %w", collection, err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			r.log.Errorf("Document %s/%s has malformed data: %v", collection, id, err)
			return nil, fmt.Errorf("could not decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, domain.Document{ID: id, Fields: fields})
	}

	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during %s list iteration: %v", collection, err)
		return nil, fmt.Errorf("error iterating %s: %w", collection, err)
	}

	r.log.Debugf("Retrieved %d documents from %s", len(docs), collection)
	return docs, nil
}

func (r *postgresDocumentStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Document %s/%s not found", collection, id)
			return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get document %s/%s: %v", collection, id, err)
		return nil, fmt.Errorf("could not get %s/%s: %w", collection, id, err)
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("document %s/%s has malformed data: %w", collection, id, err)
	}
	return &domain.Document{ID: id, Fields: fields}, nil
}

func (r *postgresDocumentStore) Create(ctx context.Context, collection string, fields map[string]any) (*domain.Document, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("could not encode %s document: %w", collection, err)
	}
	id := uuid.NewString()
	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`
	if _, err := r.db.ExecContext(ctx, query, collection, id, raw); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create duplicate document %s/%s", collection, id)
			return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrConflict)
		}
		r.log.Errorf("Failed to create document in %s: %v", collection, err)
		return nil, fmt.Errorf("could not create %s document: %w", collection, err)
	}
	r.log.Infof("Document created successfully in %s with ID: %s", collection, id)
	return &domain.Document{ID: id, Fields: fields}, nil
}

func (r *postgresDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("could not encode %s/%s: %w", collection, id, err)
	}
	query := `
        INSERT INTO documents (collection, id, data)
        VALUES ($1, $2, $3::jsonb)
        ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`
	if _, err := r.db.ExecContext(ctx, query, collection, id, raw); err != nil {
		r.log.Errorf("Failed to set document %s/%s: %v", collection, id, err)
		return fmt.Errorf("could not set %s/%s: %w", collection, id, err)
	}
	r.log.Infof("Document %s/%s saved", collection, id)
	return nil
}

func (r *postgresDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("could not encode %s/%s: %w", collection, id, err)
	}
	query := `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, collection, id, raw)
	if err != nil {
		r.log.Errorf("Failed to update document %s/%s: %v", collection, id, err)
		return fmt.Errorf("could not update %s/%s: %w", collection, id, err)
	}
	return r.expectOneRow(result, collection, id, "update")
}

func (r *postgresDocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		r.log.Errorf("Failed to delete document %s/%s: %v", collection, id, err)
		return fmt.Errorf("could not delete %s/%s: %w", collection, id, err)
	}
	return r.expectOneRow(result, collection, id, "delete")
}

func (r *postgresDocumentStore) expectOneRow(result sql.Result, collection, id, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after %s of %s/%s: %v", op, collection, id, err)
		return fmt.Errorf("could not confirm %s of %s/%s: %w", op, collection, id, err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to %s non-existent document %s/%s", op, collection, id)
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	r.log.Infof("Document %s/%s: %s done", collection, id, op)
	return nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
