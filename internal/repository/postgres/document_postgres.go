package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aasthak07/QuillStack-AI/internal/model"
	"github.com/Aasthak07/QuillStack-AI/internal/repository"
)

const documentColumns = `id, filename, content, original_content, language, storage_path, version, word_count, code_lines, generated_at, last_modified, created_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	var original sql.NullString
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.Content,
		&original,
		&d.Language,
		&d.StoragePath,
		&d.Version,
		&d.WordCount,
		&d.CodeLines,
		&d.GeneratedAt,
		&d.LastModified,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	d.OriginalContent = original.String
	return &d, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// mapConstraintError translates unique-violation errors into
// repository.ErrDuplicateKey, keeping pgx specifics out of callers.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return err
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, filename, content, original_content, language, storage_path, version, word_count, code_lines, generated_at, last_modified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Filename,
		doc.Content,
		nullable(doc.OriginalContent),
		doc.Language,
		doc.StoragePath,
		doc.Version,
		doc.WordCount,
		doc.CodeLines,
		doc.GeneratedAt,
		doc.LastModified,
		doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count,
// newest first.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateContent replaces the documentation text and bumps version metadata.
func (r *DocumentPostgres) UpdateContent(ctx context.Context, id, content, version string, lastModified time.Time) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET content = $2, version = $3, last_modified = $4
		WHERE id = $1
		RETURNING ` + documentColumns
	out, err := scanDocument(r.db.QueryRowContext(ctx, q, id, content, version, lastModified))
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return out, nil
}

// UpdateGenerated replaces the documentation text after a regeneration.
// original_content is deliberately untouched.
func (r *DocumentPostgres) UpdateGenerated(ctx context.Context, id, content, version string, generatedAt time.Time, wordCount int) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET content = $2, version = $3, generated_at = $4, last_modified = $4, word_count = $5
		WHERE id = $1
		RETURNING ` + documentColumns
	out, err := scanDocument(r.db.QueryRowContext(ctx, q, id, content, version, generatedAt, wordCount))
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return out, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
