package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/internal/domain/repository"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO documents (titre, type, url_fichier, date_upload, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.Titre, d.Type, d.URLFichier, d.DateUpload, d.UserID)

	return row.Scan(&d.ID)
}

// GetByID returns (nil, nil) when no document has the given id.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d := &entity.Document{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, titre, type, url_fichier, date_upload, user_id
		FROM documents
		WHERE id = $1
	`, id)
	if err := row.Scan(&d.ID, &d.Titre, &d.Type, &d.URLFichier, &d.DateUpload, &d.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *DocumentRepository) ListAll(ctx context.Context) ([]entity.Document, error) {
	return r.list(ctx, `
		SELECT id, titre, type, url_fichier, date_upload, user_id
		FROM documents
		ORDER BY date_upload DESC
	`)
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]entity.Document, error) {
	return r.list(ctx, `
		SELECT id, titre, type, url_fichier, date_upload, user_id
		FROM documents
		WHERE user_id = $1
		ORDER BY date_upload DESC
	`, userID)
}

func (r *DocumentRepository) list(ctx context.Context, query string, args ...any) ([]entity.Document, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]entity.Document, 0)
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.Titre, &d.Type, &d.URLFichier, &d.DateUpload, &d.UserID); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete is a no-op for unknown ids.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)
