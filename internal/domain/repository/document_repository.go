package repository

import (
	"context"

	"github.com/samersoltani/dewini-server/internal/domain/entity"
)

// DocumentRepository defines the record-store operations for documents.
// GetByID returns (nil, nil) when no document matches. Delete is an
// idempotent no-op for unknown ids, matching the store's delete-by-id
// semantics.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListAll(ctx context.Context) ([]entity.Document, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Document, error)
	Delete(ctx context.Context, id string) error
}
