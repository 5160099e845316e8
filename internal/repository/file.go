package repository

import (
	"context"

	"filebox/internal/model"
)

// FileRepository defines data access for file metadata records.
// Records are insert-only; there is no update or delete operation.
type FileRepository interface {
	// Create inserts a new file record and returns it with the
	// database-assigned id and upload timestamp populated.
	Create(ctx context.Context, file *model.File) (*model.File, error)

	// FindAll returns every file record, newest first.
	FindAll(ctx context.Context) ([]model.File, error)

	// FindByUser returns the given user's files, newest first.
	FindByUser(ctx context.Context, userID int64) ([]model.File, error)

	// FindByKey returns the record for an object key, or sql.ErrNoRows.
	FindByKey(ctx context.Context, key string) (*model.File, error)
}
