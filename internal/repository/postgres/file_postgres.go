package postgres

import (
	"context"
	"database/sql"

	"filebox/internal/model"
	"filebox/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, file *model.File) (*model.File, error) {
	const q = `
		INSERT INTO files (key, filename, size, mimetype, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, key, filename, size, mimetype, uploaded_by, uploaded_at
	`
	row := r.db.QueryRowContext(ctx, q,
		file.Key,
		file.Filename,
		file.Size,
		file.Mimetype,
		file.UploadedBy,
	)
	var out model.File
	if err := scanFile(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindAll returns all file records, newest first.
func (r *FilePostgres) FindAll(ctx context.Context) ([]model.File, error) {
	const q = `
		SELECT id, key, filename, size, mimetype, uploaded_by, uploaded_at
		FROM files
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFiles(rows)
}

// FindByUser returns one user's file records, newest first.
func (r *FilePostgres) FindByUser(ctx context.Context, userID int64) ([]model.File, error) {
	const q = `
		SELECT id, key, filename, size, mimetype, uploaded_by, uploaded_at
		FROM files
		WHERE uploaded_by = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFiles(rows)
}

// FindByKey fetches a single file record by its object key.
func (r *FilePostgres) FindByKey(ctx context.Context, key string) (*model.File, error) {
	const q = `
		SELECT id, key, filename, size, mimetype, uploaded_by, uploaded_at
		FROM files
		WHERE key = $1
	`
	row := r.db.QueryRowContext(ctx, q, key)
	var f model.File
	if err := scanFile(row, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner, f *model.File) error {
	return row.Scan(
		&f.ID,
		&f.Key,
		&f.Filename,
		&f.Size,
		&f.Mimetype,
		&f.UploadedBy,
		&f.UploadedAt,
	)
}

func collectFiles(rows *sql.Rows) ([]model.File, error) {
	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := scanFile(rows, &f); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
