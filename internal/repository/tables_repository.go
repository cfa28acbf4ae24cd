package repository

import (
	"context"
	"fmt"
)

type tablesRepository struct {
	db DBTX
}

func NewTablesRepository(db DBTX) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public'
		`)

	if err != nil {
		return 0, fmt.Errorf("count database tables: %w", err)
	}

	return count, nil
}
