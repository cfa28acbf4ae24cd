package service

import (
	"context"

	"socialboard/internal/repository"
)

// HealthChecker is satisfied by *database.DB.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type TablesService interface {
	GetCountTablesDB(ctx context.Context) (int, error)
	Health(ctx context.Context) error
}

type tablesService struct {
	tablesRepo repository.TablesRepository
	health     HealthChecker
}

func NewTablesService(tablesRepo repository.TablesRepository, health HealthChecker) TablesService {
	return &tablesService{tablesRepo: tablesRepo, health: health}
}

func (t *tablesService) GetCountTablesDB(ctx context.Context) (int, error) {
	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return 0, err
	}

	return countTables, nil
}

func (t *tablesService) Health(ctx context.Context) error {
	return t.health.HealthCheck(ctx)
}
