package unitofwork

import (
	"context"

	"responsagility-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ClientRepository() contract.ClientRepository
	ReflectionRepository() contract.ReflectionRepository
	WeeklySummaryRepository() contract.WeeklySummaryRepository
}
