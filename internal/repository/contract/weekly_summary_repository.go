package contract

import (
	"context"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/repository/specification"
)

// WeeklySummaryRepository persists weekly summaries. Rows are insert-only.
type WeeklySummaryRepository interface {
	Create(ctx context.Context, summary *entity.WeeklySummary) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WeeklySummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WeeklySummary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
