package contract

import (
	"context"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/pkg/reflection"

	"github.com/google/uuid"
)

// ReflectionRepository persists daily reflection records. The single-field
// update methods always stamp updated_at; none of them are wrapped in a
// shared transaction by default (see the practice service's re-validation
// at review time for the compensating check).
type ReflectionRepository interface {
	Create(ctx context.Context, reflection *entity.DailyReflection) error
	UpdateAnswer(ctx context.Context, id uuid.UUID, step reflection.Step, value string) error
	UpdateStep(ctx context.Context, id uuid.UUID, step reflection.Step) error
	SetMirror(ctx context.Context, id uuid.UUID, text string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DailyReflection, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DailyReflection, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
