package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/mapper"
	"responsagility-be/internal/model"
	"responsagility-be/internal/repository/contract"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/pkg/reflection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReflectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReflectionMapper
}

func NewReflectionRepository(db *gorm.DB) contract.ReflectionRepository {
	return &ReflectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewReflectionMapper(),
	}
}

func (r *ReflectionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReflectionRepositoryImpl) Create(ctx context.Context, refl *entity.DailyReflection) error {
	m := r.mapper.ToModel(refl)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*refl = *r.mapper.ToEntity(m)
	return nil
}

// answerColumn maps an answer step onto its column. Review has no column.
func answerColumn(step reflection.Step) (string, bool) {
	switch step {
	case reflection.StepReact:
		return "react", true
	case reflection.StepRespond:
		return "respond", true
	case reflection.StepNotice:
		return "notice", true
	case reflection.StepLearn:
		return "learn", true
	}
	return "", false
}

func (r *ReflectionRepositoryImpl) UpdateAnswer(ctx context.Context, id uuid.UUID, step reflection.Step, value string) error {
	column, ok := answerColumn(step)
	if !ok {
		return fmt.Errorf("step %q has no answer column", step)
	}
	return r.db.WithContext(ctx).
		Model(&model.DailyReflection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now(),
		}).Error
}

func (r *ReflectionRepositoryImpl) UpdateStep(ctx context.Context, id uuid.UUID, step reflection.Step) error {
	return r.db.WithContext(ctx).
		Model(&model.DailyReflection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"step":       string(step),
			"updated_at": time.Now(),
		}).Error
}

func (r *ReflectionRepositoryImpl) SetMirror(ctx context.Context, id uuid.UUID, text string) error {
	return r.db.WithContext(ctx).
		Model(&model.DailyReflection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"daily_mirror": text,
			"updated_at":   time.Now(),
		}).Error
}

func (r *ReflectionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DailyReflection, error) {
	var m model.DailyReflection
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReflectionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DailyReflection, error) {
	var models []*model.DailyReflection
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReflectionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DailyReflection{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
