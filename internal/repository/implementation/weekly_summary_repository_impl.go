package implementation

import (
	"context"
	"errors"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/mapper"
	"responsagility-be/internal/model"
	"responsagility-be/internal/repository/contract"
	"responsagility-be/internal/repository/specification"

	"gorm.io/gorm"
)

type WeeklySummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WeeklySummaryMapper
}

func NewWeeklySummaryRepository(db *gorm.DB) contract.WeeklySummaryRepository {
	return &WeeklySummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewWeeklySummaryMapper(),
	}
}

func (r *WeeklySummaryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WeeklySummaryRepositoryImpl) Create(ctx context.Context, summary *entity.WeeklySummary) error {
	m := r.mapper.ToModel(summary)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *WeeklySummaryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WeeklySummary, error) {
	var m model.WeeklySummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WeeklySummaryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WeeklySummary, error) {
	var models []*model.WeeklySummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WeeklySummaryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WeeklySummary{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
