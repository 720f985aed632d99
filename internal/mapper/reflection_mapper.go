package mapper

import (
	"time"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/model"
	"responsagility-be/pkg/reflection"
)

type ReflectionMapper struct{}

func NewReflectionMapper() *ReflectionMapper {
	return &ReflectionMapper{}
}

func (m *ReflectionMapper) ToEntity(r *model.DailyReflection) *entity.DailyReflection {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.DailyReflection{
		Id:             r.Id,
		ClientId:       r.ClientId,
		ReflectionDate: r.ReflectionDate,
		Step:           reflection.Step(r.Step),
		React:          r.React,
		Respond:        r.Respond,
		Notice:         r.Notice,
		Learn:          r.Learn,
		DailyMirror:    r.DailyMirror,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ReflectionMapper) ToModel(r *entity.DailyReflection) *model.DailyReflection {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.DailyReflection{
		Id:             r.Id,
		ClientId:       r.ClientId,
		ReflectionDate: r.ReflectionDate,
		Step:           string(r.Step),
		React:          r.React,
		Respond:        r.Respond,
		Notice:         r.Notice,
		Learn:          r.Learn,
		DailyMirror:    r.DailyMirror,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ReflectionMapper) ToEntities(reflections []*model.DailyReflection) []*entity.DailyReflection {
	entities := make([]*entity.DailyReflection, len(reflections))
	for i, r := range reflections {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
