package mapper

import (
	"encoding/json"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/model"

	"gorm.io/datatypes"
)

type WeeklySummaryMapper struct{}

func NewWeeklySummaryMapper() *WeeklySummaryMapper {
	return &WeeklySummaryMapper{}
}

func (m *WeeklySummaryMapper) ToEntity(w *model.WeeklySummary) *entity.WeeklySummary {
	if w == nil {
		return nil
	}

	var dates []string
	if len(w.IncludedDates) > 0 {
		// Malformed JSON leaves dates nil; the summary text is the record of
		// truth, the date list is informational.
		_ = json.Unmarshal(w.IncludedDates, &dates)
	}

	return &entity.WeeklySummary{
		Id:              w.Id,
		ClientId:        w.ClientId,
		WeekStart:       w.WeekStart,
		WeekEnd:         w.WeekEnd,
		SummaryText:     w.SummaryText,
		ReflectionCount: w.ReflectionCount,
		IncludedDates:   dates,
		CreatedAt:       w.CreatedAt,
	}
}

func (m *WeeklySummaryMapper) ToModel(w *entity.WeeklySummary) *model.WeeklySummary {
	if w == nil {
		return nil
	}

	var dates datatypes.JSON
	if len(w.IncludedDates) > 0 {
		raw, _ := json.Marshal(w.IncludedDates)
		dates = datatypes.JSON(raw)
	}

	return &model.WeeklySummary{
		Id:              w.Id,
		ClientId:        w.ClientId,
		WeekStart:       w.WeekStart,
		WeekEnd:         w.WeekEnd,
		SummaryText:     w.SummaryText,
		ReflectionCount: w.ReflectionCount,
		IncludedDates:   dates,
		CreatedAt:       w.CreatedAt,
	}
}

func (m *WeeklySummaryMapper) ToEntities(summaries []*model.WeeklySummary) []*entity.WeeklySummary {
	entities := make([]*entity.WeeklySummary, len(summaries))
	for i, w := range summaries {
		entities[i] = m.ToEntity(w)
	}
	return entities
}
