package mapper

import (
	"time"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/model"
)

type ClientMapper struct{}

func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

func (m *ClientMapper) ToEntity(c *model.Client) *entity.Client {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Client{
		Id:             c.Id,
		Email:          c.Email,
		Active:         c.Active,
		CoachName:      c.CoachName,
		CoachEmail:     c.CoachEmail,
		LastPracticeAt: c.LastPracticeAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ClientMapper) ToModel(c *entity.Client) *model.Client {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Client{
		Id:             c.Id,
		Email:          c.Email,
		Active:         c.Active,
		CoachName:      c.CoachName,
		CoachEmail:     c.CoachEmail,
		LastPracticeAt: c.LastPracticeAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ClientMapper) ToEntities(clients []*model.Client) []*entity.Client {
	entities := make([]*entity.Client, len(clients))
	for i, c := range clients {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
