package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WeeklySummary struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_client_week"`
	WeekStart       string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_client_week"`
	WeekEnd         string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_client_week"`
	SummaryText     string         `gorm:"type:text;not null"`
	ReflectionCount int            `gorm:"not null;default:0"`
	IncludedDates   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (WeeklySummary) TableName() string {
	return "weekly_summaries"
}
