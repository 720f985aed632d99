package model

import (
	"time"

	"github.com/google/uuid"
)

type DailyReflection struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_reflection_date"`
	ReflectionDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_client_reflection_date"`
	Step           string    `gorm:"type:varchar(10);not null;default:'react'"`
	React          string    `gorm:"type:text;not null;default:''"`
	Respond        string    `gorm:"type:text;not null;default:''"`
	Notice         string    `gorm:"type:text;not null;default:''"`
	Learn          string    `gorm:"type:text;not null;default:''"`
	DailyMirror    *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (DailyReflection) TableName() string {
	return "daily_reflections"
}
