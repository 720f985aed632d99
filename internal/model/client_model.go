package model

import (
	"time"

	"github.com/google/uuid"
)

// Client rows use the identity provider's subject as primary key, so no
// database-side default is set.
type Client struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);not null;index"`
	Active         bool      `gorm:"not null;default:true"`
	CoachName      *string   `gorm:"type:varchar(255)"`
	CoachEmail     *string   `gorm:"type:varchar(255)"`
	LastPracticeAt *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}
