package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client mirrors one identity-provider account. Rows are provisioned lazily
// on the first authenticated request; the id is the token subject.
type Client struct {
	Id             uuid.UUID
	Email          string
	Active         bool
	CoachName      *string
	CoachEmail     *string
	LastPracticeAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
