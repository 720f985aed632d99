package entity

import (
	"time"

	"github.com/google/uuid"
)

// WeeklySummary is the synthesized weekly mirror for one client and one
// Monday-start week. Created by the weekly batch only, never mutated.
type WeeklySummary struct {
	Id              uuid.UUID
	ClientId        uuid.UUID
	WeekStart       string // YYYY-MM-DD (Monday)
	WeekEnd         string // YYYY-MM-DD (Sunday)
	SummaryText     string
	ReflectionCount int
	IncludedDates   []string
	CreatedAt       time.Time
}
