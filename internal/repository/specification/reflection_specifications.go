package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientOwnedBy scopes a query to one client's rows.
type ClientOwnedBy struct {
	ClientID uuid.UUID
}

func (s ClientOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("client_id = ?", s.ClientID)
}

// ByReflectionDate filters daily reflections to one calendar date.
type ByReflectionDate struct {
	Date string // YYYY-MM-DD
}

func (s ByReflectionDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reflection_date = ?", s.Date)
}

// ReflectionDateBetween filters to an inclusive date range. The YYYY-MM-DD
// format makes lexicographic comparison equal to date comparison.
type ReflectionDateBetween struct {
	From string
	To   string
}

func (s ReflectionDateBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reflection_date >= ? AND reflection_date <= ?", s.From, s.To)
}

// ByWeek filters weekly summaries to one (week_start, week_end) pair.
type ByWeek struct {
	WeekStart string
	WeekEnd   string
}

func (s ByWeek) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("week_start = ? AND week_end = ?", s.WeekStart, s.WeekEnd)
}
