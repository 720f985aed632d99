package specification

import "gorm.io/gorm"

// ActiveClients filters to clients eligible for weekly batch processing.
type ActiveClients struct{}

func (s ActiveClients) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
