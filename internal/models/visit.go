package models

import "time"

// DailyVisit is the per-calendar-day landing page counter. VisitDate is
// stored as midnight UTC of the local calendar date so that equality
// lookups match across drivers.
type DailyVisit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VisitDate   time.Time `gorm:"type:date;not null;uniqueIndex" json:"visit_date"`
	VisitCount  int64     `gorm:"not null;default:0" json:"visit_count"`
	LastVisitAt time.Time `gorm:"not null" json:"last_visit_at"`
}

func (DailyVisit) TableName() string {
	return "daily_visits"
}
