package models

import "time"

// Share categories a visitor can pick on the signup form.
const (
	CategoryIdeas     = "ideas"
	CategoryResearch  = "research"
	CategorySummaries = "summaries"
	CategoryNotes     = "notes"
)

// Categories lists the allowed values for WaitlistEntry.Category in display order.
var Categories = []string{CategoryIdeas, CategoryResearch, CategorySummaries, CategoryNotes}

func IsValidCategory(value string) bool {
	for _, c := range Categories {
		if c == value {
			return true
		}
	}
	return false
}

type WaitlistEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Category   *string   `gorm:"column:what_mostly_share;size:20;index" json:"what_mostly_share"`
	SignedUpAt time.Time `gorm:"not null;autoCreateTime;index" json:"signed_up_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
