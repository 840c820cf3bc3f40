package visits

import (
	"time"

	"github.com/akeren/seam-landing/internal/models"
	"github.com/akeren/seam-landing/pkg/constants"
)

type ListVisitsQuery struct {
	From  string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `form:"limit" validate:"min=0,max=366"`
}

type DailyVisitResponse struct {
	ID          uint   `json:"id"`
	VisitDate   string `json:"visit_date"`
	VisitCount  int64  `json:"visit_count"`
	LastVisitAt string `json:"last_visit_at"`
}

type VisitSummary struct {
	TotalVisits int64  `json:"total_visits"`
	DaysCounted int64  `json:"days_counted"`
	Today       string `json:"today"`
	TodayCount  int64  `json:"today_count"`
}

const defaultListDays = 30

// CalendarDate returns the calendar date of t in loc, as midnight UTC.
// Every stored visit_date uses this representation.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDailyVisitResponse(record *models.DailyVisit) DailyVisitResponse {
	if record == nil {
		return DailyVisitResponse{}
	}
	return DailyVisitResponse{
		ID:          record.ID,
		VisitDate:   record.VisitDate.UTC().Format(constants.CalendarDateFormat),
		VisitCount:  record.VisitCount,
		LastVisitAt: record.LastVisitAt.UTC().Format(constants.RFC3339DateTimeFormat),
	}
}
