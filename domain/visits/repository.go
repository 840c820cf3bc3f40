package visits

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=visits

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/seam-landing/internal/models"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisitFilter bounds ListRange by calendar date, both ends inclusive.
type VisitFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

type VisitTotals struct {
	TotalVisits int64
	DaysCounted int64
}

type VisitRepository interface {
	// IncrementForDate creates the row for date with count 1 or adds one to
	// the existing row, in a single statement, and returns the row.
	IncrementForDate(ctx context.Context, date time.Time, at time.Time) (*models.DailyVisit, error)
	FindByDate(ctx context.Context, date time.Time) (*models.DailyVisit, error)
	ListRange(ctx context.Context, filter VisitFilter) ([]*models.DailyVisit, error)
	Totals(ctx context.Context) (*VisitTotals, error)
	DeleteRecord(ctx context.Context, id uint) error
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) IncrementForDate(ctx context.Context, date time.Time, at time.Time) (*models.DailyVisit, error) {
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "visit_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"visit_count":   gorm.Expr("visit_count + 1"),
			"last_visit_at": at,
		}),
	}).Create(&models.DailyVisit{
		VisitDate:   date,
		VisitCount:  1,
		LastVisitAt: at,
	}).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to record visit", err)
	}

	return r.FindByDate(ctx, date)
}

func (r *visitRepository) FindByDate(ctx context.Context, date time.Time) (*models.DailyVisit, error) {
	var record models.DailyVisit

	if err := r.db.WithContext(ctx).Where("visit_date = ?", date).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no visits recorded for date", err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch visit record", err)
	}

	return &record, nil
}

func (r *visitRepository) ListRange(ctx context.Context, filter VisitFilter) ([]*models.DailyVisit, error) {
	query := r.db.WithContext(ctx).Model(&models.DailyVisit{})

	if !filter.From.IsZero() {
		query = query.Where("visit_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("visit_date <= ?", filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []*models.DailyVisit
	if err := query.Order("visit_date DESC").Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch visit records", err)
	}

	return records, nil
}

func (r *visitRepository) Totals(ctx context.Context) (*VisitTotals, error) {
	var totals VisitTotals

	err := r.db.WithContext(ctx).
		Model(&models.DailyVisit{}).
		Select("CAST(COALESCE(SUM(visit_count), 0) AS BIGINT) AS total_visits, COUNT(*) AS days_counted").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to summarize visits", err)
	}

	return &totals, nil
}

func (r *visitRepository) DeleteRecord(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.DailyVisit{}, id)

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to delete visit record", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("visit record not found", nil)
	}

	return nil
}
