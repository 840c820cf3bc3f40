package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akeren/seam-landing/internal/models"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"gorm.io/gorm"
)

const duplicateEmailMessage = "This email is already on the waitlist."

// EntryFilter narrows ListEntries. Zero values mean "no constraint".
type EntryFilter struct {
	Category       string
	SignedUpFrom   time.Time // inclusive
	SignedUpBefore time.Time // exclusive
	Search         string
	Limit          int
	Offset         int
}

type WaitlistRepository interface {
	// CreateEntry persists a new entry. A taken email yields a CONFLICT
	// AppError carrying a field error on "email".
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	FindEntryByID(ctx context.Context, id uint) (*models.WaitlistEntry, error)
	// ListEntries returns one page, newest signup first, and the total matching count.
	ListEntries(ctx context.Context, filter EntryFilter) ([]*models.WaitlistEntry, int64, error)
	// CountByCategory groups entries by category; uncategorized entries are keyed "".
	CountByCategory(ctx context.Context) (map[string]int64, error)
	DeleteEntry(ctx context.Context, id uint) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError("waitlist entry with this email already exists", err).
				WithField("email", duplicateEmailMessage)
		}
		return nil, apperrors.NewDatabaseError("unable to create waitlist entry", err)
	}

	return entry, nil
}

func (wr *waitlistRepository) FindEntryByID(ctx context.Context, id uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("waitlist entry not found", err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) ListEntries(ctx context.Context, filter EntryFilter) ([]*models.WaitlistEntry, int64, error) {
	query := wr.db.WithContext(ctx).Model(&models.WaitlistEntry{})

	if filter.Category != "" {
		query = query.Where("what_mostly_share = ?", filter.Category)
	}
	if !filter.SignedUpFrom.IsZero() {
		query = query.Where("signed_up_at >= ?", filter.SignedUpFrom)
	}
	if !filter.SignedUpBefore.IsZero() {
		query = query.Where("signed_up_at < ?", filter.SignedUpBefore)
	}
	if filter.Search != "" {
		query = query.Where(`email LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("unable to count waitlist entries", err)
	}

	var entries []*models.WaitlistEntry
	page := query.Order("signed_up_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		page = page.Offset(filter.Offset)
	}

	if err := page.Find(&entries).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("unable to fetch waitlist entries", err)
	}

	return entries, total, nil
}

func (wr *waitlistRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category *string
		Total    int64
	}

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Select("what_mostly_share AS category, COUNT(*) AS total").
		Group("what_mostly_share").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to summarize waitlist entries", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := ""
		if row.Category != nil {
			key = *row.Category
		}
		counts[key] += row.Total
	}

	return counts, nil
}

func (wr *waitlistRepository) DeleteEntry(ctx context.Context, id uint) error {
	result := wr.db.WithContext(ctx).Delete(&models.WaitlistEntry{}, id)

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to delete waitlist entry", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("waitlist entry not found", nil)
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
