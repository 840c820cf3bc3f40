package waitlist

//go:generate mockgen -source=service.go -destination=mock_service.go -package=waitlist

import (
	"context"
	"strings"
	"time"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/internal/models"
	"github.com/akeren/seam-landing/pkg/constants"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"github.com/go-playground/validator/v10"
)

type WaitlistService interface {
	// Validate normalizes req in place (trimmed, lower-cased email; blank
	// category cleared) and checks it without touching storage.
	Validate(req *SignupRequest) error

	// SignUp validates and persists a new entry.
	SignUp(ctx context.Context, req *SignupRequest) (*WaitlistEntryResponse, error)

	FindEntryByID(ctx context.Context, id uint) (*WaitlistEntryResponse, error)

	ListEntries(ctx context.Context, query *ListEntriesQuery) (*WaitlistPage, error)

	// Summary reports the total and a zero-filled count per category.
	Summary(ctx context.Context) (*WaitlistSummary, error)

	DeleteEntry(ctx context.Context, id uint) error
}

type ServiceOption func(*waitlistService)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *waitlistService) { s.now = now }
}

// WithLocation sets the zone used to interpret date filters.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *waitlistService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *waitlistService) { s.metrics = m }
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	validate   *validator.Validate
	metrics    *Metrics
	location   *time.Location
	now        func() time.Time

	summaryCache SummaryCache
	summaryTTL   time.Duration
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, opts ...ServiceOption) WaitlistService {
	s := &waitlistService{
		logger:     logger,
		repository: repository,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		location:   time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *waitlistService) Validate(req *SignupRequest) error {
	if req == nil {
		return apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))

	if err := s.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("Please correct the errors below.", apperrors.FormatValidationErrors(err, req))
	}

	return nil
}

func (s *waitlistService) SignUp(ctx context.Context, req *SignupRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if err := s.Validate(req); err != nil {
		logger.Info("Waitlist signup rejected", "reason", "validation", "fields", apperrors.GetFieldErrors(err))
		s.metrics.observe(outcomeInvalid)
		return nil, err
	}

	entryModel := ToWaitlistEntryModel(req)
	entryModel.SignedUpAt = s.now().UTC()

	entry, err := s.repository.CreateEntry(ctx, entryModel)
	if err != nil {
		if apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict {
			logger.Info("Waitlist signup rejected", "reason", "duplicate_email")
			s.metrics.observe(outcomeDuplicate)
			return nil, err
		}
		logger.Error("Failed to create waitlist entry", "error", err)
		s.metrics.observe(outcomeError)
		return nil, err
	}

	logger.Info("Waitlist signup recorded", "id", entry.ID, "category", CategoryLabel(entry.Category))
	s.metrics.observe(outcomeCreated)
	s.evictSummary(ctx, logger)

	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) FindEntryByID(ctx context.Context, id uint) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("FindEntryByID received invalid ID")
		return nil, apperrors.NewInvalidRequestError("invalid entry ID", nil)
	}

	entry, err := s.repository.FindEntryByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find waitlist entry", "id", id, "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) ListEntries(ctx context.Context, query *ListEntriesQuery) (*WaitlistPage, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if query == nil {
		query = &ListEntriesQuery{}
	}
	query.Category = strings.ToLower(strings.TrimSpace(query.Category))
	query.Search = strings.TrimSpace(query.Search)

	if err := s.validate.Struct(query); err != nil {
		return nil, apperrors.NewValidationError("Invalid query parameters", apperrors.FormatValidationErrors(err, query))
	}

	filter := EntryFilter{
		Category: query.Category,
		Search:   query.Search,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}

	// Dates are calendar days in the configured zone; the upper bound is
	// inclusive of the whole day.
	if query.SignedUpFrom != "" {
		from, _ := time.ParseInLocation(constants.CalendarDateFormat, query.SignedUpFrom, s.location)
		filter.SignedUpFrom = from.UTC()
	}
	if query.SignedUpTo != "" {
		to, _ := time.ParseInLocation(constants.CalendarDateFormat, query.SignedUpTo, s.location)
		filter.SignedUpBefore = to.AddDate(0, 0, 1).UTC()
	}
	if !filter.SignedUpFrom.IsZero() && !filter.SignedUpBefore.IsZero() && !filter.SignedUpFrom.Before(filter.SignedUpBefore) {
		return nil, apperrors.NewValidationError("Invalid query parameters", nil).
			WithField("signed_up_to", "Must not be before signed_up_from")
	}

	entries, total, err := s.repository.ListEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list waitlist entries", "error", err)
		return nil, err
	}

	page := &WaitlistPage{
		Entries: make([]WaitlistEntryResponse, 0, len(entries)),
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	for _, entry := range entries {
		page.Entries = append(page.Entries, ToWaitlistEntryResponse(entry))
	}

	return page, nil
}

func (s *waitlistService) Summary(ctx context.Context) (*WaitlistSummary, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if cached := s.cachedSummary(ctx, logger); cached != nil {
		return cached, nil
	}

	counts, err := s.repository.CountByCategory(ctx)
	if err != nil {
		logger.Error("Failed to summarize waitlist", "error", err)
		return nil, err
	}

	summary := &WaitlistSummary{ByCategory: make(map[string]int64, len(models.Categories)+1)}
	for _, c := range models.Categories {
		summary.ByCategory[c] = 0
	}
	summary.ByCategory[uncategorizedSummary] = 0

	for category, n := range counts {
		key := category
		if key == "" {
			key = uncategorizedSummary
		}
		summary.ByCategory[key] += n
		summary.Total += n
	}

	s.storeSummary(ctx, logger, summary)
	return summary, nil
}

func (s *waitlistService) DeleteEntry(ctx context.Context, id uint) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("DeleteEntry received invalid ID")
		return apperrors.NewInvalidRequestError("invalid entry ID", nil)
	}

	if err := s.repository.DeleteEntry(ctx, id); err != nil {
		logger.Error("Failed to delete waitlist entry", "id", id, "error", err)
		return err
	}

	s.evictSummary(ctx, logger)
	logger.Info("Waitlist entry deleted", "id", id)
	return nil
}
