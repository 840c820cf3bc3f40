package visits

//go:generate mockgen -source=service.go -destination=mock_service.go -package=visits

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/circuitbreaker"
	"github.com/akeren/seam-landing/pkg/constants"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/akeren/seam-landing/domain/visits"

type VisitService interface {
	// RecordVisit adds one to today's counter. Storage problems, including
	// an open circuit, come back as a DATABASE_ERROR AppError.
	RecordVisit(ctx context.Context) (*DailyVisitResponse, error)

	// ListVisits returns daily records newest first.
	ListVisits(ctx context.Context, query *ListVisitsQuery) ([]DailyVisitResponse, error)

	Summary(ctx context.Context) (*VisitSummary, error)

	DeleteRecord(ctx context.Context, id uint) error
}

type ServiceOption func(*visitService)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *visitService) { s.now = now }
}

// WithLocation sets the zone that decides which calendar day a visit belongs to.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *visitService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *visitService) { s.metrics = m }
}

func WithCircuitBreaker(cb circuitbreaker.CircuitBreaker) ServiceOption {
	return func(s *visitService) { s.breaker = cb }
}

func WithTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(s *visitService) { s.tracer = tp.Tracer(tracerName) }
}

type visitService struct {
	logger     *log.Logger
	repository VisitRepository
	validate   *validator.Validate
	breaker    circuitbreaker.CircuitBreaker
	tracer     trace.Tracer
	metrics    *Metrics
	location   *time.Location
	now        func() time.Time
}

func NewVisitService(logger *log.Logger, repository VisitRepository, opts ...ServiceOption) VisitService {
	s := &visitService{
		logger:     logger,
		repository: repository,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		tracer:     otel.Tracer(tracerName),
		location:   time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.breaker == nil {
		cfg := circuitbreaker.DefaultConfig()
		cfg.IsFailure = func(err error) bool {
			return apperrors.IsStorageUnavailable(err) && !errors.Is(err, context.Canceled)
		}
		cfg.OnStateChange = func(from, to circuitbreaker.CircuitState) {
			s.logger.Warn("Visit counter circuit changed state", "from", from.String(), "to", to.String())
			s.metrics.setCircuitState(to)
		}
		s.breaker = circuitbreaker.NewCircuitBreaker(cfg)
	}

	return s
}

func (s *visitService) RecordVisit(ctx context.Context) (*DailyVisitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "visits.RecordVisit")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	now := s.now()
	date := CalendarDate(now, s.location)
	span.SetAttributes(attribute.String("visit.date", date.Format(constants.CalendarDateFormat)))

	var response DailyVisitResponse
	err := s.breaker.Call(func() error {
		record, err := s.repository.IncrementForDate(ctx, date, now.UTC())
		if err != nil {
			return err
		}
		response = ToDailyVisitResponse(record)
		return nil
	})

	if err != nil {
		outcome := outcomeError
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			outcome = outcomeCircuitOpen
			err = apperrors.NewDatabaseError("visit counter temporarily unavailable", err)
		}
		s.metrics.observe(outcome)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logger.Error("Failed to record visit", "date", date.Format(constants.CalendarDateFormat), "outcome", outcome, "error", err)
		return nil, err
	}

	s.metrics.observe(outcomeRecorded)
	span.SetAttributes(attribute.Int64("visit.count", response.VisitCount))
	logger.Debug("Visit recorded", "date", response.VisitDate, "count", response.VisitCount)

	return &response, nil
}

func (s *visitService) ListVisits(ctx context.Context, query *ListVisitsQuery) ([]DailyVisitResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if query == nil {
		query = &ListVisitsQuery{}
	}

	if err := s.validate.Struct(query); err != nil {
		return nil, apperrors.NewValidationError("Invalid query parameters", apperrors.FormatValidationErrors(err, query))
	}

	filter := VisitFilter{Limit: query.Limit}
	if filter.Limit == 0 {
		filter.Limit = defaultListDays
	}
	if query.From != "" {
		filter.From, _ = time.Parse(constants.CalendarDateFormat, query.From)
	}
	if query.To != "" {
		filter.To, _ = time.Parse(constants.CalendarDateFormat, query.To)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, apperrors.NewValidationError("Invalid query parameters", nil).
			WithField("to", "Must not be before from")
	}

	records, err := s.repository.ListRange(ctx, filter)
	if err != nil {
		logger.Error("Failed to list visit records", "error", err)
		return nil, err
	}

	responses := make([]DailyVisitResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToDailyVisitResponse(record))
	}

	return responses, nil
}

func (s *visitService) Summary(ctx context.Context) (*VisitSummary, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	totals, err := s.repository.Totals(ctx)
	if err != nil {
		logger.Error("Failed to summarize visits", "error", err)
		return nil, err
	}

	today := CalendarDate(s.now(), s.location)
	summary := &VisitSummary{
		TotalVisits: totals.TotalVisits,
		DaysCounted: totals.DaysCounted,
		Today:       today.Format(constants.CalendarDateFormat),
	}

	record, err := s.repository.FindByDate(ctx, today)
	switch {
	case err == nil:
		summary.TodayCount = record.VisitCount
	case apperrors.GetErrorType(err) == apperrors.ErrorTypeNotFound:
	default:
		logger.Error("Failed to fetch today's visits", "error", err)
		return nil, err
	}

	return summary, nil
}

func (s *visitService) DeleteRecord(ctx context.Context, id uint) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("DeleteRecord received invalid ID")
		return apperrors.NewInvalidRequestError("invalid record ID", nil)
	}

	if err := s.repository.DeleteRecord(ctx, id); err != nil {
		logger.Error("Failed to delete visit record", "id", id, "error", err)
		return err
	}

	logger.Info("Visit record deleted", "id", id)
	return nil
}
