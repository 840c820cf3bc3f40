package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// CalendarDateFormat is the layout of visit dates and date query parameters.
const CalendarDateFormat = "2006-01-02"

// Default rate limiting configuration
const (
	// DefaultRateLimitRequests is the default number of requests allowed per time window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindowMinutes is the default time window for rate limiting
	DefaultRateLimitWindowMinutes = 1
	// SignupRequestsPerMinute bounds waitlist submissions per client IP.
	SignupRequestsPerMinute = 10
)

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

// Landing page form handling.
const (
	WaitlistAnchor       = "waitlist"
	FlashCookieName      = "seam_flash"
	SignupSuccessMessage = "Thanks! You've been added to the waitlist."
)
