package waitlist

import (
	"github.com/akeren/seam-landing/internal/models"
	"github.com/akeren/seam-landing/pkg/constants"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SignupRequest is bound from the landing form and from the admin JSON API.
// Fields are normalized by the service before the validate tags run.
type SignupRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email,max=254"`
	Category string `form:"what_mostly_share" json:"what_mostly_share" validate:"omitempty,oneof=ideas research summaries notes"`
}

type ListEntriesQuery struct {
	Category     string `form:"category" validate:"omitempty,oneof=ideas research summaries notes"`
	SignedUpFrom string `form:"signed_up_from" validate:"omitempty,datetime=2006-01-02"`
	SignedUpTo   string `form:"signed_up_to" validate:"omitempty,datetime=2006-01-02"`
	Search       string `form:"search" validate:"max=254"`
	Limit        int    `form:"limit" validate:"min=0,max=200"`
	Offset       int    `form:"offset" validate:"min=0"`
}

type WaitlistEntryResponse struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	Category      *string `json:"what_mostly_share"`
	CategoryLabel string  `json:"category_label"`
	SignedUpAt    string  `json:"signed_up_at"`
}

type WaitlistPage struct {
	Entries []WaitlistEntryResponse `json:"entries"`
	Total   int64                   `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}

type WaitlistSummary struct {
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"by_category"`
}

// CategoryChoice is one option of the "what do you mostly share" select.
type CategoryChoice struct {
	Value string
	Label string
}

const (
	defaultPageSize      = 50
	uncategorizedSummary = "unspecified"
)

var titleCaser = cases.Title(language.English)

func CategoryLabel(category *string) string {
	if category == nil || *category == "" {
		return "Not specified"
	}
	return titleCaser.String(*category)
}

func CategoryChoices() []CategoryChoice {
	choices := make([]CategoryChoice, 0, len(models.Categories))
	for _, c := range models.Categories {
		c := c
		choices = append(choices, CategoryChoice{Value: c, Label: CategoryLabel(&c)})
	}
	return choices
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryModel(req *SignupRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}

	entry := &models.WaitlistEntry{Email: req.Email}
	if req.Category != "" {
		category := req.Category
		entry.Category = &category
	}
	return entry
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		ID:            entry.ID,
		Email:         entry.Email,
		Category:      entry.Category,
		CategoryLabel: CategoryLabel(entry.Category),
		SignedUpAt:    entry.SignedUpAt.UTC().Format(constants.RFC3339DateTimeFormat),
	}
}
