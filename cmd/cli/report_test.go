package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akeren/seam-landing/domain/visits"
	"github.com/akeren/seam-landing/domain/waitlist"
	apperrors "github.com/akeren/seam-landing/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var june2nd = time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)

func TestWriteReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	waitlistService := waitlist.NewMockWaitlistService(ctrl)
	visitService := visits.NewMockVisitService(ctrl)

	waitlistService.EXPECT().Summary(gomock.Any()).Return(&waitlist.WaitlistSummary{
		Total:      5,
		ByCategory: map[string]int64{"notes": 3, "ideas": 1, "unspecified": 1},
	}, nil)
	visitService.EXPECT().Summary(gomock.Any()).Return(&visits.VisitSummary{
		TotalVisits: 42, DaysCounted: 2, Today: "2024-06-02", TodayCount: 40,
	}, nil)
	visitService.EXPECT().ListVisits(gomock.Any(), &visits.ListVisitsQuery{From: "2024-06-01", To: "2024-06-02", Limit: 2}).
		Return([]visits.DailyVisitResponse{
			{VisitDate: "2024-06-02", VisitCount: 40},
			{VisitDate: "2024-06-01", VisitCount: 2},
		}, nil)

	var out bytes.Buffer
	require.NoError(t, writeReport(context.Background(), &out, waitlistService, visitService, 2, june2nd))

	report := out.String()
	assert.Contains(t, report, "Waitlist: 5 signups")
	assert.Regexp(t, `(?m)^\s+notes\s+3$`, report)
	assert.Regexp(t, `(?m)^\s+unspecified\s+1$`, report)
	assert.Contains(t, report, "42 over 2 days")
	assert.Regexp(t, `(?m)^\s+2024-06-02\s+40\n\s+2024-06-01\s+2$`, report)
	assert.Less(t, strings.Index(report, "ideas"), strings.Index(report, "notes"))
}

func TestWriteReport_CoversEveryCalendarDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	waitlistService := waitlist.NewMockWaitlistService(ctrl)
	visitService := visits.NewMockVisitService(ctrl)

	waitlistService.EXPECT().Summary(gomock.Any()).Return(&waitlist.WaitlistSummary{ByCategory: map[string]int64{}}, nil)
	visitService.EXPECT().Summary(gomock.Any()).Return(&visits.VisitSummary{TotalVisits: 9, DaysCounted: 1, Today: "2024-06-02"}, nil)
	// Only one of the last three days has a row.
	visitService.EXPECT().ListVisits(gomock.Any(), &visits.ListVisitsQuery{From: "2024-05-31", To: "2024-06-02", Limit: 3}).
		Return([]visits.DailyVisitResponse{{VisitDate: "2024-05-31", VisitCount: 9}}, nil)

	var out bytes.Buffer
	require.NoError(t, writeReport(context.Background(), &out, waitlistService, visitService, 3, june2nd))

	report := out.String()
	assert.Regexp(t, `(?m)^\s+2024-06-02\s+0$`, report)
	assert.Regexp(t, `(?m)^\s+2024-06-01\s+0$`, report)
	assert.Regexp(t, `(?m)^\s+2024-05-31\s+9$`, report)
	assert.NotContains(t, report, "2024-05-30")
}

func TestWriteReport_RejectsBadDays(t *testing.T) {
	ctrl := gomock.NewController(t)

	for _, days := range []int{0, -1, 400} {
		err := writeReport(context.Background(), &bytes.Buffer{}, waitlist.NewMockWaitlistService(ctrl), visits.NewMockVisitService(ctrl), days, june2nd)
		assert.Error(t, err)
	}
}

func TestWriteReport_PropagatesStorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	waitlistService := waitlist.NewMockWaitlistService(ctrl)
	waitlistService.EXPECT().Summary(gomock.Any()).Return(nil, apperrors.NewDatabaseError("unable to summarize waitlist", nil))

	err := writeReport(context.Background(), &bytes.Buffer{}, waitlistService, visits.NewMockVisitService(ctrl), 7, june2nd)
	require.Error(t, err)
	assert.True(t, apperrors.IsStorageUnavailable(err))
}
