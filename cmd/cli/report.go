package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/akeren/seam-landing/domain/visits"
	"github.com/akeren/seam-landing/domain/waitlist"
	"github.com/akeren/seam-landing/pkg/constants"
)

const (
	defaultReportDays = 7
	maxReportDays     = 366
)

// writeReport prints waitlist counts per category and one line per calendar
// day from today back, days without visits included. today is a calendar
// date as produced by visits.CalendarDate.
func writeReport(ctx context.Context, out io.Writer, waitlistService waitlist.WaitlistService, visitService visits.VisitService, days int, today time.Time) error {
	if days <= 0 || days > maxReportDays {
		return fmt.Errorf("--days must be between 1 and %d, got %d", maxReportDays, days)
	}

	summary, err := waitlistService.Summary(ctx)
	if err != nil {
		return fmt.Errorf("waitlist summary: %w", err)
	}

	visitSummary, err := visitService.Summary(ctx)
	if err != nil {
		return fmt.Errorf("visit summary: %w", err)
	}

	first := today.AddDate(0, 0, -(days - 1))
	records, err := visitService.ListVisits(ctx, &visits.ListVisitsQuery{
		From:  first.Format(constants.CalendarDateFormat),
		To:    today.Format(constants.CalendarDateFormat),
		Limit: days,
	})
	if err != nil {
		return fmt.Errorf("list visits: %w", err)
	}

	counts := make(map[string]int64, len(records))
	for _, record := range records {
		counts[record.VisitDate] = record.VisitCount
	}

	fmt.Fprintf(out, "Waitlist: %d signups\n", summary.Total)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(tw, "  %s\t%d\n", category, summary.ByCategory[category])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nVisits: %d over %d days (today %s: %d)\n",
		visitSummary.TotalVisits, visitSummary.DaysCounted, visitSummary.Today, visitSummary.TodayCount)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for day := today; !day.Before(first); day = day.AddDate(0, 0, -1) {
		date := day.Format(constants.CalendarDateFormat)
		fmt.Fprintf(tw, "  %s\t%d\n", date, counts[date])
	}

	return tw.Flush()
}
