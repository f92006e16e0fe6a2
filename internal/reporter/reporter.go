package reporter

import (
	"encoding/json"
	"fmt"
	"time"

	"titlewatch/internal/config"
	"titlewatch/internal/models"
)

// Store is the read side of the observation repository
type Store interface {
	GetObservationsSince(keyword string, since time.Time) ([]*models.Observation, error)
	GetLatestBefore(keyword string, t time.Time) (*models.Observation, error)
	CountErrorsSince(since time.Time) (int64, error)
}

// Reporter handles report generation
type Reporter struct {
	config *config.Config
	store  Store
	now    func() time.Time
}

// New creates a new reporter
func New(cfg *config.Config, store Store) *Reporter {
	return &Reporter{
		config: cfg,
		store:  store,
		now:    time.Now,
	}
}

// GenerateReport generates a report for the configured keyword
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	period, err := r.GetPeriod(periodType)
	if err != nil {
		return nil, err
	}

	keyword := r.config.Widget.FilterKeyword

	observations, err := r.store.GetObservationsSince(keyword, period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}

	// The state at the start of the period is whatever was last recorded
	// before it.
	prev, err := r.store.GetLatestBefore(keyword, period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous observation: %w", err)
	}

	scanErrors, err := r.store.CountErrorsSince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to count scan errors: %w", err)
	}

	end := period.End
	if now := r.now(); now.Before(end) {
		end = now
	}

	report := &models.Report{
		Period:      *period,
		Keyword:     keyword,
		ScanErrors:  scanErrors,
		GeneratedAt: r.now(),
	}

	cursor := period.Start
	var current uint32
	if prev != nil {
		current = prev.Count
		report.LastCount = prev.Count
	}

	for _, obs := range observations {
		if !obs.Timestamp.Before(end) {
			break
		}
		if current > 0 {
			report.UnreadSeconds += int64(obs.Timestamp.Sub(cursor).Seconds())
		}
		cursor = obs.Timestamp
		current = obs.Count

		report.Changes++
		report.LastCount = obs.Count
		if obs.Count > report.PeakCount {
			report.PeakCount = obs.Count
		}
	}

	if current > 0 && end.After(cursor) {
		report.UnreadSeconds += int64(end.Sub(cursor).Seconds())
	}
	report.UnreadMinutes = float64(report.UnreadSeconds) / 60.0

	return report, nil
}

// GetPeriod calculates the time range for the report
func (r *Reporter) GetPeriod(periodType string) (*models.ReportPeriod, error) {
	now := r.now().In(r.config.Location())
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 1)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.Report) string {
	output := fmt.Sprintf("Notification Report - %s (%s)\n", report.Keyword, report.Period.Type)
	output += fmt.Sprintf("Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))

	if report.Changes == 0 && report.LastCount == 0 {
		output += "No notifications recorded for this period.\n"
	} else {
		output += fmt.Sprintf("%-20s %10d\n", "Changes", report.Changes)
		output += fmt.Sprintf("%-20s %10d\n", "Peak count", report.PeakCount)
		output += fmt.Sprintf("%-20s %10d\n", "Last count", report.LastCount)
		output += fmt.Sprintf("%-20s %10.0fm\n", "Time with unread", report.UnreadMinutes)
	}

	if report.ScanErrors > 0 {
		output += fmt.Sprintf("%-20s %10d\n", "Scan errors", report.ScanErrors)
	}

	return output
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
