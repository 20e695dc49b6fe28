package stats

import (
	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

// Trend classifies the direction of a period-over-period delta.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Period selects the comparison window length.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func (p Period) days() int {
	if p == PeriodMonth {
		return 30
	}
	return 7
}

// Comparison holds completion totals for the current period and the
// immediately preceding period of the same length.
type Comparison struct {
	Period   Period `json:"period"`
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
	Trend    Trend  `json:"trend"`
}

// ComparePeriod totals non-violation completions over the window ending at
// today and the window immediately before it. Flat means exact equality;
// there is no tolerance band.
func ComparePeriod(tasks []models.Task, logs []models.Log, today string, period Period) Comparison {
	n := period.days()
	currentStart := dateutil.AddDays(today, -(n - 1))
	previousStart := dateutil.AddDays(today, -(2*n - 1))
	previousEnd := dateutil.AddDays(today, -n)

	current := countCompletions(tasks, logs, currentStart, today)
	previous := countCompletions(tasks, logs, previousStart, previousEnd)

	return Comparison{
		Period:   period,
		Current:  current,
		Previous: previous,
		Trend:    classify(current, previous),
	}
}

func classify(current, previous int) Trend {
	switch {
	case current > previous:
		return TrendUp
	case current < previous:
		return TrendDown
	default:
		return TrendFlat
	}
}

// countCompletions counts non-violation logs of known tasks with from <= date
// <= to.
func countCompletions(tasks []models.Task, logs []models.Log, from, to string) int {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	count := 0
	for _, l := range logs {
		task, ok := byID[l.TaskID]
		if !ok || task.Type == models.TaskTypeViolation {
			continue
		}
		if l.Date >= from && l.Date <= to {
			count++
		}
	}
	return count
}

// YearSummary is the year-at-a-glance aggregate.
type YearSummary struct {
	Year        int    `json:"year"`
	Total       int    `json:"total"`
	PerfectDays int    `json:"perfect_days"`
	ActiveDays  int    `json:"active_days"`
	BestDay     string `json:"best_day,omitempty"`
	BestDayN    int    `json:"best_day_count"`
}

// SummarizeYear derives the year summary from the heat-map cells so the two
// surfaces can never disagree.
func SummarizeYear(year int, tasks []models.Task, logs []models.Log) YearSummary {
	summary := YearSummary{Year: year}
	for _, cell := range BuildYearHeatmap(year, tasks, logs) {
		summary.Total += cell.Count
		if cell.Perfect {
			summary.PerfectDays++
		}
		if cell.Count > 0 {
			summary.ActiveDays++
		}
		if cell.Count > summary.BestDayN {
			summary.BestDayN = cell.Count
			summary.BestDay = cell.Date
		}
	}
	return summary
}
