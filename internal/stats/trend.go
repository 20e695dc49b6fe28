package stats

import (
	"time"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

// TrendPoint is one month of the per-task trend series. Counts is keyed by
// task ID so a multi-series chart can be driven directly from the slice.
type TrendPoint struct {
	Month  time.Month     `json:"month"`
	Counts map[string]int `json:"counts"`
}

// MonthlyTrend produces twelve points for the year, one per month, counting
// each requested task's completions in that month. Tasks without logs in a
// month are present with a zero count so series stay aligned.
func MonthlyTrend(year int, taskIDs []string, logs []models.Log) []TrendPoint {
	wanted := make(map[string]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = struct{}{}
	}

	points := make([]TrendPoint, 12)
	for i := range points {
		counts := make(map[string]int, len(taskIDs))
		for _, id := range taskIDs {
			counts[id] = 0
		}
		points[i] = TrendPoint{Month: time.Month(i + 1), Counts: counts}
	}

	for _, l := range logs {
		if _, ok := wanted[l.TaskID]; !ok {
			continue
		}
		t, err := dateutil.ParseDay(l.Date, time.UTC)
		if err != nil || t.Year() != year {
			continue
		}
		points[int(t.Month())-1].Counts[l.TaskID]++
	}

	return points
}
