// Package stats aggregates the flat log history into calendar heat-maps,
// monthly trend series, and period-over-period comparisons. Everything here
// is a pure computation over in-memory snapshots; logs whose task no longer
// exists are silently excluded.
package stats

import (
	"sort"
	"time"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

// Heat-map shades, bucketed by completion count. The bucket boundaries are a
// fixed step function: 0, 1-2, 3-4, 5+.
var heatShades = [...]string{"#ebedf0", "#9be9a8", "#40c463", "#216e39"}

// HeatmapCell describes one calendar day of the year heat-map.
type HeatmapCell struct {
	Date      string   `json:"date"`
	Count     int      `json:"count"`
	TaskIDs   []string `json:"task_ids"`
	Violation bool     `json:"violation"`
	Perfect   bool     `json:"perfect"`
	Level     int      `json:"level"`
	Color     string   `json:"color"`
}

// HeatLevel buckets a completion count into a shade index.
func HeatLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	default:
		return 3
	}
}

// HeatColor returns the display color for a completion count.
func HeatColor(count int) string {
	return heatShades[HeatLevel(count)]
}

// BuildYearHeatmap produces one cell per calendar day of the year. The count
// is the number of distinct non-violation tasks logged that day; a violation
// log sets the Violation flag but never contributes to the count. A day is
// perfect when every non-violation task active that day has a log and at
// least one task is active.
func BuildYearHeatmap(year int, tasks []models.Task, logs []models.Log) []HeatmapCell {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	completions := make(map[string]map[string]struct{})
	violations := make(map[string]bool)
	for _, l := range logs {
		task, ok := byID[l.TaskID]
		if !ok {
			continue
		}
		if task.Type == models.TaskTypeViolation {
			violations[l.Date] = true
			continue
		}
		byTask := completions[l.Date]
		if byTask == nil {
			byTask = make(map[string]struct{})
			completions[l.Date] = byTask
		}
		byTask[l.TaskID] = struct{}{}
	}

	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var cells []HeatmapCell
	for d := first; d.Year() == year; d = d.AddDate(0, 0, 1) {
		date := dateutil.DayKey(d)
		done := completions[date]

		ids := make([]string, 0, len(done))
		for id := range done {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		cells = append(cells, HeatmapCell{
			Date:      date,
			Count:     len(done),
			TaskIDs:   ids,
			Violation: violations[date],
			Perfect:   isPerfectDay(tasks, done, date),
			Level:     HeatLevel(len(done)),
			Color:     HeatColor(len(done)),
		})
	}
	return cells
}

// isPerfectDay reports whether every non-violation task active on the day has
// a log. Days with no active tasks are never perfect.
func isPerfectDay(tasks []models.Task, done map[string]struct{}, date string) bool {
	active := 0
	for _, t := range tasks {
		if t.Type == models.TaskTypeViolation || !t.ActiveOn(date) {
			continue
		}
		active++
		if _, ok := done[t.ID]; !ok {
			return false
		}
	}
	return active > 0
}
