package achievements

import (
	"sort"
	"time"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/streak"
)

// Evaluate derives the unlock status of every catalog entry from the given
// tasks and logs. It is a pure function: deterministic for identical inputs,
// no mutation of its arguments, and total over well-formed input. Logs whose
// task no longer exists are silently excluded.
//
// Progress may exceed ProgressMax once an entry is unlocked; clamping is a
// display concern.
func Evaluate(catalog []models.Achievement, logs []models.Log, tasks []models.Task, today string) []models.AchievementStatus {
	counted := countableLogs(logs, tasks)
	overall := streak.Overall(tasks, logs, today)

	statuses := make([]models.AchievementStatus, 0, len(catalog))
	for _, entry := range catalog {
		status := models.AchievementStatus{Achievement: entry}

		switch entry.Condition.Type {
		case models.ConditionStreak:
			evalStreak(&status, overall, today)
		case models.ConditionTotal:
			evalTotal(&status, counted)
		case models.ConditionMonthlyPerfect:
			evalMonthlyPerfect(&status, tasks, logs, today)
		}

		statuses = append(statuses, status)
	}
	return statuses
}

// countableLogs returns the logs that count toward totals: logs of existing,
// non-violation tasks, sorted ascending by date with original order kept for
// ties, so the N-th log (and with it every unlock date) is reproducible.
func countableLogs(logs []models.Log, tasks []models.Task) []models.Log {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	counted := make([]models.Log, 0, len(logs))
	for _, l := range logs {
		task, ok := byID[l.TaskID]
		if !ok || task.Type == models.TaskTypeViolation {
			continue
		}
		counted = append(counted, l)
	}

	sort.SliceStable(counted, func(i, j int) bool {
		return counted[i].Date < counted[j].Date
	})
	return counted
}

func evalStreak(status *models.AchievementStatus, overall int, today string) {
	days := status.Condition.Days
	status.Progress = overall
	status.ProgressMax = days
	if overall >= days {
		status.Unlocked = true
		// The streak runs through today, so it first reached the threshold
		// length (overall - days) days ago.
		status.UnlockedDate = dateutil.AddDays(today, -(overall - days))
	}
}

func evalTotal(status *models.AchievementStatus, counted []models.Log) {
	count := status.Condition.Count
	status.Progress = len(counted)
	status.ProgressMax = count
	if len(counted) >= count && count > 0 {
		status.Unlocked = true
		status.UnlockedDate = counted[count-1].Date
	}
}

// evalMonthlyPerfect checks one explicit (month, year). Task eligibility for
// the whole month is judged on the 15th, a fixed reference day; tasks that
// start or end mid-month are in or out based on that day alone. Days of the
// month after today are excluded from the denominator.
func evalMonthlyPerfect(status *models.AchievementStatus, tasks []models.Task, logs []models.Log, today string) {
	month := time.Month(status.Condition.Month)
	year := status.Condition.Year

	reference := dateutil.MonthDay(year, month, 15)
	eligible := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Type == models.TaskTypeViolation {
			continue
		}
		if t.ActiveOn(reference) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		// Nothing to be perfect at; the entry can never unlock.
		return
	}

	logged := make(map[string]map[string]struct{})
	for _, l := range logs {
		byTask := logged[l.Date]
		if byTask == nil {
			byTask = make(map[string]struct{})
			logged[l.Date] = byTask
		}
		byTask[l.TaskID] = struct{}{}
	}

	checked := 0
	perfect := 0
	lastChecked := ""
	for dayNum := 1; dayNum <= dateutil.DaysInMonth(year, month); dayNum++ {
		day := dateutil.MonthDay(year, month, dayNum)
		if day > today {
			break
		}
		checked++
		lastChecked = day

		dayPerfect := true
		for _, t := range eligible {
			if _, ok := logged[day][t.ID]; !ok {
				dayPerfect = false
				break
			}
		}
		if dayPerfect {
			perfect++
		}
	}

	status.Progress = perfect
	status.ProgressMax = checked
	if checked > 0 && perfect == checked {
		status.Unlocked = true
		status.UnlockedDate = lastChecked
	}
}
