// Package streak computes continuous-completion streaks from log history.
//
// Two streak models coexist on purpose and encode different semantics: the
// day-record model measures per-habit continuity (and whole-day discipline
// via the user streak), while the flat-log model measures whether every
// active task was logged each day. They are kept as separately named, and
// separately tested, algorithms.
package streak

import (
	"sort"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

// RecalculateTask computes a task's current and best streak from the
// day-record history.
//
// The current streak only counts if the most recent completed day is today or
// yesterday; otherwise it is 0 no matter how long the older run was. The best
// streak is the longest run of consecutive completed days anywhere in
// history, unbounded by recency.
func RecalculateTask(taskID string, history []models.TraceDayRecord, today string) (current, best int) {
	days := completedDaysAsc(taskID, history)
	if len(days) == 0 {
		return 0, 0
	}

	completed := make(map[string]struct{}, len(days))
	for _, d := range days {
		completed[d] = struct{}{}
	}

	newest := days[len(days)-1]
	if newest == today || newest == dateutil.Yesterday(today) {
		current = 1
		for d := dateutil.Yesterday(newest); ; d = dateutil.Yesterday(d) {
			if _, ok := completed[d]; !ok {
				break
			}
			current++
		}
	}

	best = 1
	run := 1
	for i := 1; i < len(days); i++ {
		if dateutil.DayDiff(days[i-1], days[i]) == 1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	if current > best {
		best = current
	}

	return current, best
}

// RecalculateAll recomputes every cached streak in the state from scratch:
// each task's current and best streak plus the user's any-completion streak.
// This is the authoritative computation the incremental updates must agree
// with.
func RecalculateAll(state *models.TraceState, today string) {
	for i := range state.Tasks {
		cur, best := RecalculateTask(state.Tasks[i].ID, state.History, today)
		state.Tasks[i].Streak = cur
		state.Tasks[i].BestStreak = best
	}
	state.User.Streak = UserStreak(state.History, today)
}

// UserStreak counts consecutive days, ending at today or yesterday, on which
// at least one task was completed.
func UserStreak(history []models.TraceDayRecord, today string) int {
	active := make(map[string]struct{}, len(history))
	for _, d := range history {
		if dayHasCompletion(d) {
			active[d.Date] = struct{}{}
		}
	}
	if len(active) == 0 {
		return 0
	}

	anchor := today
	if _, ok := active[anchor]; !ok {
		anchor = dateutil.Yesterday(today)
		if _, ok := active[anchor]; !ok {
			return 0
		}
	}

	streak := 0
	for d := anchor; ; d = dateutil.Yesterday(d) {
		if _, ok := active[d]; !ok {
			break
		}
		streak++
	}
	return streak
}

func dayHasCompletion(d models.TraceDayRecord) bool {
	for _, r := range d.Records {
		if r.Completed {
			return true
		}
	}
	return len(d.Records) == 0 && len(d.CompletedTaskIDs) > 0
}

// completedDaysAsc returns the sorted, de-duplicated day keys on which the
// task is recorded completed.
func completedDaysAsc(taskID string, history []models.TraceDayRecord) []string {
	uniq := make(map[string]struct{})
	for _, d := range history {
		if d.Completed(taskID) {
			uniq[d.Date] = struct{}{}
		}
	}
	days := make([]string, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Overall computes the aggregate streak over the flat-log model: a day counts
// only if every non-violation task active on that day has a log. The scan
// starts at today and stops at the first failing day. A day with zero active
// tasks fails the test and breaks the streak; days before a task's start date
// do not require that task.
func Overall(tasks []models.Task, logs []models.Log, today string) int {
	logged := make(map[string]map[string]struct{})
	for _, l := range logs {
		byTask := logged[l.Date]
		if byTask == nil {
			byTask = make(map[string]struct{})
			logged[l.Date] = byTask
		}
		byTask[l.TaskID] = struct{}{}
	}

	streak := 0
	for day := today; ; day = dateutil.Yesterday(day) {
		if !allActiveLogged(tasks, logged[day], day) {
			break
		}
		streak++
	}
	return streak
}

func allActiveLogged(tasks []models.Task, loggedThatDay map[string]struct{}, day string) bool {
	activeCount := 0
	for _, task := range tasks {
		if task.Type == models.TaskTypeViolation || !task.ActiveOn(day) {
			continue
		}
		activeCount++
		if _, ok := loggedThatDay[task.ID]; !ok {
			return false
		}
	}
	return activeCount > 0
}

// TaskStreakAt counts consecutive days with a log for the given task, walking
// backward from the anchor date. The anchor itself must be logged for the
// streak to be non-zero; there is no today/yesterday grace in this model. The
// anchor need not be today, which supports viewing streaks as of an arbitrary
// selected date.
func TaskStreakAt(logs []models.Log, taskID string, anchor string) int {
	days := make(map[string]struct{})
	for _, l := range logs {
		if l.TaskID == taskID {
			days[l.Date] = struct{}{}
		}
	}

	streak := 0
	for d := anchor; ; d = dateutil.Yesterday(d) {
		if _, ok := days[d]; !ok {
			break
		}
		streak++
	}
	return streak
}
