package streak

import (
	"fmt"
	"sort"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

// Tracker applies completion mutations to a trace state while keeping the
// cached streak counters consistent. Same-day complete/uncomplete are handled
// incrementally; any out-of-order write invalidates the cache and triggers a
// full recomputation, because inserting into the middle of history can both
// raise and lower a streak.
type Tracker struct {
	state *models.TraceState
}

// NewTracker wraps a canonical (post-migration) trace state.
func NewTracker(state *models.TraceState) *Tracker {
	return &Tracker{state: state}
}

// Complete marks the task completed for today and updates its streak
// incrementally: extending an up-to-yesterday run by one, or starting a new
// run of one. Completing an already-completed task is a no-op.
func (t *Tracker) Complete(taskID, today string, detail models.TraceTaskRecord) bool {
	task := t.findTask(taskID)
	if task == nil {
		return false
	}

	day := t.ensureDay(today)
	if day.Completed(taskID) {
		return false
	}

	detail.TaskID = taskID
	detail.Completed = true
	t.setRecord(day, detail)

	// The cached streak for an uncompleted today is exactly the run ending at
	// yesterday (or 0), so extending it by one matches a full recomputation.
	task.Streak++
	if task.Streak > task.BestStreak {
		task.BestStreak = task.Streak
	}
	task.DayStatus = models.TraceDayDone

	t.state.User.Streak = UserStreak(t.state.History, today)
	return true
}

// Uncomplete reverts today's completion. The current streak is decremented
// rather than recomputed; the best streak cannot be walked back locally (the
// undone day may or may not have been part of the historical best), so it is
// re-derived by the ascending run scan. The result must equal a full
// RecalculateAll over the same history.
func (t *Tracker) Uncomplete(taskID, today string) bool {
	task := t.findTask(taskID)
	if task == nil {
		return false
	}

	day := t.findDay(today)
	if day == nil || !day.Completed(taskID) {
		return false
	}
	t.removeRecord(day, taskID)

	if task.Streak > 0 {
		task.Streak--
	}
	_, task.BestStreak = RecalculateTask(taskID, t.state.History, today)
	task.DayStatus = models.TraceDayPending

	t.state.User.Streak = UserStreak(t.state.History, today)
	return true
}

// Skip marks the task deliberately not-done for today. It is a status-only
// action: no day record is written and no streak counter moves, so a skipped
// day still breaks a run. A task already completed today cannot be skipped;
// uncomplete it first.
func (t *Tracker) Skip(taskID, today string) bool {
	task := t.findTask(taskID)
	if task == nil || task.DayStatus == models.TraceDaySkipped {
		return false
	}
	if day := t.findDay(today); day != nil && day.Completed(taskID) {
		return false
	}
	task.DayStatus = models.TraceDaySkipped
	return true
}

// Backfill records a completion (or removes one) on a past date. The date is
// the single boundary that accepts user-typed input, so it is validated here:
// malformed or future dates are rejected rather than silently entering
// history. A successful backfill always triggers a full streak recomputation.
func (t *Tracker) Backfill(taskID, date, today string, completed bool) error {
	if !dateutil.IsValidDay(date) {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	if date > today {
		return fmt.Errorf("cannot backfill future date %s", date)
	}
	if t.findTask(taskID) == nil {
		return fmt.Errorf("unknown task %s", taskID)
	}

	day := t.ensureDay(date)
	if completed {
		t.setRecord(day, models.TraceTaskRecord{TaskID: taskID, Completed: true})
	} else {
		t.removeRecord(day, taskID)
	}

	RecalculateAll(t.state, today)
	return nil
}

func (t *Tracker) findTask(taskID string) *models.TraceTask {
	for i := range t.state.Tasks {
		if t.state.Tasks[i].ID == taskID {
			return &t.state.Tasks[i]
		}
	}
	return nil
}

func (t *Tracker) findDay(date string) *models.TraceDayRecord {
	for i := range t.state.History {
		if t.state.History[i].Date == date {
			return &t.state.History[i]
		}
	}
	return nil
}

// ensureDay returns the day record for the date, creating and inserting it in
// date order when absent.
func (t *Tracker) ensureDay(date string) *models.TraceDayRecord {
	if day := t.findDay(date); day != nil {
		return day
	}
	t.state.History = append(t.state.History, models.TraceDayRecord{
		Date:             date,
		CompletedTaskIDs: []string{},
		Records:          []models.TraceTaskRecord{},
	})
	sort.Slice(t.state.History, func(i, j int) bool {
		return t.state.History[i].Date < t.state.History[j].Date
	})
	return t.findDay(date)
}

func (t *Tracker) setRecord(day *models.TraceDayRecord, rec models.TraceTaskRecord) {
	for i := range day.Records {
		if day.Records[i].TaskID == rec.TaskID {
			day.Records[i] = rec
			t.syncCompletedIDs(day)
			return
		}
	}
	day.Records = append(day.Records, rec)
	t.syncCompletedIDs(day)
}

func (t *Tracker) removeRecord(day *models.TraceDayRecord, taskID string) {
	out := day.Records[:0]
	for _, r := range day.Records {
		if r.TaskID != taskID {
			out = append(out, r)
		}
	}
	day.Records = out
	t.syncCompletedIDs(day)
}

// syncCompletedIDs keeps the legacy completed-ID list consistent with the
// records, since older readers still consult it.
func (t *Tracker) syncCompletedIDs(day *models.TraceDayRecord) {
	ids := []string{}
	for _, r := range day.Records {
		if r.Completed {
			ids = append(ids, r.TaskID)
		}
	}
	day.CompletedTaskIDs = ids
}
