package models

// The trace model is the day-centric tracker: history is a list of day
// records, each carrying the set of completed tasks for that day. It predates
// the flat log model and the two coexist.

// TraceDayStatus is a task's status for the current day.
type TraceDayStatus string

const (
	TraceDayPending TraceDayStatus = "pending"
	TraceDayDone    TraceDayStatus = "done"
	TraceDaySkipped TraceDayStatus = "skipped"
)

// TraceTask is a task in the day-record tracker. Streak is a cached value
// maintained incrementally on complete/uncomplete; it must always be
// restorable by a full recomputation from history.
type TraceTask struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        TaskType       `json:"type"`
	Color       string         `json:"color,omitempty"`
	DayStatus   TraceDayStatus `json:"day_status"`
	Streak      int            `json:"streak"`
	BestStreak  int            `json:"best_streak"`
	CreatedDate string         `json:"created_date,omitempty"`
}

// TraceTaskRecord is one task's completion detail within a day record.
type TraceTaskRecord struct {
	TaskID      string   `json:"task_id"`
	Completed   bool     `json:"completed"`
	Value       *float64 `json:"value,omitempty"`
	Text        string   `json:"text,omitempty"`
	Rating      int      `json:"rating,omitempty"`
	CompletedAt string   `json:"completed_at,omitempty"`
}

// TraceDayRecord holds everything recorded for one calendar day.
// CompletedTaskIDs is the legacy completion list; Records carries per-task
// detail and is the authoritative field since schema V2.
type TraceDayRecord struct {
	Date             string            `json:"date"`
	CompletedTaskIDs []string          `json:"completed_task_ids"`
	Records          []TraceTaskRecord `json:"records"`
}

// Completed reports whether the given task is marked completed on this day.
// Records take precedence over the legacy ID list.
func (d TraceDayRecord) Completed(taskID string) bool {
	for _, r := range d.Records {
		if r.TaskID == taskID {
			return r.Completed
		}
	}
	for _, id := range d.CompletedTaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// TraceUser is the per-user aggregate in the trace store. Schema V3 reduced it
// to the streak counter alone.
type TraceUser struct {
	Streak int `json:"streak"`
}

// TraceState is the canonical persisted shape of the day-record store.
type TraceState struct {
	Tasks   []TraceTask      `json:"tasks"`
	User    TraceUser        `json:"user"`
	History []TraceDayRecord `json:"history"`
}
