package models

// TaskType describes what a completion of the task records.
type TaskType string

const (
	TaskTypeCheck     TaskType = "check"
	TaskTypeCheckText TaskType = "check_text"
	TaskTypeNumber    TaskType = "number"
	TaskTypeViolation TaskType = "violation"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusActive TaskStatus = "active"
	TaskStatusPaused TaskStatus = "paused"
	TaskStatusEnded  TaskStatus = "ended"
)

// Task is a habit definition. StartDate and EndDate (both inclusive,
// YYYY-MM-DD) bound the window in which the task is due.
type Task struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         TaskType   `json:"type"`
	Status       TaskStatus `json:"status"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	InitialValue *float64   `json:"initial_value,omitempty"`
	TargetValue  *float64   `json:"target_value,omitempty"`
	Color        string     `json:"color,omitempty"`
}

// ActiveOn reports whether the task is due on the given calendar day: the day
// falls inside [StartDate, EndDate]. An empty EndDate means no upper bound.
func (t Task) ActiveOn(day string) bool {
	if t.StartDate != "" && day < t.StartDate {
		return false
	}
	if t.EndDate != "" && day > t.EndDate {
		return false
	}
	return true
}

// Log is one completion record for one task on one calendar day. At most one
// log may exist per (TaskID, Date) pair.
type Log struct {
	ID     string   `json:"id"`
	TaskID string   `json:"task_id"`
	Date   string   `json:"date"`
	Value  *float64 `json:"value,omitempty"`
	Text   string   `json:"text,omitempty"`
	Rating int      `json:"rating,omitempty"` // 1-5, 0 when unset
}

// HabitState is the canonical persisted shape of the habit-tracker store.
type HabitState struct {
	Tasks []Task `json:"tasks"`
	Logs  []Log  `json:"logs"`
}
