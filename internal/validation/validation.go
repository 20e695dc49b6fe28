package validation

import (
	"fmt"
	"sort"

	"github.com/habitline/habitline/internal/dateutil"
	"github.com/habitline/habitline/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateTaskID   ConflictType = "duplicate_task_id"
	ConflictDuplicateTaskName ConflictType = "duplicate_task_name"
	ConflictEmptyTaskName     ConflictType = "empty_task_name"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictInvertedWindow    ConflictType = "inverted_window"
	ConflictOrphanLog         ConflictType = "orphan_log"
	ConflictDuplicateLog      ConflictType = "duplicate_log"
	ConflictFutureLog         ConflictType = "future_log"
	ConflictInvalidRating     ConflictType = "invalid_rating"
	ConflictMissingValue      ConflictType = "missing_value"
)

// Conflict represents a detected problem in tasks or logs
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Task/log names involved
	TaskIDs     []string // IDs of tasks involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks tasks and logs for structural problems. It never mutates
// its inputs; repairs happen on load in the migration package.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateTasks checks the task list for conflicts.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	idCount := make(map[string][]string)
	nameCount := make(map[string][]string)
	for _, task := range tasks {
		idCount[task.ID] = append(idCount[task.ID], task.Name)
		if task.Name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyTaskName,
				Description: fmt.Sprintf("Task %s has an empty name", task.ID),
				TaskIDs:     []string{task.ID},
			})
			continue
		}
		nameCount[task.Name] = append(nameCount[task.Name], task.ID)
	}

	for id, names := range idCount {
		if len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskID,
				Description: fmt.Sprintf("Duplicate task ID: %s (names: %v)", id, names),
				Items:       names,
				TaskIDs:     []string{id},
			})
		}
	}
	for name, ids := range nameCount {
		if len(ids) > 1 {
			sort.Strings(ids)
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("Duplicate task name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				TaskIDs:     ids,
			})
		}
	}

	for _, task := range tasks {
		if task.StartDate != "" && !dateutil.IsValidDay(task.StartDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Task %q has invalid start date: %s", task.Name, task.StartDate),
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}
		if task.EndDate != "" && !dateutil.IsValidDay(task.EndDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Task %q has invalid end date: %s", task.Name, task.EndDate),
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
			continue
		}
		if task.StartDate != "" && task.EndDate != "" &&
			dateutil.IsValidDay(task.StartDate) && task.EndDate < task.StartDate {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvertedWindow,
				Description: fmt.Sprintf("Task %q ends (%s) before it starts (%s)", task.Name, task.EndDate, task.StartDate),
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}
	}

	return result
}

// ValidateLogs checks logs against the task list. today caps the allowed log
// date; pass an empty string to skip the future check.
func (v *Validator) ValidateLogs(logs []models.Log, tasks []models.Task, today string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	taskByID := make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		taskByID[task.ID] = task
	}

	seen := make(map[string]bool)
	for _, log := range logs {
		task, known := taskByID[log.TaskID]
		if !known {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanLog,
				Description: fmt.Sprintf("Log %s references unknown task %s", log.ID, log.TaskID),
				Date:        log.Date,
				TaskIDs:     []string{log.TaskID},
			})
			continue
		}

		if !dateutil.IsValidDay(log.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Log for %q has invalid date: %s", task.Name, log.Date),
				Date:        log.Date,
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
			continue
		}
		if today != "" && log.Date > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureLog,
				Description: fmt.Sprintf("Log for %q is dated in the future: %s", task.Name, log.Date),
				Date:        log.Date,
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}

		key := log.TaskID + "|" + log.Date
		if seen[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateLog,
				Description: fmt.Sprintf("Duplicate log for %q on %s", task.Name, log.Date),
				Date:        log.Date,
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}
		seen[key] = true

		if task.Type == models.TaskTypeNumber && log.Value == nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingValue,
				Description: fmt.Sprintf("Log for number task %q on %s has no value", task.Name, log.Date),
				Date:        log.Date,
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}
		if log.Rating != 0 && (log.Rating < 1 || log.Rating > 5) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRating,
				Description: fmt.Sprintf("Log for %q on %s has rating %d outside 1-5", task.Name, log.Date, log.Rating),
				Date:        log.Date,
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}
	}

	return result
}

// ValidateState runs both task and log validation and merges the conflicts.
func (v *Validator) ValidateState(state models.HabitState, today string) ValidationResult {
	taskResult := v.ValidateTasks(state.Tasks)
	logResult := v.ValidateLogs(state.Logs, state.Tasks, today)
	return ValidationResult{Conflicts: append(taskResult.Conflicts, logResult.Conflicts...)}
}
