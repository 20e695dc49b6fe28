package cli

import (
	"fmt"
	"strings"

	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/storage"
)

// Context carries the shared command dependencies. Today is resolved once at
// startup in the user's timezone; commands never read the clock for day
// attribution.
type Context struct {
	Store *storage.TrackerStore
	KV    storage.KV
	Today string
}

// findTask resolves a task reference against the habit store: exact ID, then
// exact name, then unique name prefix.
func findTask(tasks []models.Task, ref string) (models.Task, error) {
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	for _, t := range tasks {
		if t.Name == ref {
			return t, nil
		}
	}

	var matches []models.Task
	lower := strings.ToLower(ref)
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.Name), lower) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	default:
		names := make([]string, len(matches))
		for i, t := range matches {
			names[i] = t.Name
		}
		return models.Task{}, fmt.Errorf("task reference %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

// findTraceTask resolves a task reference against the day-record tracker.
func findTraceTask(tasks []models.TraceTask, ref string) (models.TraceTask, error) {
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	for _, t := range tasks {
		if t.Name == ref {
			return t, nil
		}
	}

	var matches []models.TraceTask
	lower := strings.ToLower(ref)
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.Name), lower) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.TraceTask{}, fmt.Errorf("no task matches %q", ref)
	default:
		names := make([]string, len(matches))
		for i, t := range matches {
			names[i] = t.Name
		}
		return models.TraceTask{}, fmt.Errorf("task reference %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func parseTaskType(s string) (models.TaskType, error) {
	switch models.TaskType(s) {
	case models.TaskTypeCheck, models.TaskTypeCheckText, models.TaskTypeNumber, models.TaskTypeViolation:
		return models.TaskType(s), nil
	default:
		return "", fmt.Errorf("invalid task type: %s (check|check_text|number|violation)", s)
	}
}

func parseTaskStatus(s string) (models.TaskStatus, error) {
	switch models.TaskStatus(s) {
	case models.TaskStatusActive, models.TaskStatusPaused, models.TaskStatusEnded:
		return models.TaskStatus(s), nil
	default:
		return "", fmt.Errorf("invalid task status: %s (active|paused|ended)", s)
	}
}
