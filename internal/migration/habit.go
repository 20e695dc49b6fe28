package migration

import (
	"encoding/json"

	"github.com/habitline/habitline/internal/models"
)

// DecodeHabitState defensively decodes the flat habit store (tasks + logs).
// The habit store never changed shape, so there is no version ladder here,
// but the same rules apply: missing arrays become empty, garbage falls back
// to a fresh state, and nothing throws. The returned flag reports whether the
// decoded state was normalized and should be written back.
func DecodeHabitState(raw []byte) (models.HabitState, bool) {
	if len(raw) == 0 {
		return emptyHabitState(), false
	}

	var state models.HabitState
	if err := json.Unmarshal(raw, &state); err != nil {
		return emptyHabitState(), true
	}

	changed := false
	if state.Tasks == nil {
		state.Tasks = []models.Task{}
		changed = true
	}
	if state.Logs == nil {
		state.Logs = []models.Log{}
		changed = true
	}

	if deduped := dedupeLogs(state.Logs); len(deduped) != len(state.Logs) {
		state.Logs = deduped
		changed = true
	}

	for i := range state.Tasks {
		if state.Tasks[i].Type == "" {
			state.Tasks[i].Type = models.TaskTypeCheck
			changed = true
		}
		if state.Tasks[i].Status == "" {
			state.Tasks[i].Status = models.TaskStatusActive
			changed = true
		}
	}

	return state, changed
}

func emptyHabitState() models.HabitState {
	return models.HabitState{
		Tasks: []models.Task{},
		Logs:  []models.Log{},
	}
}

// dedupeLogs enforces the one-log-per-(task, date) invariant, keeping the
// first occurrence so repeated saves of the same blob stay stable.
func dedupeLogs(logs []models.Log) []models.Log {
	type key struct {
		taskID string
		date   string
	}
	seen := make(map[key]struct{}, len(logs))
	out := make([]models.Log, 0, len(logs))
	for _, l := range logs {
		k := key{taskID: l.TaskID, date: l.Date}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}
