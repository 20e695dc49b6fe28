package achievements

import (
	"reflect"
	"testing"

	"github.com/habitline/habitline/internal/models"
)

func checkTask(id, start string) models.Task {
	return models.Task{ID: id, Name: id, Type: models.TaskTypeCheck, Status: models.TaskStatusActive, StartDate: start}
}

func logFor(taskID, date string) models.Log {
	return models.Log{ID: taskID + "-" + date, TaskID: taskID, Date: date}
}

func statusByID(t *testing.T, statuses []models.AchievementStatus, id string) models.AchievementStatus {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no status for %s", id)
	return models.AchievementStatus{}
}

func TestEvaluateTotal(t *testing.T) {
	tasks := []models.Task{checkTask("a", "2024-01-01")}
	logs := []models.Log{
		logFor("a", "2024-01-05"),
		logFor("a", "2024-01-01"),
		logFor("a", "2024-01-10"),
	}
	catalog := []models.Achievement{
		{
			ID:        "total-3",
			Category:  models.AchievementCategoryTotal,
			Condition: models.Condition{Type: models.ConditionTotal, Count: 3},
		},
	}

	statuses := Evaluate(catalog, logs, tasks, "2024-01-15")
	got := statusByID(t, statuses, "total-3")

	if !got.Unlocked {
		t.Fatal("expected unlock at exactly 3 logs")
	}
	// The unlock date is the date the threshold was crossed: the 3rd log in
	// ascending date order.
	if got.UnlockedDate != "2024-01-10" {
		t.Errorf("unlock date = %q, want 2024-01-10", got.UnlockedDate)
	}
	if got.Progress != 3 || got.ProgressMax != 3 {
		t.Errorf("progress = %d/%d, want 3/3", got.Progress, got.ProgressMax)
	}
}

func TestEvaluateTotalExcludes(t *testing.T) {
	tasks := []models.Task{
		checkTask("a", "2024-01-01"),
		{ID: "v", Type: models.TaskTypeViolation, Status: models.TaskStatusActive, StartDate: "2024-01-01"},
	}
	logs := []models.Log{
		logFor("a", "2024-01-01"),
		logFor("v", "2024-01-02"),      // violation: never counted
		logFor("ghost", "2024-01-03"),  // orphan: silently excluded
	}
	catalog := []models.Achievement{
		{ID: "total-2", Condition: models.Condition{Type: models.ConditionTotal, Count: 2}},
	}

	got := statusByID(t, Evaluate(catalog, logs, tasks, "2024-01-15"), "total-2")
	if got.Unlocked {
		t.Error("violation and orphan logs must not count toward totals")
	}
	if got.Progress != 1 {
		t.Errorf("progress = %d, want 1", got.Progress)
	}
}

func TestEvaluateStreak(t *testing.T) {
	tasks := []models.Task{checkTask("a", "2024-01-01")}
	logs := []models.Log{
		logFor("a", "2024-01-08"),
		logFor("a", "2024-01-09"),
		logFor("a", "2024-01-10"),
	}
	catalog := []models.Achievement{
		{ID: "streak-3", Condition: models.Condition{Type: models.ConditionStreak, Days: 3}},
		{ID: "streak-7", Condition: models.Condition{Type: models.ConditionStreak, Days: 7}},
	}

	statuses := Evaluate(catalog, logs, tasks, "2024-01-10")

	three := statusByID(t, statuses, "streak-3")
	if !three.Unlocked {
		t.Error("streak-3 should unlock with a 3-day overall streak")
	}
	if three.Progress != 3 || three.ProgressMax != 3 {
		t.Errorf("streak-3 progress = %d/%d, want 3/3", three.Progress, three.ProgressMax)
	}
	if three.UnlockedDate != "2024-01-10" {
		t.Errorf("streak-3 unlock date = %q, want 2024-01-10", three.UnlockedDate)
	}

	seven := statusByID(t, statuses, "streak-7")
	if seven.Unlocked {
		t.Error("streak-7 should stay locked")
	}
	if seven.Progress != 3 || seven.ProgressMax != 7 {
		t.Errorf("streak-7 progress = %d/%d, want 3/7", seven.Progress, seven.ProgressMax)
	}
}

func TestEvaluateStreakProgressExceedsMax(t *testing.T) {
	tasks := []models.Task{checkTask("a", "2024-01-01")}
	// Five consecutive logged days ending today.
	logs := []models.Log{
		logFor("a", "2024-01-06"),
		logFor("a", "2024-01-07"),
		logFor("a", "2024-01-08"),
		logFor("a", "2024-01-09"),
		logFor("a", "2024-01-10"),
	}
	catalog := []models.Achievement{
		{ID: "streak-3", Condition: models.Condition{Type: models.ConditionStreak, Days: 3}},
	}

	got := statusByID(t, Evaluate(catalog, logs, tasks, "2024-01-10"), "streak-3")
	if got.Progress != 5 || got.ProgressMax != 3 {
		t.Errorf("progress = %d/%d, want 5/3 (evaluator must not clamp)", got.Progress, got.ProgressMax)
	}
	// The 3-day threshold was first reached two days before today.
	if got.UnlockedDate != "2024-01-08" {
		t.Errorf("unlock date = %q, want 2024-01-08", got.UnlockedDate)
	}
}

func TestEvaluateMonthlyPerfect(t *testing.T) {
	catalog := []models.Achievement{
		{
			ID:        "perfect-2024-01",
			Condition: models.Condition{Type: models.ConditionMonthlyPerfect, Month: 1, Year: 2024},
		},
	}

	t.Run("zero eligible tasks never unlocks", func(t *testing.T) {
		logs := []models.Log{logFor("ghost", "2024-01-03")}
		got := statusByID(t, Evaluate(catalog, logs, nil, "2024-01-20"), "perfect-2024-01")
		if got.Unlocked {
			t.Error("unlocked with zero eligible tasks")
		}
		if got.ProgressMax != 0 {
			t.Errorf("progress max = %d, want 0", got.ProgressMax)
		}
	})

	t.Run("perfect partial month unlocks up to today", func(t *testing.T) {
		tasks := []models.Task{checkTask("a", "2023-12-01")}
		var logs []models.Log
		for d := 1; d <= 5; d++ {
			logs = append(logs, logFor("a", "2024-01-0"+string(rune('0'+d))))
		}
		got := statusByID(t, Evaluate(catalog, logs, tasks, "2024-01-05"), "perfect-2024-01")
		if !got.Unlocked {
			t.Error("expected unlock: every checked day is perfect")
		}
		if got.Progress != 5 || got.ProgressMax != 5 {
			t.Errorf("progress = %d/%d, want 5/5", got.Progress, got.ProgressMax)
		}
	})

	t.Run("one imperfect day blocks unlock", func(t *testing.T) {
		tasks := []models.Task{checkTask("a", "2023-12-01")}
		logs := []models.Log{
			logFor("a", "2024-01-01"),
			logFor("a", "2024-01-03"),
		}
		got := statusByID(t, Evaluate(catalog, logs, tasks, "2024-01-03"), "perfect-2024-01")
		if got.Unlocked {
			t.Error("unlocked despite an unlogged day")
		}
		if got.Progress != 2 || got.ProgressMax != 3 {
			t.Errorf("progress = %d/%d, want 2/3", got.Progress, got.ProgressMax)
		}
	})

	t.Run("eligibility judged on the 15th", func(t *testing.T) {
		// Task ends on the 10th: not active on the reference day, so the
		// month has zero eligible tasks.
		endsEarly := models.Task{
			ID: "a", Type: models.TaskTypeCheck, Status: models.TaskStatusActive,
			StartDate: "2024-01-01", EndDate: "2024-01-10",
		}
		logs := []models.Log{logFor("a", "2024-01-01")}
		got := statusByID(t, Evaluate(catalog, logs, []models.Task{endsEarly}, "2024-01-20"), "perfect-2024-01")
		if got.Unlocked || got.ProgressMax != 0 {
			t.Errorf("task inactive on the 15th must not be eligible: %+v", got)
		}
	})
}

func TestEvaluateDoesNotMutateInputs(t *testing.T) {
	tasks := []models.Task{checkTask("a", "2024-01-01")}
	logs := []models.Log{
		logFor("a", "2024-01-10"),
		logFor("a", "2024-01-02"),
		logFor("a", "2024-01-05"),
	}
	logsBefore := make([]models.Log, len(logs))
	copy(logsBefore, logs)

	Evaluate(Catalog(2024), logs, tasks, "2024-01-15")

	if !reflect.DeepEqual(logs, logsBefore) {
		t.Error("Evaluate reordered the caller's log slice")
	}
}

func TestEvaluateFilteredCatalogMatchesFull(t *testing.T) {
	tasks := []models.Task{checkTask("a", "2024-01-01")}
	logs := []models.Log{
		logFor("a", "2024-01-08"),
		logFor("a", "2024-01-09"),
		logFor("a", "2024-01-10"),
	}

	full := Evaluate(Catalog(2024), logs, tasks, "2024-01-10")

	var filtered []models.Achievement
	for _, entry := range Catalog(2024) {
		if entry.Category == models.AchievementCategoryStreak {
			filtered = append(filtered, entry)
		}
	}
	subset := Evaluate(filtered, logs, tasks, "2024-01-10")

	for _, sub := range subset {
		match := statusByID(t, full, sub.ID)
		if !reflect.DeepEqual(sub, match) {
			t.Errorf("filtered evaluation differs for %s:\nfiltered: %+v\nfull:     %+v", sub.ID, sub, match)
		}
	}
}

func TestCatalogShape(t *testing.T) {
	catalog := Catalog(2024)

	months := 0
	ids := make(map[string]struct{})
	for _, entry := range catalog {
		if _, dup := ids[entry.ID]; dup {
			t.Errorf("duplicate catalog id %s", entry.ID)
		}
		ids[entry.ID] = struct{}{}
		if entry.Condition.Type == models.ConditionMonthlyPerfect {
			months++
			if entry.Condition.Year != 2024 {
				t.Errorf("entry %s has year %d, want 2024", entry.ID, entry.Condition.Year)
			}
		}
	}
	if months != 12 {
		t.Errorf("expected 12 monthly-perfect entries, got %d", months)
	}
}
