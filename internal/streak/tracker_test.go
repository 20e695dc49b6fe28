package streak

import (
	"testing"

	"github.com/habitline/habitline/internal/models"
)

func traceState(history ...models.TraceDayRecord) *models.TraceState {
	state := &models.TraceState{
		Tasks: []models.TraceTask{
			{ID: "t1", Name: "Read", Type: models.TaskTypeCheck, DayStatus: models.TraceDayPending},
		},
		History: history,
	}
	RecalculateAll(state, "2024-01-10")
	return state
}

func TestCompleteExtendsStreak(t *testing.T) {
	state := traceState(
		day("2024-01-08", "t1"),
		day("2024-01-09", "t1"),
	)
	tracker := NewTracker(state)

	if state.Tasks[0].Streak != 2 {
		t.Fatalf("precondition: streak = %d, want 2", state.Tasks[0].Streak)
	}

	if !tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{}) {
		t.Fatal("Complete returned false")
	}

	if state.Tasks[0].Streak != 3 {
		t.Errorf("streak = %d, want 3", state.Tasks[0].Streak)
	}
	if state.Tasks[0].BestStreak != 3 {
		t.Errorf("best = %d, want 3", state.Tasks[0].BestStreak)
	}
	if state.Tasks[0].DayStatus != models.TraceDayDone {
		t.Errorf("day status = %q, want done", state.Tasks[0].DayStatus)
	}

	// The incremental result must match a full recomputation.
	cur, best := RecalculateTask("t1", state.History, "2024-01-10")
	if cur != state.Tasks[0].Streak || best != state.Tasks[0].BestStreak {
		t.Errorf("incremental (%d/%d) != recomputed (%d/%d)",
			state.Tasks[0].Streak, state.Tasks[0].BestStreak, cur, best)
	}
}

func TestCompleteAfterGapStartsAtOne(t *testing.T) {
	state := traceState(
		day("2024-01-05", "t1"),
		day("2024-01-06", "t1"),
	)
	tracker := NewTracker(state)

	if state.Tasks[0].Streak != 0 {
		t.Fatalf("precondition: streak = %d, want 0", state.Tasks[0].Streak)
	}

	tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{})

	if state.Tasks[0].Streak != 1 {
		t.Errorf("streak = %d, want 1", state.Tasks[0].Streak)
	}
	if state.Tasks[0].BestStreak != 2 {
		t.Errorf("best = %d, want 2 (historical run)", state.Tasks[0].BestStreak)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	state := traceState(day("2024-01-09", "t1"))
	tracker := NewTracker(state)

	tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{})
	streak := state.Tasks[0].Streak

	if tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{}) {
		t.Error("second Complete should be a no-op")
	}
	if state.Tasks[0].Streak != streak {
		t.Errorf("double completion changed streak: %d -> %d", streak, state.Tasks[0].Streak)
	}
}

func TestUncompleteRestoresExactly(t *testing.T) {
	state := traceState(
		day("2024-01-07", "t1"),
		day("2024-01-08", "t1"),
		day("2024-01-09", "t1"),
	)
	tracker := NewTracker(state)

	before := state.Tasks[0]

	tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{})
	tracker.Uncomplete("t1", "2024-01-10")

	after := state.Tasks[0]
	if after.Streak != before.Streak {
		t.Errorf("streak not restored: %d, want %d", after.Streak, before.Streak)
	}
	if after.BestStreak != before.BestStreak {
		t.Errorf("best not restored: %d, want %d", after.BestStreak, before.BestStreak)
	}

	// And both must equal a full recomputation over the same history.
	cur, best := RecalculateTask("t1", state.History, "2024-01-10")
	if after.Streak != cur || after.BestStreak != best {
		t.Errorf("incremental (%d/%d) != recomputed (%d/%d)", after.Streak, after.BestStreak, cur, best)
	}
}

func TestUncompleteMatchesFullRecalculation(t *testing.T) {
	// A best streak raised only by today's completion must fall back to the
	// historical best on uncomplete.
	state := traceState(
		day("2024-01-06", "t1"),
		day("2024-01-07", "t1"),
		day("2024-01-08", "t1"),
		day("2024-01-09", "t1"),
	)
	tracker := NewTracker(state)

	tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{})
	if state.Tasks[0].BestStreak != 5 {
		t.Fatalf("best after complete = %d, want 5", state.Tasks[0].BestStreak)
	}

	tracker.Uncomplete("t1", "2024-01-10")

	recomputed := &models.TraceState{Tasks: []models.TraceTask{{ID: "t1"}}, History: state.History}
	RecalculateAll(recomputed, "2024-01-10")
	if state.Tasks[0].Streak != recomputed.Tasks[0].Streak ||
		state.Tasks[0].BestStreak != recomputed.Tasks[0].BestStreak {
		t.Errorf("incremental (%d/%d) != recomputed (%d/%d)",
			state.Tasks[0].Streak, state.Tasks[0].BestStreak,
			recomputed.Tasks[0].Streak, recomputed.Tasks[0].BestStreak)
	}
}

func TestBackfill(t *testing.T) {
	t.Run("rejects malformed dates", func(t *testing.T) {
		tracker := NewTracker(traceState())
		for _, bad := range []string{"2024-1-5", "garbage", "", "2024-02-30"} {
			if err := tracker.Backfill("t1", bad, "2024-01-10", true); err == nil {
				t.Errorf("Backfill(%q) accepted a malformed date", bad)
			}
		}
	})

	t.Run("rejects future dates", func(t *testing.T) {
		tracker := NewTracker(traceState())
		if err := tracker.Backfill("t1", "2024-01-11", "2024-01-10", true); err == nil {
			t.Error("Backfill accepted a future date")
		}
	})

	t.Run("rejects unknown tasks", func(t *testing.T) {
		tracker := NewTracker(traceState())
		if err := tracker.Backfill("nope", "2024-01-05", "2024-01-10", true); err == nil {
			t.Error("Backfill accepted an unknown task")
		}
	})

	t.Run("filling a gap raises the current streak", func(t *testing.T) {
		state := traceState(
			day("2024-01-08", "t1"),
			day("2024-01-10", "t1"),
		)
		tracker := NewTracker(state)

		if state.Tasks[0].Streak != 1 {
			t.Fatalf("precondition: streak = %d, want 1", state.Tasks[0].Streak)
		}

		if err := tracker.Backfill("t1", "2024-01-09", "2024-01-10", true); err != nil {
			t.Fatalf("Backfill failed: %v", err)
		}

		if state.Tasks[0].Streak != 3 {
			t.Errorf("streak after gap fill = %d, want 3", state.Tasks[0].Streak)
		}
		if state.Tasks[0].BestStreak != 3 {
			t.Errorf("best after gap fill = %d, want 3", state.Tasks[0].BestStreak)
		}
	})

	t.Run("removing a mid-run day lowers the streak", func(t *testing.T) {
		state := traceState(
			day("2024-01-08", "t1"),
			day("2024-01-09", "t1"),
			day("2024-01-10", "t1"),
		)
		tracker := NewTracker(state)

		if err := tracker.Backfill("t1", "2024-01-09", "2024-01-10", false); err != nil {
			t.Fatalf("Backfill failed: %v", err)
		}

		if state.Tasks[0].Streak != 1 {
			t.Errorf("streak after removal = %d, want 1", state.Tasks[0].Streak)
		}
	})
}

func TestSkip(t *testing.T) {
	t.Run("marks the task skipped without touching streaks", func(t *testing.T) {
		state := traceState(
			day("2024-01-08", "t1"),
			day("2024-01-09", "t1"),
		)
		tracker := NewTracker(state)

		if !tracker.Skip("t1", "2024-01-10") {
			t.Fatal("Skip returned false")
		}
		if state.Tasks[0].DayStatus != models.TraceDaySkipped {
			t.Errorf("status = %s, want skipped", state.Tasks[0].DayStatus)
		}
		if state.Tasks[0].Streak != 2 || state.Tasks[0].BestStreak != 2 {
			t.Errorf("skip moved streaks: %d/%d, want 2/2", state.Tasks[0].Streak, state.Tasks[0].BestStreak)
		}
		if len(state.History) != 2 {
			t.Errorf("skip wrote a day record: %d entries, want 2", len(state.History))
		}
	})

	t.Run("refuses a task completed today", func(t *testing.T) {
		state := traceState(day("2024-01-10", "t1"))
		tracker := NewTracker(state)

		if tracker.Skip("t1", "2024-01-10") {
			t.Fatal("Skip succeeded on a completed task")
		}
		if state.Tasks[0].DayStatus != models.TraceDayPending {
			t.Errorf("status = %s, want pending", state.Tasks[0].DayStatus)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		state := traceState()
		tracker := NewTracker(state)

		if !tracker.Skip("t1", "2024-01-10") {
			t.Fatal("first Skip returned false")
		}
		if tracker.Skip("t1", "2024-01-10") {
			t.Error("second Skip reported a change")
		}
	})

	t.Run("complete overrides a skip", func(t *testing.T) {
		state := traceState()
		tracker := NewTracker(state)

		tracker.Skip("t1", "2024-01-10")
		if !tracker.Complete("t1", "2024-01-10", models.TraceTaskRecord{}) {
			t.Fatal("Complete returned false")
		}
		if state.Tasks[0].DayStatus != models.TraceDayDone {
			t.Errorf("status = %s, want done", state.Tasks[0].DayStatus)
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		state := traceState()
		if NewTracker(state).Skip("ghost", "2024-01-10") {
			t.Error("Skip succeeded for unknown task")
		}
	})
}
