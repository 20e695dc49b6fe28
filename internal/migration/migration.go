package migration

import (
	"encoding/json"

	"github.com/habitline/habitline/internal/models"
)

// Version identifies a persisted trace-store schema generation. The version is
// never stored explicitly; it is detected from the shape of the JSON.
type Version int

const (
	VersionUnknown Version = iota
	V1                     // completed-ID lists only, gamified XP/leveling
	V2                     // typed tasks and per-record detail, XP still present
	V3                     // canonical: XP/leveling removed
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	default:
		return "unknown"
	}
}

// Result is the outcome of detecting and migrating a persisted trace store.
// Migrated reports that the canonical shape differs from what was read, so the
// caller must write State back before relying on a subsequent load.
type Result struct {
	State    models.TraceState
	Detected Version
	Migrated bool
}

// Loose decode targets. Pointer fields distinguish "absent" from zero values,
// which is what version detection keys on.

type looseTask struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        *string  `json:"type"`
	Color       string   `json:"color,omitempty"`
	DayStatus   string   `json:"day_status"`
	Streak      int      `json:"streak"`
	BestStreak  int      `json:"best_streak"`
	CreatedDate string   `json:"created_date,omitempty"`
	ExpValue    *float64 `json:"exp_value"`
}

type looseDay struct {
	Date             string                   `json:"date"`
	CompletedTaskIDs []string                 `json:"completed_task_ids"`
	Records          []models.TraceTaskRecord `json:"records"`
	TotalExp         *float64                 `json:"total_exp"`
}

type looseUser struct {
	Streak     int      `json:"streak"`
	Level      *int     `json:"level"`
	CurrentExp *float64 `json:"current_exp"`
	MaxExp     *float64 `json:"max_exp"`
}

type looseDoc struct {
	Tasks   []looseTask `json:"tasks"`
	User    *looseUser  `json:"user"`
	History []looseDay  `json:"history"`
}

// DetectAndMigrate inspects raw persisted JSON, detects its schema generation
// and returns the canonical V3 state. It never returns an error: missing
// arrays decode as empty, missing scalars as defaults, and unrecognizable
// input falls back to a fresh empty state (with Migrated set so the caller
// writes the usable shape back).
//
// Detection order matters and runs newest-first: decodeV3, then decodeV2,
// then the full V1 path. Running DetectAndMigrate on its own output is a
// no-op: it detects V3 and reports Migrated=false.
func DetectAndMigrate(raw []byte) Result {
	if len(raw) == 0 {
		return Result{State: emptyState(), Detected: VersionUnknown, Migrated: false}
	}

	var doc looseDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Result{State: emptyState(), Detected: VersionUnknown, Migrated: true}
	}

	if state, ok := decodeV3(doc); ok {
		return Result{State: state, Detected: V3, Migrated: false}
	}
	if state, ok := decodeV2(doc); ok {
		return Result{State: state, Detected: V2, Migrated: true}
	}
	return Result{State: decodeV1(doc), Detected: V1, Migrated: true}
}

func emptyState() models.TraceState {
	return models.TraceState{
		Tasks:   []models.TraceTask{},
		History: []models.TraceDayRecord{},
	}
}

// decodeV3 accepts the document only if it is already canonical: no task
// carries an XP value, day records carry Records arrays, and the user object
// has no leveling fields. Empty collections are trivially canonical.
func decodeV3(doc looseDoc) (models.TraceState, bool) {
	for _, t := range doc.Tasks {
		if t.ExpValue != nil || t.Type == nil {
			return models.TraceState{}, false
		}
	}
	for _, d := range doc.History {
		if d.Records == nil || d.TotalExp != nil {
			return models.TraceState{}, false
		}
	}
	if doc.User != nil && (doc.User.Level != nil || doc.User.CurrentExp != nil || doc.User.MaxExp != nil) {
		return models.TraceState{}, false
	}
	return convert(doc, false), true
}

// decodeV2 accepts documents whose tasks are typed and whose day records
// carry Records, regardless of lingering XP fields. Migration is then the
// narrow diff: strip exp_value, total_exp and user leveling, preserving
// everything else as-is.
func decodeV2(doc looseDoc) (models.TraceState, bool) {
	for _, t := range doc.Tasks {
		if t.Type == nil {
			return models.TraceState{}, false
		}
	}
	for _, d := range doc.History {
		if d.Records == nil {
			return models.TraceState{}, false
		}
	}
	return convert(doc, false), true
}

// decodeV1 runs the full legacy path: untyped tasks default to check,
// Records arrays are synthesized from the completed-ID lists, and all XP is
// discarded. Completion detail (text, value, rating) does not exist in V1
// and stays unset; this loss is accepted.
func decodeV1(doc looseDoc) models.TraceState {
	return convert(doc, true)
}

// convert maps a loose document onto the canonical state, dropping every
// XP/leveling field. When synthesize is set, day records without Records get
// one synthesized from CompletedTaskIDs.
func convert(doc looseDoc, synthesize bool) models.TraceState {
	state := emptyState()

	for _, t := range doc.Tasks {
		taskType := models.TaskTypeCheck
		if t.Type != nil {
			taskType = models.TaskType(*t.Type)
		}
		status := models.TraceDayStatus(t.DayStatus)
		if status == "" {
			status = models.TraceDayPending
		}
		state.Tasks = append(state.Tasks, models.TraceTask{
			ID:          t.ID,
			Name:        t.Name,
			Type:        taskType,
			Color:       t.Color,
			DayStatus:   status,
			Streak:      t.Streak,
			BestStreak:  t.BestStreak,
			CreatedDate: t.CreatedDate,
		})
	}

	if doc.User != nil {
		state.User = models.TraceUser{Streak: doc.User.Streak}
	}

	for _, d := range doc.History {
		rec := models.TraceDayRecord{
			Date:             d.Date,
			CompletedTaskIDs: d.CompletedTaskIDs,
			Records:          d.Records,
		}
		if rec.CompletedTaskIDs == nil {
			rec.CompletedTaskIDs = []string{}
		}
		if rec.Records == nil {
			if synthesize {
				rec.Records = make([]models.TraceTaskRecord, 0, len(rec.CompletedTaskIDs))
				for _, id := range rec.CompletedTaskIDs {
					rec.Records = append(rec.Records, models.TraceTaskRecord{
						TaskID:    id,
						Completed: true,
					})
				}
			} else {
				rec.Records = []models.TraceTaskRecord{}
			}
		}
		state.History = append(state.History, rec)
	}

	return state
}

// ResetDayStatuses applies the day-boundary rollover rule: when the most
// recent day record is not from today, every task's daily status goes back to
// pending. Streak counters are untouched here, but a rollover is reported
// even when every status was already pending: an idle day can lapse a current
// streak without flipping any status, so the caller must recompute the cached
// streaks (and persist) whenever this returns true.
func ResetDayStatuses(state *models.TraceState, today string) bool {
	if len(state.Tasks) == 0 && len(state.History) == 0 {
		return false
	}

	newest := ""
	for _, d := range state.History {
		if d.Date > newest {
			newest = d.Date
		}
	}
	if newest == today {
		return false
	}

	for i := range state.Tasks {
		state.Tasks[i].DayStatus = models.TraceDayPending
	}
	return true
}
