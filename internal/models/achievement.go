package models

// AchievementCategory groups catalog entries for display.
type AchievementCategory string

const (
	AchievementCategoryStreak  AchievementCategory = "streak"
	AchievementCategoryTotal   AchievementCategory = "total"
	AchievementCategoryPerfect AchievementCategory = "perfect"
	AchievementCategorySpecial AchievementCategory = "special"
)

// ConditionType tags an achievement condition.
type ConditionType string

const (
	ConditionStreak         ConditionType = "streak"
	ConditionTotal          ConditionType = "total"
	ConditionMonthlyPerfect ConditionType = "monthly_perfect"
)

// Condition is the tagged unlock condition of an achievement. Exactly the
// fields relevant to Type are set.
type Condition struct {
	Type  ConditionType `json:"type"`
	Days  int           `json:"days,omitempty"`  // streak
	Count int           `json:"count,omitempty"` // total
	Month int           `json:"month,omitempty"` // monthly_perfect, 1-12
	Year  int           `json:"year,omitempty"`  // monthly_perfect
}

// Achievement is a static catalog entry. The catalog is code-defined and
// never persisted; only evaluation results are derived, fresh on every read.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Condition   Condition           `json:"condition"`
}

// AchievementStatus is the evaluation result for one catalog entry. Progress
// may exceed ProgressMax once unlocked; display code clamps, the evaluator
// does not.
type AchievementStatus struct {
	Achievement
	Unlocked     bool   `json:"unlocked"`
	UnlockedDate string `json:"unlocked_date,omitempty"`
	Progress     int    `json:"progress"`
	ProgressMax  int    `json:"progress_max,omitempty"`
}
