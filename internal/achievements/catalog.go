// Package achievements evaluates a fixed, code-defined achievement catalog
// against the log history. Catalog entries are never persisted; every read
// derives the unlock status fresh.
package achievements

import (
	"fmt"
	"time"

	"github.com/habitline/habitline/internal/models"
)

var streakTiers = []struct {
	days int
	name string
	icon string
}{
	{3, "Warming Up", "🔥"},
	{7, "One Week Strong", "🗓️"},
	{14, "Fortnight", "⚡"},
	{30, "Monthly Discipline", "🏅"},
	{60, "Two Month Titan", "🏆"},
	{100, "Century", "💯"},
}

var totalTiers = []struct {
	count int
	name  string
	icon  string
}{
	{10, "Getting Started", "🌱"},
	{50, "Half Hundred", "🌿"},
	{100, "Centurion", "🌳"},
	{365, "A Year of Logs", "🎆"},
	{1000, "Thousand Club", "👑"},
}

// Catalog returns the full achievement catalog. Monthly-perfect entries carry
// an explicit month and year, so the catalog is parameterized by the year of
// interest; callers may filter the result freely without changing any
// individual evaluation.
func Catalog(year int) []models.Achievement {
	catalog := []models.Achievement{
		{
			ID:          "first-log",
			Name:        "First Step",
			Description: "Log your very first completion",
			Icon:        "⭐",
			Category:    models.AchievementCategorySpecial,
			Condition:   models.Condition{Type: models.ConditionTotal, Count: 1},
		},
	}

	for _, tier := range streakTiers {
		catalog = append(catalog, models.Achievement{
			ID:          fmt.Sprintf("streak-%d", tier.days),
			Name:        tier.name,
			Description: fmt.Sprintf("Complete every active task %d days in a row", tier.days),
			Icon:        tier.icon,
			Category:    models.AchievementCategoryStreak,
			Condition:   models.Condition{Type: models.ConditionStreak, Days: tier.days},
		})
	}

	for _, tier := range totalTiers {
		catalog = append(catalog, models.Achievement{
			ID:          fmt.Sprintf("total-%d", tier.count),
			Name:        tier.name,
			Description: fmt.Sprintf("Log %d completions", tier.count),
			Icon:        tier.icon,
			Category:    models.AchievementCategoryTotal,
			Condition:   models.Condition{Type: models.ConditionTotal, Count: tier.count},
		})
	}

	for month := time.January; month <= time.December; month++ {
		catalog = append(catalog, models.Achievement{
			ID:          fmt.Sprintf("perfect-%d-%02d", year, int(month)),
			Name:        fmt.Sprintf("Perfect %s", month.String()),
			Description: fmt.Sprintf("Complete every active task every day of %s %d", month.String(), year),
			Icon:        "✨",
			Category:    models.AchievementCategoryPerfect,
			Condition: models.Condition{
				Type:  models.ConditionMonthlyPerfect,
				Month: int(month),
				Year:  year,
			},
		})
	}

	return catalog
}
