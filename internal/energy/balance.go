package energy

import (
	"sort"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
)

const (
	KcalPerKgFat    = 7700.0
	AverageWindow   = 7
	maintenanceBand = -50.0
)

// WeeklyAverageIntake averages calories over the seven most recent logs that
// have a calorie value. ok is false when none qualify.
func WeeklyAverageIntake(logs []model.DailyLog) (float64, bool) {
	sorted := make([]model.DailyLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	var sum float64
	n := 0
	for _, l := range sorted {
		if n == AverageWindow {
			break
		}
		if l.Calories == nil {
			continue
		}
		sum += *l.Calories
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func DailyBurn(book model.WorkoutBook, date string) int {
	total := 0
	for _, e := range book[date] {
		total += e.CaloriesBurned
	}
	return total
}

// AverageBurn spreads the burn of today and the six previous calendar days
// over all seven days.
func AverageBurn(book model.WorkoutBook, today time.Time) float64 {
	total := 0
	for _, date := range TrailingDates(today, AverageWindow) {
		total += DailyBurn(book, date)
	}
	return float64(total) / AverageWindow
}

// TrailingDates returns n local calendar dates ending at today, newest first.
func TrailingDates(today time.Time, n int) []string {
	out := make([]string, 0, n)
	y, m, d := today.Date()
	for i := 0; i < n; i++ {
		out = append(out, time.Date(y, m, d-i, 12, 0, 0, 0, today.Location()).Format(model.DateLayout))
	}
	return out
}

// Positive deficits mean eating below expenditure.

func DietDeficit(tdee int, avgIntake float64) float64 {
	return float64(tdee) - avgIntake
}

func NetDeficit(tdee int, avgBurn, avgIntake float64) float64 {
	return float64(tdee) + avgBurn - avgIntake
}

// WeeklyFatChangeKg projects kilograms of fat lost per week (negative is gain).
func WeeklyFatChangeKg(deficit float64) float64 {
	return deficit * 7 / KcalPerKgFat
}

type Status string

const (
	StatusSafeCut     Status = "safe cut"
	StatusModerate    Status = "moderate"
	StatusAggressive  Status = "aggressive"
	StatusSurplus     Status = "surplus"
	StatusMaintenance Status = "near maintenance"
)

func Classify(deficit float64) Status {
	switch {
	case deficit > 700:
		return StatusAggressive
	case deficit > 500:
		return StatusModerate
	case deficit >= 200:
		return StatusSafeCut
	case deficit < maintenanceBand:
		return StatusSurplus
	default:
		return StatusMaintenance
	}
}

func (s Status) Advice() string {
	switch s {
	case StatusSafeCut:
		return "Safe, sustainable deficit."
	case StatusModerate:
		return "Moderate deficit. Monitor energy levels and protein intake."
	case StatusAggressive:
		return "Aggressive deficit. Risk of muscle loss and fatigue."
	case StatusSurplus:
		return "Calorie surplus. Expect weight gain."
	default:
		return "Near maintenance. Weight should stay stable."
	}
}
