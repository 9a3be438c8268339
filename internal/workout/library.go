package workout

import (
	"fmt"
	"math"
	"strings"

	"github.com/shivani123B/fitlog/internal/model"
)

const (
	DefaultWeightKg   = 70.0
	DefaultMET        = 5.0
	DefaultCustomName = "Custom workout"
	minSearchChars    = 2
)

type Activity struct {
	Name     string                `json:"name"`
	Category model.WorkoutCategory `json:"category"`
	MET      float64               `json:"met"`
}

var library = []Activity{
	{"Walking (3 km/h)", model.CategoryCardio, 2.5},
	{"Walking (5 km/h)", model.CategoryCardio, 3.5},
	{"Jogging", model.CategoryCardio, 7.0},
	{"Running (8 km/h)", model.CategoryCardio, 8.3},
	{"Running (10 km/h)", model.CategoryCardio, 9.8},
	{"Cycling (moderate)", model.CategoryCardio, 6.0},
	{"Cycling (intense)", model.CategoryCardio, 10.0},
	{"Treadmill (incline)", model.CategoryCardio, 8.0},
	{"Stair climbing", model.CategoryCardio, 8.8},
	{"Jump rope", model.CategoryCardio, 10.0},

	{"Weight lifting (light)", model.CategoryStrength, 3.0},
	{"Weight lifting (moderate)", model.CategoryStrength, 5.0},
	{"Weight lifting (intense)", model.CategoryStrength, 6.0},
	{"Bodyweight workout", model.CategoryStrength, 5.0},
	{"Squats", model.CategoryStrength, 5.0},
	{"Lunges", model.CategoryStrength, 4.0},
	{"Pushups", model.CategoryStrength, 4.5},
	{"Crunches", model.CategoryStrength, 3.8},
	{"Planks", model.CategoryStrength, 3.0},
	{"Deadlifts", model.CategoryStrength, 6.0},

	{"Yoga", model.CategoryOther, 3.0},
	{"Pilates", model.CategoryOther, 3.5},
	{"Zumba", model.CategoryOther, 6.5},
	{"HIIT", model.CategoryOther, 8.0},
	{"Swimming", model.CategoryOther, 7.0},
	{"Badminton", model.CategoryOther, 5.5},
	{"Football", model.CategoryOther, 8.0},
}

func Library() []Activity {
	return append([]Activity(nil), library...)
}

// Search matches activity names case-insensitively. Queries shorter than two
// characters return the whole library.
func Search(query string) []Activity {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < minSearchChars {
		return Library()
	}
	out := make([]Activity, 0)
	for _, a := range library {
		if strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

func Lookup(name string) (Activity, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, a := range library {
		if strings.ToLower(a.Name) == n {
			return a, true
		}
	}
	return Activity{}, false
}

type Intensity string

const (
	IntensityEasy     Intensity = "Easy"
	IntensityModerate Intensity = "Moderate"
	IntensityHard     Intensity = "Hard"
)

var intensityMETs = map[model.WorkoutCategory]map[Intensity]float64{
	model.CategoryCardio:   {IntensityEasy: 4.0, IntensityModerate: 6.5, IntensityHard: 10.0},
	model.CategoryStrength: {IntensityEasy: 3.0, IntensityModerate: 5.0, IntensityHard: 6.5},
	model.CategoryOther:    {IntensityEasy: 3.5, IntensityModerate: 5.5, IntensityHard: 8.0},
}

// IntensityMET estimates a MET for a custom workout.
func IntensityMET(category model.WorkoutCategory, intensity Intensity) float64 {
	if m, ok := intensityMETs[category][intensity]; ok {
		return m
	}
	return DefaultMET
}

func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "moderate":
		return IntensityModerate, nil
	case "easy":
		return IntensityEasy, nil
	case "hard":
		return IntensityHard, nil
	default:
		return "", fmt.Errorf("invalid intensity %q (use easy, moderate or hard)", s)
	}
}

// ParseCategory folds unknown categories into Other.
func ParseCategory(s string) model.WorkoutCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cardio":
		return model.CategoryCardio
	case "strength":
		return model.CategoryStrength
	default:
		return model.CategoryOther
	}
}

// CaloriesBurned is MET × kg × 3.5 / 200 per minute. The products are taken
// before the division so exact halves round up.
func CaloriesBurned(met, weightKg float64, durationMin int) int {
	if !(weightKg > 0) {
		weightKg = DefaultWeightKg
	}
	return int(math.Round(met * weightKg * 3.5 * float64(durationMin) / 200))
}
