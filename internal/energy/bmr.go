package energy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shivani123B/fitlog/internal/model"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityAthlete   ActivityLevel = "athlete"

	DefaultActivity = ActivityModerate
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
	ActivityAthlete:   1.9,
}

var ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityAthlete}

func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[DefaultActivity]
}

// ParseActivityLevel accepts a level name or its multiplier ("1.375").
// Blank input selects the default level.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultActivity, nil
	}
	if _, ok := activityMultipliers[ActivityLevel(s)]; ok {
		return ActivityLevel(s), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		for level, m := range activityMultipliers {
			if m == v {
				return level, nil
			}
		}
	}
	return "", fmt.Errorf("invalid activity level %q (use sedentary, light, moderate, active or athlete)", s)
}

// BMR is the Mifflin-St Jeor estimate. ok is false when a field is missing
// or the gender is neither female nor male.
func BMR(p model.Profile) (float64, bool) {
	if !(p.WeightKg > 0) || !(p.HeightCm > 0) || p.Age <= 0 {
		return 0, false
	}
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Gender {
	case model.GenderFemale:
		return base - 161, true
	case model.GenderMale:
		return base + 5, true
	default:
		return 0, false
	}
}

// TDEE multiplies the unrounded BMR and rounds once.
func TDEE(bmr float64, level ActivityLevel) int {
	return int(math.Round(bmr * level.Multiplier()))
}
