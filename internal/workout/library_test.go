package workout

import (
	"testing"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaloriesBurned(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 221, CaloriesBurned(6.0, 70, 30))
	assert.Equal(t, 221, CaloriesBurned(6.0, 0, 30))
	assert.Equal(t, 0, CaloriesBurned(5.0, 80, 0))
	assert.Equal(t, 257, CaloriesBurned(9.8, 60, 25))
}

func TestLibrary(t *testing.T) {
	t.Parallel()

	lib := Library()
	require.Len(t, lib, 27)
	counts := map[model.WorkoutCategory]int{}
	for _, a := range lib {
		counts[a.Category]++
	}
	assert.Equal(t, 10, counts[model.CategoryCardio])
	assert.Equal(t, 10, counts[model.CategoryStrength])
	assert.Equal(t, 7, counts[model.CategoryOther])

	a, ok := Lookup("hiit")
	require.True(t, ok)
	assert.Equal(t, 8.0, a.MET)
	_, ok = Lookup("curling")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	got := Search("Running")
	require.Len(t, got, 2)
	assert.Equal(t, "Running (8 km/h)", got[0].Name)
	assert.Equal(t, "Running (10 km/h)", got[1].Name)

	names := make([]string, 0)
	for _, a := range Search("RUN") {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Running (8 km/h)", "Running (10 km/h)", "Crunches"}, names)
	assert.Len(t, Search("w"), 27)
	assert.Empty(t, Search("curling"))
}

func TestIntensityMET(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.0, IntensityMET(model.CategoryCardio, IntensityHard))
	assert.Equal(t, 5.0, IntensityMET(model.CategoryStrength, IntensityModerate))
	assert.Equal(t, 3.5, IntensityMET(model.CategoryOther, IntensityEasy))
	assert.Equal(t, DefaultMET, IntensityMET("Dance", IntensityEasy))

	i, err := ParseIntensity("HARD")
	require.NoError(t, err)
	assert.Equal(t, IntensityHard, i)
	_, err = ParseIntensity("extreme")
	assert.Error(t, err)

	assert.Equal(t, model.CategoryOther, ParseCategory("dance"))
	assert.Equal(t, model.CategoryCardio, ParseCategory(" Cardio "))
}
