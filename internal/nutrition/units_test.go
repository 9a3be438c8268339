package nutrition

import (
	"math"
	"testing"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound1(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.3, Round1(1.25))
	assert.Equal(t, 0.0, Round1(math.NaN()))
	assert.Equal(t, 0.0, Round1(math.Inf(1)))
	assert.Equal(t, 52.1, Round1(52.08))
}

func TestScaleToGrams(t *testing.T) {
	t.Parallel()

	per100g := model.MacroQuantity{Calories: 52, ProteinG: 0.4, CarbsG: 13.8, FatG: 0.2, FiberG: 2.4}
	got, err := ScaleToGrams(per100g, 150)
	require.NoError(t, err)
	assert.Equal(t, model.MacroQuantity{Calories: 78, ProteinG: 0.6, CarbsG: 20.7, FatG: 0.3, FiberG: 3.6}, got)
}

func TestScaleToGramsRejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, grams := range []float64{0, -10, math.NaN()} {
		_, err := ScaleToGrams(model.MacroQuantity{Calories: 100}, grams)
		assert.ErrorIs(t, err, ErrNonPositiveGrams, "grams=%v", grams)
	}
}

func TestScaleToGramsIsLinear(t *testing.T) {
	t.Parallel()

	per100g := model.MacroQuantity{Calories: 389, ProteinG: 16.9, CarbsG: 66.3, FatG: 6.9, FiberG: 10.6}
	for _, g := range []float64{1, 17, 42.5, 100, 333} {
		single, err := ScaleToGrams(per100g, g)
		require.NoError(t, err)
		double, err := ScaleToGrams(per100g, 2*g)
		require.NoError(t, err)
		assert.InDelta(t, 2*single.Calories, double.Calories, 0.1+1e-9)
		assert.InDelta(t, 2*single.ProteinG, double.ProteinG, 0.1+1e-9)
		assert.InDelta(t, 2*single.CarbsG, double.CarbsG, 0.1+1e-9)
		assert.InDelta(t, 2*single.FatG, double.FatG, 0.1+1e-9)
		assert.InDelta(t, 2*single.FiberG, double.FiberG, 0.1+1e-9)
	}
}

func TestToGrams(t *testing.T) {
	t.Parallel()

	g, err := ToGrams(2, "oz")
	require.NoError(t, err)
	assert.InDelta(t, 56.699, g, 0.001)

	g, err = ToGrams(120, "")
	require.NoError(t, err)
	assert.Equal(t, 120.0, g)

	_, err = ToGrams(1, "cup")
	assert.Error(t, err)
	_, err = ToGrams(0, "g")
	assert.Error(t, err)
}
