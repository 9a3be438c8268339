package nutrition

import (
	"testing"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/stretchr/testify/assert"
)

func computedItem(cal, p float64) model.FoodItem {
	return model.FoodItem{Mode: model.ItemModeManual, Computed: model.MacroQuantity{Calories: cal, ProteinG: p}}
}

func TestSumItemsEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.MacroQuantity{}, SumItems(nil))
	assert.Equal(t, model.MacroQuantity{}, SumItems([]model.FoodItem{}))
}

func TestSumDayRoundsOnce(t *testing.T) {
	t.Parallel()

	meals := EmptyMeals()
	meals.Breakfast.Items = []model.FoodItem{computedItem(0.04, 0.04)}
	meals.Lunch.Items = []model.FoodItem{computedItem(0.04, 0.04)}
	meals.Dinner.Items = []model.FoodItem{computedItem(0.04, 0.04)}
	meals.Snacks.Items = []model.FoodItem{computedItem(100, 0.01)}

	// Rounding each meal first would drop the three 0.04s.
	assert.Equal(t, 0.0, SumMeal(meals.Breakfast).Calories)
	day := SumDay(meals)
	assert.Equal(t, 100.1, day.Calories)
	assert.Equal(t, 0.1, day.ProteinG)
}

func TestApplyDayTotals(t *testing.T) {
	t.Parallel()

	log := model.DailyLog{Date: "2024-03-01", Meals: EmptyMeals()}
	log.Meals.Lunch.Items = []model.FoodItem{computedItem(420.3, 30), computedItem(99.7, 2)}
	ApplyDayTotals(&log)
	if assert.NotNil(t, log.Calories) {
		assert.Equal(t, 520.0, *log.Calories)
	}
	if assert.NotNil(t, log.ProteinG) {
		assert.Equal(t, 32.0, *log.ProteinG)
	}
	if assert.NotNil(t, log.FiberG) {
		assert.Equal(t, 0.0, *log.FiberG)
	}
}
