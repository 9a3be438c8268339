package nutrition

import "github.com/shivani123B/fitlog/internal/model"

// Totals are summed raw and rounded once at the end.

func SumItems(items []model.FoodItem) model.MacroQuantity {
	var acc model.MacroQuantity
	for _, it := range items {
		acc = acc.Add(it.Computed)
	}
	return RoundMacros(acc)
}

func SumMeal(meal model.Meal) model.MacroQuantity {
	return SumItems(meal.Items)
}

func SumDay(meals model.Meals) model.MacroQuantity {
	var acc model.MacroQuantity
	for _, slot := range model.MealSlots {
		for _, it := range meals.Slot(slot).Items {
			acc = acc.Add(it.Computed)
		}
	}
	return RoundMacros(acc)
}

// ApplyDayTotals overwrites the log's macro fields with the meal totals.
func ApplyDayTotals(log *model.DailyLog) {
	t := SumDay(log.Meals)
	log.Calories = &t.Calories
	log.ProteinG = &t.ProteinG
	log.CarbsG = &t.CarbsG
	log.FatG = &t.FatG
	log.FiberG = &t.FiberG
}
