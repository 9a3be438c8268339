package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/nutrition"
)

// ItemInput describes a food item before its macros are computed. Search
// modes need Candidate; manual mode needs Name, Basis and Values.
type ItemInput struct {
	Mode      model.ItemMode
	Candidate *model.FoodCandidate
	Name      string
	Basis     model.ManualBasis
	Values    model.MacroQuantity
	Amount    float64
	Unit      string
}

// MealRef points at one meal slot of one day. AutoFill recomputes the day
// macro fields from the meals after the change.
type MealRef struct {
	Username string
	Date     string
	Slot     model.MealSlot
	AutoFill bool
}

func BuildItem(in ItemInput) (model.FoodItem, error) {
	grams, err := nutrition.ToGrams(in.Amount, in.Unit)
	if err != nil {
		return model.FoodItem{}, err
	}
	switch in.Mode {
	case model.ItemModeGeneric, model.ItemModeOFF:
		if in.Candidate == nil {
			return model.FoodItem{}, fmt.Errorf("%s item needs a selected food", in.Mode)
		}
		c := *in.Candidate
		if name := strings.TrimSpace(in.Name); name != "" {
			c.Name = name
		}
		return nutrition.NewSelectedItem(in.Mode, c, grams)
	case model.ItemModeManual, "":
		basis := in.Basis
		if basis == "" {
			basis = model.BasisPer100g
		}
		return nutrition.NewManualItem(in.Name, grams, basis, in.Values)
	default:
		return model.FoodItem{}, fmt.Errorf("invalid item mode %q (use generic, off or manual)", in.Mode)
	}
}

// AddItem appends a new item to the meal, creating the day log when needed.
func AddItem(db *sql.DB, ref MealRef, in ItemInput) (model.FoodItem, error) {
	item, err := BuildItem(in)
	if err != nil {
		return model.FoodItem{}, err
	}
	err = updateMeals(db, ref.Username, ref.Date, ref.AutoFill, true, func(meals *model.Meals) error {
		meal, err := slotOf(meals, ref.Slot)
		if err != nil {
			return err
		}
		meal.Items = append(meal.Items, item)
		return nil
	})
	if err != nil {
		return model.FoodItem{}, err
	}
	return item, nil
}

// ReplaceItem swaps the item with id for a freshly computed one that keeps the
// same id and position.
func ReplaceItem(db *sql.DB, ref MealRef, id string, in ItemInput) (model.FoodItem, error) {
	built, err := BuildItem(in)
	if err != nil {
		return model.FoodItem{}, err
	}
	var out model.FoodItem
	err = updateMeals(db, ref.Username, ref.Date, ref.AutoFill, false, func(meals *model.Meals) error {
		meal, idx, err := findItem(meals, id)
		if err != nil {
			return err
		}
		out, err = nutrition.Replace(id, built)
		if err != nil {
			return err
		}
		meal.Items[idx] = out
		return nil
	})
	if err != nil {
		return model.FoodItem{}, err
	}
	return out, nil
}

func DeleteItem(db *sql.DB, ref MealRef, id string) error {
	return updateMeals(db, ref.Username, ref.Date, ref.AutoFill, false, func(meals *model.Meals) error {
		meal, idx, err := findItem(meals, id)
		if err != nil {
			return err
		}
		meal.Items = append(meal.Items[:idx], meal.Items[idx+1:]...)
		return nil
	})
}

// SetMealTime stores an HH:MM time on the meal. An empty value clears it.
func SetMealTime(db *sql.DB, ref MealRef, value string) error {
	value = strings.TrimSpace(value)
	if value != "" {
		t, err := time.Parse("15:04", value)
		if err != nil {
			return fmt.Errorf("invalid meal time %q, expected HH:MM", value)
		}
		value = t.Format("15:04")
	}
	return updateMeals(db, ref.Username, ref.Date, false, true, func(meals *model.Meals) error {
		meal, err := slotOf(meals, ref.Slot)
		if err != nil {
			return err
		}
		meal.Time = value
		return nil
	})
}

func updateMeals(db *sql.DB, username, date string, autoFill, create bool, fn func(*model.Meals) error) error {
	p, err := GetProfile(db, username)
	if err != nil {
		return err
	}
	l, err := GetLog(db, p.Username, date)
	if errors.Is(err, ErrLogNotFound) && create {
		l = model.DailyLog{Date: date, Meals: nutrition.EmptyMeals()}
	} else if err != nil {
		return err
	}
	if err := fn(&l.Meals); err != nil {
		return err
	}
	if err := prepareLog(&l, autoFill); err != nil {
		return err
	}
	return upsertLog(db, p.Username, l)
}

func slotOf(meals *model.Meals, slot model.MealSlot) (*model.Meal, error) {
	meal := meals.Slot(model.MealSlot(normalizeName(string(slot))))
	if meal == nil {
		return nil, fmt.Errorf("invalid meal %q (use breakfast, lunch, dinner or snacks)", slot)
	}
	return meal, nil
}

func findItem(meals *model.Meals, id string) (*model.Meal, int, error) {
	id = strings.TrimSpace(id)
	for _, slot := range model.MealSlots {
		meal := meals.Slot(slot)
		for i, item := range meal.Items {
			if item.ID == id {
				return meal, i, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("meal item %q not found", id)
}
