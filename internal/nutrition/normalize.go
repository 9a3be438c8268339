package nutrition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shivani123B/fitlog/internal/model"
)

// StoredItem is any food item shape that has been persisted over time:
// LegacyString, LegacyQueryItem or CurrentItem.
type StoredItem interface {
	storedItem()
}

// LegacyString is the oldest shape, a bare food name.
type LegacyString string

// LegacyQueryItem predates item modes: a free-text query with an optional
// Open Food Facts product attached.
type LegacyQueryItem struct {
	ID       string               `json:"id"`
	Query    string               `json:"query"`
	Grams    looseFloat           `json:"grams"`
	Selected *LegacyProduct       `json:"selected"`
	Computed *model.MacroQuantity `json:"computed"`
}

type LegacyProduct struct {
	ProductID string              `json:"productId"`
	Name      string              `json:"name"`
	Brand     string              `json:"brand"`
	Per100g   model.MacroQuantity `json:"per100g"`
}

// CurrentItem is the mode-tagged shape. Computed may be missing in rows
// written by partial migrations.
type CurrentItem struct {
	ID       string               `json:"id"`
	Mode     model.ItemMode       `json:"mode"`
	Name     string               `json:"name"`
	Grams    looseFloat           `json:"grams"`
	Selected *model.Selection     `json:"selected"`
	Manual   *model.ManualEntry   `json:"manual"`
	Computed *model.MacroQuantity `json:"computed"`
}

func (LegacyString) storedItem()    {}
func (LegacyQueryItem) storedItem() {}
func (CurrentItem) storedItem()     {}

func DecodeItem(raw json.RawMessage) (StoredItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty food item")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode legacy food item: %w", err)
		}
		return LegacyString(s), nil
	case '{':
		var probe struct {
			Mode string `json:"mode"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("decode food item: %w", err)
		}
		if strings.TrimSpace(probe.Mode) == "" {
			var item LegacyQueryItem
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("decode legacy food item: %w", err)
			}
			return item, nil
		}
		var item CurrentItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode food item: %w", err)
		}
		return item, nil
	default:
		return nil, fmt.Errorf("unrecognized food item shape %q", truncate(string(raw), 32))
	}
}

// Normalize maps every stored shape to the canonical FoodItem. Legacy items
// become manual items with an absolute basis equal to their stored snapshot.
func Normalize(item StoredItem) model.FoodItem {
	switch it := item.(type) {
	case LegacyString:
		return model.FoodItem{
			Mode:   model.ItemModeManual,
			Name:   string(it),
			Manual: &model.ManualEntry{Basis: model.BasisAbsolute},
		}
	case LegacyQueryItem:
		out := model.FoodItem{
			ID:    it.ID,
			Mode:  model.ItemModeManual,
			Name:  it.Query,
			Grams: float64(it.Grams),
		}
		if it.Computed != nil {
			out.Computed = *it.Computed
		}
		if it.Selected != nil {
			out.Mode = model.ItemModeOFF
			if it.Selected.Name != "" {
				out.Name = it.Selected.Name
			}
			out.Selected = &model.Selection{
				Source:     SourceForMode(model.ItemModeOFF),
				ExternalID: it.Selected.ProductID,
				Brand:      it.Selected.Brand,
				Per100g:    it.Selected.Per100g,
			}
		} else {
			out.Manual = &model.ManualEntry{Basis: model.BasisAbsolute, Values: out.Computed}
		}
		return out
	case CurrentItem:
		out := model.FoodItem{
			ID:       it.ID,
			Mode:     it.Mode,
			Name:     it.Name,
			Grams:    float64(it.Grams),
			Selected: it.Selected,
			Manual:   it.Manual,
		}
		if it.Computed != nil {
			out.Computed = *it.Computed
		}
		return out
	default:
		return model.FoodItem{Mode: model.ItemModeManual}
	}
}

// IsLegacy reports whether item predates the mode-tagged shape.
func IsLegacy(item StoredItem) bool {
	_, ok := item.(CurrentItem)
	return !ok
}

type rawMeal struct {
	Time  string            `json:"time"`
	Items []json.RawMessage `json:"items"`
}

type rawMeals map[model.MealSlot]*rawMeal

// MealsScan is a decoded meals document. Items with an unrecognized shape
// are left out of Meals and counted in Dropped.
type MealsScan struct {
	Meals   model.Meals
	Legacy  int
	Dropped int
	// DropErr is the decode error of the first dropped item.
	DropErr error
}

// ScanMeals decodes a stored meals document and normalizes every readable
// item. Items without an id get a stable positional one. Only a document
// that is not a meals object at all is an error.
func ScanMeals(raw []byte) (MealsScan, error) {
	out := MealsScan{Meals: EmptyMeals()}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return out, nil
	}
	var doc rawMeals
	if err := json.Unmarshal(raw, &doc); err != nil {
		return MealsScan{}, fmt.Errorf("decode meals: %w", err)
	}
	for _, slot := range model.MealSlots {
		rm := doc[slot]
		if rm == nil {
			continue
		}
		meal := out.Meals.Slot(slot)
		meal.Time = rm.Time
		for i, rawItem := range rm.Items {
			stored, err := DecodeItem(rawItem)
			if err != nil {
				out.Dropped++
				if out.DropErr == nil {
					out.DropErr = fmt.Errorf("%s item %d: %w", slot, i+1, err)
				}
				continue
			}
			if IsLegacy(stored) {
				out.Legacy++
			}
			item := Normalize(stored)
			if item.ID == "" {
				item.ID = fmt.Sprintf("%s-%d", slot, i+1)
			}
			meal.Items = append(meal.Items, item)
		}
	}
	return out, nil
}

// DecodeMeals is ScanMeals without the bookkeeping. Unreadable items are
// skipped so one bad row never blocks reading a day.
func DecodeMeals(raw []byte) (model.Meals, error) {
	scan, err := ScanMeals(raw)
	if err != nil {
		return model.Meals{}, err
	}
	return scan.Meals, nil
}

// DecodeMealsStrict fails on the first unreadable item.
func DecodeMealsStrict(raw []byte) (model.Meals, error) {
	scan, err := ScanMeals(raw)
	if err != nil {
		return model.Meals{}, err
	}
	if scan.DropErr != nil {
		return model.Meals{}, scan.DropErr
	}
	return scan.Meals, nil
}

func EmptyMeals() model.Meals {
	return model.Meals{
		Breakfast: model.Meal{Items: []model.FoodItem{}},
		Lunch:     model.Meal{Items: []model.FoodItem{}},
		Dinner:    model.Meal{Items: []model.FoodItem{}},
		Snacks:    model.Meal{Items: []model.FoodItem{}},
	}
}

// looseFloat accepts numbers, numeric strings and blanks. Older rows stored
// form input verbatim.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*f = 0
			return nil
		}
		s = str
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = looseFloat(v)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
