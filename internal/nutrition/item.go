package nutrition

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shivani123B/fitlog/internal/model"
)

// SourceForMode names the provider behind a search-backed item mode.
func SourceForMode(mode model.ItemMode) string {
	switch mode {
	case model.ItemModeGeneric:
		return "usda"
	case model.ItemModeOFF:
		return "openfoodfacts"
	default:
		return ""
	}
}

// Resolve computes the macro snapshot for an item from whichever of
// Selected or Manual its mode populates.
func Resolve(item model.FoodItem) (model.MacroQuantity, error) {
	switch item.Mode {
	case model.ItemModeGeneric, model.ItemModeOFF:
		if item.Selected == nil {
			return model.MacroQuantity{}, fmt.Errorf("%s item %q has no selected food", item.Mode, item.Name)
		}
		return ScaleToGrams(item.Selected.Per100g, item.Grams)
	case model.ItemModeManual:
		if item.Manual == nil {
			return model.MacroQuantity{}, fmt.Errorf("manual item %q has no values", item.Name)
		}
		if item.Manual.Basis == model.BasisAbsolute {
			return RoundMacros(item.Manual.Values), nil
		}
		return ScaleToGrams(item.Manual.Values, item.Grams)
	default:
		return model.MacroQuantity{}, fmt.Errorf("invalid item mode %q", item.Mode)
	}
}

func NewSelectedItem(mode model.ItemMode, c model.FoodCandidate, grams float64) (model.FoodItem, error) {
	if mode != model.ItemModeGeneric && mode != model.ItemModeOFF {
		return model.FoodItem{}, fmt.Errorf("invalid search mode %q (use generic or off)", mode)
	}
	item := model.FoodItem{
		ID:    uuid.NewString(),
		Mode:  mode,
		Name:  strings.TrimSpace(c.Name),
		Grams: grams,
		Selected: &model.Selection{
			Source:     SourceForMode(mode),
			ExternalID: c.ExternalID,
			Brand:      strings.TrimSpace(c.Brand),
			Per100g:    c.Per100g,
		},
	}
	return finalize(item)
}

func NewManualItem(name string, grams float64, basis model.ManualBasis, values model.MacroQuantity) (model.FoodItem, error) {
	if basis == "" {
		basis = model.BasisPer100g
	}
	if basis != model.BasisPer100g && basis != model.BasisAbsolute {
		return model.FoodItem{}, fmt.Errorf("invalid manual basis %q (use per100g or absolute)", basis)
	}
	if err := validateMacros(values); err != nil {
		return model.FoodItem{}, err
	}
	item := model.FoodItem{
		ID:     uuid.NewString(),
		Mode:   model.ItemModeManual,
		Name:   strings.TrimSpace(name),
		Grams:  grams,
		Manual: &model.ManualEntry{Basis: basis, Values: values},
	}
	return finalize(item)
}

// Replace rebuilds item under the id of the item it replaces.
func Replace(id string, item model.FoodItem) (model.FoodItem, error) {
	item.ID = id
	return finalize(item)
}

func finalize(item model.FoodItem) (model.FoodItem, error) {
	if item.Name == "" {
		return model.FoodItem{}, fmt.Errorf("food name is required")
	}
	if !(item.Grams > 0) {
		return model.FoodItem{}, ErrNonPositiveGrams
	}
	computed, err := Resolve(item)
	if err != nil {
		return model.FoodItem{}, err
	}
	item.Computed = computed
	return item, nil
}

func validateMacros(m model.MacroQuantity) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"calories", m.Calories},
		{"protein", m.ProteinG},
		{"carbs", m.CarbsG},
		{"fat", m.FatG},
		{"fiber", m.FiberG},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s must be >= 0", f.name)
		}
	}
	return nil
}
