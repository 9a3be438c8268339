package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shivani123B/fitlog/internal/model"
)

var ErrNonPositiveGrams = errors.New("grams must be > 0")

// Round1 rounds to one decimal place. NaN and infinities become 0.
func Round1(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*10) / 10
}

func RoundMacros(m model.MacroQuantity) model.MacroQuantity {
	return model.MacroQuantity{
		Calories: Round1(m.Calories),
		ProteinG: Round1(m.ProteinG),
		CarbsG:   Round1(m.CarbsG),
		FatG:     Round1(m.FatG),
		FiberG:   Round1(m.FiberG),
	}
}

func ScaleToGrams(per100g model.MacroQuantity, grams float64) (model.MacroQuantity, error) {
	if !(grams > 0) {
		return model.MacroQuantity{}, ErrNonPositiveGrams
	}
	f := grams / 100
	return RoundMacros(model.MacroQuantity{
		Calories: per100g.Calories * f,
		ProteinG: per100g.ProteinG * f,
		CarbsG:   per100g.CarbsG * f,
		FatG:     per100g.FatG * f,
		FiberG:   per100g.FiberG * f,
	}), nil
}

var gramsPerUnit = map[string]float64{
	"mg":  0.001,
	"g":   1,
	"kg":  1000,
	"oz":  28.349523125,
	"lb":  453.59237,
	"lbs": 453.59237,
}

// ToGrams converts a mass amount to grams.
func ToGrams(amount float64, unit string) (float64, error) {
	if !(amount > 0) {
		return 0, fmt.Errorf("amount must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "g"
	}
	factor, ok := gramsPerUnit[u]
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q (use mg, g, kg, oz or lb)", unit)
	}
	return amount * factor, nil
}
