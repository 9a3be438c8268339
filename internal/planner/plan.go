package planner

import (
	"math"

	"github.com/shivani123B/fitlog/internal/model"
)

type slotShare struct {
	slot model.MealSlot
	pct  float64
}

var slotShares = []slotShare{
	{model.SlotBreakfast, 0.25},
	{model.SlotLunch, 0.35},
	{model.SlotDinner, 0.30},
	{model.SlotSnacks, 0.10},
}

const slotSeedStride = 137

type SlotPlan struct {
	Slot   model.MealSlot `json:"slot"`
	Budget int            `json:"budget"`
	Items  []Food         `json:"items"`
}

type Plan struct {
	TargetCalories int        `json:"targetCalories"`
	FatLossMode    bool       `json:"fatLossMode"`
	Seed           int        `json:"seed"`
	Diet           string     `json:"diet"`
	Slots          []SlotPlan `json:"slots"`
	TotalCalories  int        `json:"totalCalories"`
	TotalProteinG  int        `json:"totalProteinG"`
}

type PlanInput struct {
	TargetCalories int
	FatLossMode    bool
	Seed           int
	Diet           model.DietCategory
}

// BuildPlan picks one food per slot. The same catalog and input always
// produce the same plan.
func BuildPlan(catalog Catalog, in PlanInput) Plan {
	plan := Plan{
		TargetCalories: in.TargetCalories,
		FatLossMode:    in.FatLossMode,
		Seed:           in.Seed,
		Diet:           string(in.Diet),
		Slots:          make([]SlotPlan, 0, len(slotShares)),
	}
	for idx, share := range slotShares {
		budget := int(math.Round(float64(in.TargetCalories) * share.pct))
		candidates := FilterByDiet(catalog[share.slot], in.Diet)
		if len(candidates) == 0 {
			candidates = catalog[share.slot]
		}
		shuffled := Shuffle(candidates, int64(in.Seed)+int64(idx)*slotSeedStride)

		sp := SlotPlan{Slot: share.slot, Budget: budget, Items: []Food{}}
		if best, ok := pickBest(shuffled, budget, in.FatLossMode); ok {
			sp.Items = append(sp.Items, best)
			plan.TotalCalories += best.Calories
			plan.TotalProteinG += best.ProteinG
		}
		plan.Slots = append(plan.Slots, sp)
	}
	return plan
}

// Shuffle is a Fisher-Yates pass driven by a 31-bit linear congruential
// generator. The constants must not change or saved seeds stop reproducing.
func Shuffle(foods []Food, seed int64) []Food {
	out := append([]Food(nil), foods...)
	s := seed
	for i := len(out) - 1; i > 0; i-- {
		s = (s*1664525 + 1013904223) & 0x7fffffff
		j := s % int64(i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func pickBest(foods []Food, budget int, fatLossMode bool) (Food, bool) {
	if len(foods) == 0 {
		return Food{}, false
	}
	best := foods[0]
	bestScore := math.Inf(1)
	for _, f := range foods {
		score := math.Abs(float64(f.Calories - budget))
		if fatLossMode && f.Calories > 0 {
			score -= float64(f.ProteinG) / float64(f.Calories) * 250
		}
		if score < bestScore {
			bestScore = score
			best = f
		}
	}
	return best, true
}
