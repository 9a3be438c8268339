package model

import "time"

type Gender string

const (
	GenderFemale         Gender = "female"
	GenderMale           Gender = "male"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

type DietCategory string

const (
	DietUnset          DietCategory = ""
	DietVegan          DietCategory = "Vegan"
	DietVegetarian     DietCategory = "Vegetarian"
	DietEggetarian     DietCategory = "Eggetarian"
	DietNonVegetarian  DietCategory = "Non-vegetarian"
	DietPreferNotToSay DietCategory = "Prefer not to say"
)

type Profile struct {
	Username                string       `json:"username"`
	Name                    string       `json:"name"`
	Age                     int          `json:"age"`
	Gender                  Gender       `json:"gender"`
	HeightCm                float64      `json:"heightCm"`
	WeightKg                float64      `json:"weightKg"`
	DietCategory            DietCategory `json:"dietCategory"`
	GoalWeightKg            *float64     `json:"goalWeightKg"`
	WeeklyActiveMinutesGoal int          `json:"weeklyActiveMinutesGoal"`
	PreferredDeficit        int          `json:"preferredDeficit"`
	CreatedAt               time.Time    `json:"createdAt"`
}

type MacroQuantity struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
	FiberG   float64 `json:"fiberG"`
}

func (m MacroQuantity) Add(o MacroQuantity) MacroQuantity {
	return MacroQuantity{
		Calories: m.Calories + o.Calories,
		ProteinG: m.ProteinG + o.ProteinG,
		CarbsG:   m.CarbsG + o.CarbsG,
		FatG:     m.FatG + o.FatG,
		FiberG:   m.FiberG + o.FiberG,
	}
}

type ItemMode string

const (
	ItemModeGeneric ItemMode = "generic"
	ItemModeOFF     ItemMode = "off"
	ItemModeManual  ItemMode = "manual"
)

type ManualBasis string

const (
	BasisPer100g  ManualBasis = "per100g"
	BasisAbsolute ManualBasis = "absolute"
)

// Selection is a provider search result pinned to a food item.
type Selection struct {
	Source     string        `json:"source"`
	ExternalID string        `json:"externalId"`
	Brand      string        `json:"brand,omitempty"`
	Per100g    MacroQuantity `json:"per100g"`
}

type ManualEntry struct {
	Basis  ManualBasis   `json:"basis"`
	Values MacroQuantity `json:"values"`
}

// FoodItem.Computed is a snapshot taken at save time. Edits must replace the
// whole item so the snapshot is regenerated.
type FoodItem struct {
	ID       string        `json:"id"`
	Mode     ItemMode      `json:"mode"`
	Name     string        `json:"name"`
	Grams    float64       `json:"grams"`
	Selected *Selection    `json:"selected"`
	Manual   *ManualEntry  `json:"manual"`
	Computed MacroQuantity `json:"computed"`
}

// FoodCandidate is one search result offered by a food provider.
type FoodCandidate struct {
	ExternalID string        `json:"externalId"`
	Name       string        `json:"name"`
	Brand      string        `json:"brand,omitempty"`
	Per100g    MacroQuantity `json:"per100g"`
}

type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnacks    MealSlot = "snacks"
)

var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnacks}

type Meal struct {
	Time  string     `json:"time"`
	Items []FoodItem `json:"items"`
}

type Meals struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
	Snacks    Meal `json:"snacks"`
}

func (m *Meals) Slot(slot MealSlot) *Meal {
	switch slot {
	case SlotBreakfast:
		return &m.Breakfast
	case SlotLunch:
		return &m.Lunch
	case SlotDinner:
		return &m.Dinner
	case SlotSnacks:
		return &m.Snacks
	default:
		return nil
	}
}

// DailyLog macro fields are nil when the day was not tracked. Whether they
// were typed or derived from meals is not recorded.
type DailyLog struct {
	Date            string   `json:"date"`
	MorningWeightKg *float64 `json:"morningWeightKg"`
	Calories        *float64 `json:"calories"`
	ProteinG        *float64 `json:"proteinG"`
	CarbsG          *float64 `json:"carbsG"`
	FatG            *float64 `json:"fatG"`
	FiberG          *float64 `json:"fiberG"`
	Steps           *int     `json:"steps"`
	Meals           Meals    `json:"meals"`
	Notes           string   `json:"notes"`
}

type WorkoutCategory string

const (
	CategoryCardio   WorkoutCategory = "Cardio"
	CategoryStrength WorkoutCategory = "Strength"
	CategoryOther    WorkoutCategory = "Other"
)

var WorkoutCategories = []WorkoutCategory{CategoryCardio, CategoryStrength, CategoryOther}

type WorkoutEntry struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	WorkoutName    string          `json:"workoutName"`
	Category       WorkoutCategory `json:"category"`
	DurationMin    int             `json:"durationMin"`
	MET            float64         `json:"met"`
	CaloriesBurned int             `json:"caloriesBurned"`
}

// WorkoutBook maps a YYYY-MM-DD date to the workouts logged that day. Dates
// with no workouts have no key.
type WorkoutBook map[string][]WorkoutEntry

func (b WorkoutBook) Add(e WorkoutEntry) {
	b[e.Date] = append(b[e.Date], e)
}

// Remove deletes the entry with id and drops the date once it is empty.
func (b WorkoutBook) Remove(id string) bool {
	for date, entries := range b {
		for i, e := range entries {
			if e.ID != id {
				continue
			}
			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(b, date)
			} else {
				b[date] = entries
			}
			return true
		}
	}
	return false
}

const DateLayout = "2006-01-02"
