package planner

import "github.com/shivani123B/fitlog/internal/model"

type DietTag string

const (
	TagVegan      DietTag = "VG"
	TagVegetarian DietTag = "V"
	TagEgg        DietTag = "E"
	TagNonVeg     DietTag = "N"
)

var allTags = []DietTag{TagVegan, TagVegetarian, TagEgg, TagNonVeg}

var allowedTags = map[model.DietCategory][]DietTag{
	model.DietVegan:      {TagVegan},
	model.DietVegetarian: {TagVegan, TagVegetarian},
	model.DietEggetarian: {TagVegan, TagVegetarian, TagEgg},
}

// AllowedTags lists the tags a diet may eat. Unknown and unset diets allow
// everything.
func AllowedTags(diet model.DietCategory) []DietTag {
	if tags, ok := allowedTags[diet]; ok {
		return tags
	}
	return allTags
}

type Food struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG int     `json:"proteinG"`
	Tag      DietTag `json:"tag"`
}

type Catalog map[model.MealSlot][]Food

// FilterByDiet keeps foods whose tag the diet allows.
func FilterByDiet(foods []Food, diet model.DietCategory) []Food {
	allowed := AllowedTags(diet)
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		for _, t := range allowed {
			if f.Tag == t {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// DefaultCatalog returns the built-in food library.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	for slot, foods := range defaultCatalog {
		out[slot] = append([]Food(nil), foods...)
	}
	return out
}

var defaultCatalog = Catalog{
	model.SlotBreakfast: {
		{Name: "Moong dal chilla (3) + green mint chutney", Calories: 310, ProteinG: 18, Tag: TagVegan},
		{Name: "Oats with almond milk + mixed nuts + banana", Calories: 370, ProteinG: 13, Tag: TagVegan},
		{Name: "Poha with peanuts, peas, and mixed veggies", Calories: 330, ProteinG: 12, Tag: TagVegan},
		{Name: "Whole wheat toast (2) + peanut butter + banana", Calories: 390, ProteinG: 15, Tag: TagVegan},
		{Name: "Idli (3) with sambar + coconut chutney", Calories: 350, ProteinG: 14, Tag: TagVegan},
		{Name: "Overnight oats + chia seeds + mixed berries", Calories: 320, ProteinG: 10, Tag: TagVegan},
		{Name: "Upma (semolina, 1 cup) + coconut chutney", Calories: 300, ProteinG: 10, Tag: TagVegan},
		{Name: "Besan chilla (2) with paneer filling + curd", Calories: 400, ProteinG: 24, Tag: TagVegetarian},
		{Name: "Paneer bhurji (100 g) + 2 whole wheat roti", Calories: 430, ProteinG: 26, Tag: TagVegetarian},
		{Name: "Greek yogurt (200 g) + granola + 1 seasonal fruit", Calories: 360, ProteinG: 20, Tag: TagVegetarian},
		{Name: "Veg omelette (3 eggs) + 1 whole wheat roti", Calories: 360, ProteinG: 22, Tag: TagEgg},
		{Name: "Sprouts salad (150 g) + 2 boiled eggs + black tea", Calories: 280, ProteinG: 20, Tag: TagEgg},
		{Name: "Egg white omelette (4 eggs) + 2 roti + veggies", Calories: 340, ProteinG: 26, Tag: TagEgg},
		{Name: "Chicken scramble (2 eggs + 50 g chicken) + toast", Calories: 410, ProteinG: 35, Tag: TagNonVeg},
		{Name: "Tuna salad sandwich on whole wheat bread", Calories: 370, ProteinG: 32, Tag: TagNonVeg},
	},
	model.SlotLunch: {
		{Name: "Brown rice + dal + mixed sabzi + fresh salad", Calories: 530, ProteinG: 18, Tag: TagVegan},
		{Name: "Rajma chawal + onion-tomato-cucumber salad", Calories: 550, ProteinG: 22, Tag: TagVegan},
		{Name: "Quinoa + chickpea salad bowl with roasted veggies", Calories: 480, ProteinG: 20, Tag: TagVegan},
		{Name: "Tofu stir-fry (150 g) + 1 cup brown rice + salad", Calories: 440, ProteinG: 24, Tag: TagVegan},
		{Name: "Chana masala + 2 roti + onion salad", Calories: 520, ProteinG: 22, Tag: TagVegan},
		{Name: "2 chapati + dal + paneer bhurji (80 g) + salad", Calories: 560, ProteinG: 28, Tag: TagVegetarian},
		{Name: "Chole masala + 2 roti + cucumber raita", Calories: 580, ProteinG: 24, Tag: TagVegetarian},
		{Name: "Palak paneer (200 g) + 2 roti + cucumber salad", Calories: 500, ProteinG: 22, Tag: TagVegetarian},
		{Name: "Dal makhani + 1 cup rice + 1 roti + salad", Calories: 540, ProteinG: 20, Tag: TagVegetarian},
		{Name: "Egg curry (2 eggs) + 2 whole wheat roti + salad", Calories: 470, ProteinG: 26, Tag: TagEgg},
		{Name: "Grilled chicken (150 g) + 1 cup brown rice + sabzi", Calories: 520, ProteinG: 38, Tag: TagNonVeg},
		{Name: "Fish curry (150 g) + 1 cup rice + salad", Calories: 490, ProteinG: 34, Tag: TagNonVeg},
	},
	model.SlotDinner: {
		{Name: "2 whole wheat roti + plain dal + mixed vegetables", Calories: 440, ProteinG: 16, Tag: TagVegan},
		{Name: "Vegetable soup + 2 roti + sabzi", Calories: 390, ProteinG: 14, Tag: TagVegan},
		{Name: "Tofu stir-fry (150 g) + 2 roti + salad", Calories: 440, ProteinG: 24, Tag: TagVegan},
		{Name: "Lentil soup + roasted sweet potato + green salad", Calories: 410, ProteinG: 18, Tag: TagVegan},
		{Name: "Chana masala (150 g) + 2 roti + onion salad", Calories: 430, ProteinG: 20, Tag: TagVegan},
		{Name: "Moong dal khichdi + curd + pickle", Calories: 400, ProteinG: 18, Tag: TagVegetarian},
		{Name: "Dal tadka + 2 roti + cucumber raita", Calories: 430, ProteinG: 18, Tag: TagVegetarian},
		{Name: "Paneer tikka (100 g) + 1 roti + green salad", Calories: 420, ProteinG: 24, Tag: TagVegetarian},
		{Name: "Egg fried rice (2 eggs) + stir-fry vegetables", Calories: 460, ProteinG: 22, Tag: TagEgg},
		{Name: "Grilled chicken (150 g) + roasted veggies + quinoa", Calories: 460, ProteinG: 40, Tag: TagNonVeg},
		{Name: "Chicken soup + 2 slices whole wheat bread", Calories: 380, ProteinG: 30, Tag: TagNonVeg},
		{Name: "Fish tikka (150 g) + 1 cup brown rice + salad", Calories: 450, ProteinG: 35, Tag: TagNonVeg},
	},
	model.SlotSnacks: {
		{Name: "Mixed nuts and seeds (30 g) + 1 seasonal fruit", Calories: 220, ProteinG: 6, Tag: TagVegan},
		{Name: "Roasted chana (40 g) + lemon + chaat masala", Calories: 160, ProteinG: 10, Tag: TagVegan},
		{Name: "Sprouts chaat (100 g) + tomato + onion", Calories: 150, ProteinG: 10, Tag: TagVegan},
		{Name: "Banana + 1 tbsp peanut butter", Calories: 210, ProteinG: 7, Tag: TagVegan},
		{Name: "Hummus (3 tbsp) + cucumber and carrot sticks", Calories: 170, ProteinG: 7, Tag: TagVegan},
		{Name: "Rice cakes (3) + almond butter", Calories: 200, ProteinG: 6, Tag: TagVegan},
		{Name: "Edamame (100 g) + sea salt", Calories: 120, ProteinG: 11, Tag: TagVegan},
		{Name: "Greek yogurt (150 g) + drizzle of honey", Calories: 180, ProteinG: 14, Tag: TagVegetarian},
		{Name: "Paneer cubes (60 g) + cucumber sticks + lemon", Calories: 140, ProteinG: 12, Tag: TagVegetarian},
		{Name: "Cottage cheese (100 g) + berries + chia seeds", Calories: 175, ProteinG: 14, Tag: TagVegetarian},
		{Name: "Protein shake (1 scoop whey) + 200 ml milk", Calories: 210, ProteinG: 28, Tag: TagVegetarian},
		{Name: "2 boiled eggs + rock salt + pepper", Calories: 155, ProteinG: 13, Tag: TagEgg},
		{Name: "Egg whites (4) + bell pepper stir-fry", Calories: 120, ProteinG: 18, Tag: TagEgg},
	},
}
