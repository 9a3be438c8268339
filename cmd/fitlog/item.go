package fitlog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shivani123B/fitlog/internal/autocomplete"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage food items inside a day's meals",
}

var (
	itemDate     string
	itemSlot     string
	itemMode     string
	itemName     string
	itemQuery    string
	itemPick     int
	itemAmount   float64
	itemUnit     string
	itemBasis    string
	itemCalories float64
	itemProtein  float64
	itemCarbs    float64
	itemFat      float64
	itemFiber    float64
	itemAutoFill bool
	itemTime     string
)

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food item to a meal",
	Long: `Add a food item to a meal.

Manual items take --name, --basis and macro values. Search items
(--mode generic or off) take --query and the 1-based --pick of the result
list shown by "fitlog search".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItemChange(cmd, func(sqldb *sql.DB, ref service.MealRef, in service.ItemInput) (model.FoodItem, error) {
			return service.AddItem(sqldb, ref, in)
		}, "Added", true)
	},
}

var itemReplaceCmd = &cobra.Command{
	Use:   "replace <id>",
	Short: "Replace a food item, keeping its id and position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItemChange(cmd, func(sqldb *sql.DB, ref service.MealRef, in service.ItemInput) (model.FoodItem, error) {
			return service.ReplaceItem(sqldb, ref, args[0], in)
		}, "Replaced", false)
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(itemDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			autoFill, err := resolveAutoFill(cmd, sqldb)
			if err != nil {
				return err
			}
			ref := service.MealRef{Username: p.Username, Date: date, AutoFill: autoFill}
			if err := service.DeleteItem(sqldb, ref, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", args[0])
			return nil
		})
	},
}

var itemTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Set the HH:MM time of a meal (empty clears it)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(itemDate)
		if err != nil {
			return err
		}
		slot, err := parseSlot(itemSlot)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			ref := service.MealRef{Username: p.Username, Date: date, Slot: slot}
			if err := service.SetMealTime(sqldb, ref, itemTime); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s time on %s\n", slot, date)
			return nil
		})
	},
}

type itemChangeFunc func(*sql.DB, service.MealRef, service.ItemInput) (model.FoodItem, error)

func runItemChange(cmd *cobra.Command, change itemChangeFunc, verb string, requireSlot bool) error {
	date, err := dateOrToday(itemDate)
	if err != nil {
		return err
	}
	var slot model.MealSlot
	if requireSlot || itemSlot != "" {
		if slot, err = parseSlot(itemSlot); err != nil {
			return err
		}
	}
	mode := model.ItemMode(strings.ToLower(strings.TrimSpace(itemMode)))
	in := service.ItemInput{
		Mode:   mode,
		Name:   itemName,
		Basis:  model.ManualBasis(strings.TrimSpace(itemBasis)),
		Amount: itemAmount,
		Unit:   itemUnit,
		Values: model.MacroQuantity{
			Calories: itemCalories,
			ProteinG: itemProtein,
			CarbsG:   itemCarbs,
			FatG:     itemFat,
			FiberG:   itemFiber,
		},
	}
	return withUser(func(sqldb *sql.DB, p model.Profile) error {
		if mode == model.ItemModeGeneric || mode == model.ItemModeOFF {
			c, err := pickCandidate(sqldb, string(mode), itemQuery, itemPick)
			if err != nil {
				return err
			}
			in.Candidate = &c
		}
		autoFill, err := resolveAutoFill(cmd, sqldb)
		if err != nil {
			return err
		}
		ref := service.MealRef{Username: p.Username, Date: date, Slot: slot, AutoFill: autoFill}
		item, err := change(sqldb, ref, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s item %s: %s %.1fg (%.1f kcal) on %s\n",
			verb, item.ID, item.Name, item.Grams, item.Computed.Calories, date)
		return nil
	})
}

func pickCandidate(sqldb *sql.DB, mode, query string, pick int) (model.FoodCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return model.FoodCandidate{}, fmt.Errorf("--query is required for %s items", mode)
	}
	session, err := newSearchSession(sqldb, mode, 0, autocomplete.DefaultMaxResults)
	if err != nil {
		return model.FoodCandidate{}, err
	}
	defer session.Close()
	results, err := searchOnce(session, query)
	if err != nil {
		return model.FoodCandidate{}, err
	}
	if pick < 1 || pick > len(results) {
		return model.FoodCandidate{}, fmt.Errorf("--pick %d out of range (%d result(s) for %q)", pick, len(results), query)
	}
	return results[pick-1], nil
}

func init() {
	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemAddCmd, itemReplaceCmd, itemDeleteCmd, itemTimeCmd)

	for _, c := range []*cobra.Command{itemAddCmd, itemReplaceCmd, itemDeleteCmd, itemTimeCmd} {
		c.Flags().StringVar(&itemDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	for _, c := range []*cobra.Command{itemAddCmd, itemReplaceCmd, itemTimeCmd} {
		c.Flags().StringVar(&itemSlot, "slot", "", "Meal: breakfast|lunch|dinner|snacks")
	}
	for _, c := range []*cobra.Command{itemAddCmd, itemReplaceCmd} {
		c.Flags().StringVar(&itemMode, "mode", string(model.ItemModeManual), "Item mode: manual|generic|off")
		c.Flags().StringVar(&itemName, "name", "", "Food name (overrides the search result name)")
		c.Flags().StringVar(&itemQuery, "query", "", "Search query for generic/off items")
		c.Flags().IntVar(&itemPick, "pick", 1, "1-based search result to use")
		c.Flags().Float64Var(&itemAmount, "amount", 100, "Amount eaten")
		c.Flags().StringVar(&itemUnit, "unit", "g", "Amount unit: g|kg|oz|lb")
		c.Flags().StringVar(&itemBasis, "basis", string(model.BasisPer100g), "Manual values basis: per100g|absolute")
		c.Flags().Float64Var(&itemCalories, "calories", 0, "Manual calories")
		c.Flags().Float64Var(&itemProtein, "protein", 0, "Manual protein grams")
		c.Flags().Float64Var(&itemCarbs, "carbs", 0, "Manual carb grams")
		c.Flags().Float64Var(&itemFat, "fat", 0, "Manual fat grams")
		c.Flags().Float64Var(&itemFiber, "fiber", 0, "Manual fiber grams")
	}
	for _, c := range []*cobra.Command{itemAddCmd, itemReplaceCmd, itemDeleteCmd} {
		c.Flags().BoolVar(&itemAutoFill, "autofill", true, "Refresh the day macro fields from meal totals (default from config autofill_default)")
	}
	itemTimeCmd.Flags().StringVar(&itemTime, "time", "", "Meal time HH:MM")
}
