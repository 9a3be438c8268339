package fitlog

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/nutrition"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage daily logs",
}

var (
	logDate     string
	logWeight   float64
	logCalories float64
	logProtein  float64
	logCarbs    float64
	logFat      float64
	logFiber    float64
	logSteps    int
	logNotes    string
	logAutoFill bool
	logJSON     bool
	logResetYes bool
)

var logSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save (overwrite) the daily log, keeping its meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(logDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			meals := nutrition.EmptyMeals()
			existing, err := service.GetLog(sqldb, p.Username, date)
			if err == nil {
				meals = existing.Meals
			} else if !errors.Is(err, service.ErrLogNotFound) {
				return err
			}
			autoFill, err := resolveAutoFill(cmd, sqldb)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("autofill") && typedMacros(cmd) {
				autoFill = false
			}
			saved, err := service.SaveLog(sqldb, p.Username, model.DailyLog{
				Date:            date,
				MorningWeightKg: changedFloat(cmd, "weight", logWeight),
				Calories:        changedFloat(cmd, "calories", logCalories),
				ProteinG:        changedFloat(cmd, "protein", logProtein),
				CarbsG:          changedFloat(cmd, "carbs", logCarbs),
				FatG:            changedFloat(cmd, "fat", logFat),
				FiberG:          changedFloat(cmd, "fiber", logFiber),
				Steps:           changedInt(cmd, "steps", logSteps),
				Meals:           meals,
				Notes:           logNotes,
			}, autoFill)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved log for %s (calories %s)\n", saved.Date, formatOptional(saved.Calories, ""))
			return nil
		})
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one daily log with its meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(logDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			l, err := service.GetLog(sqldb, p.Username, date)
			if err != nil {
				return err
			}
			if logJSON {
				return printJSON(cmd.OutOrStdout(), l)
			}
			printLog(cmd.OutOrStdout(), l)
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List daily logs by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			logs, err := service.ListLogs(sqldb, p.Username)
			if err != nil {
				return err
			}
			if logJSON {
				return printJSON(cmd.OutOrStdout(), logs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tKCAL\tPROTEIN\tCARBS\tFAT\tFIBER\tSTEPS\tWEIGHT")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", l.Date,
					formatOptional(l.Calories, ""), formatOptional(l.ProteinG, "g"), formatOptional(l.CarbsG, "g"),
					formatOptional(l.FatG, "g"), formatOptional(l.FiberG, "g"), formatOptionalInt(l.Steps),
					formatOptional(l.MorningWeightKg, "kg"))
			}
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the daily log for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logDate == "" {
			return fmt.Errorf("--date is required")
		}
		date, err := dateOrToday(logDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			if err := service.DeleteLog(sqldb, p.Username, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted log for %s\n", date)
			return nil
		})
	},
}

var logResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every daily log of the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !logResetYes {
			return fmt.Errorf("refusing to delete all logs without --yes")
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			n, err := service.ResetLogs(sqldb, p.Username)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d log(s) for %s\n", n, p.Username)
			return nil
		})
	},
}

// resolveAutoFill honours --autofill when given, else the configured default.
func resolveAutoFill(cmd *cobra.Command, sqldb *sql.DB) (bool, error) {
	if cmd.Flags().Changed("autofill") {
		v, err := cmd.Flags().GetBool("autofill")
		if err != nil {
			return false, err
		}
		return v, nil
	}
	return service.ConfiguredAutoFill(sqldb)
}

func typedMacros(cmd *cobra.Command) bool {
	for _, name := range []string{"calories", "protein", "carbs", "fat", "fiber"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func printLog(w io.Writer, l model.DailyLog) {
	fmt.Fprintf(w, "Date: %s\n", l.Date)
	fmt.Fprintf(w, "Calories: %s\n", formatOptional(l.Calories, " kcal"))
	fmt.Fprintf(w, "Macros: P %s | C %s | F %s | Fiber %s\n",
		formatOptional(l.ProteinG, "g"), formatOptional(l.CarbsG, "g"), formatOptional(l.FatG, "g"), formatOptional(l.FiberG, "g"))
	fmt.Fprintf(w, "Steps: %s\n", formatOptionalInt(l.Steps))
	fmt.Fprintf(w, "Morning weight: %s\n", formatOptional(l.MorningWeightKg, " kg"))
	for _, slot := range model.MealSlots {
		meal := l.Meals.Slot(slot)
		total := nutrition.SumMeal(*meal)
		header := string(slot)
		if meal.Time != "" {
			header += " @ " + meal.Time
		}
		fmt.Fprintf(w, "%s: %.1f kcal\n", header, total.Calories)
		for _, item := range meal.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.1fg\t%.1f kcal\tP %.1fg\n", item.ID, item.Mode, item.Name, item.Grams, item.Computed.Calories, item.Computed.ProteinG)
		}
	}
	if l.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", l.Notes)
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logSaveCmd, logShowCmd, logListCmd, logDeleteCmd, logResetCmd)

	for _, c := range []*cobra.Command{logSaveCmd, logShowCmd, logDeleteCmd} {
		c.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	logSaveCmd.Flags().Float64Var(&logWeight, "weight", 0, "Morning weight in kg")
	logSaveCmd.Flags().Float64Var(&logCalories, "calories", 0, "Calories eaten")
	logSaveCmd.Flags().Float64Var(&logProtein, "protein", 0, "Protein grams")
	logSaveCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Carb grams")
	logSaveCmd.Flags().Float64Var(&logFat, "fat", 0, "Fat grams")
	logSaveCmd.Flags().Float64Var(&logFiber, "fiber", 0, "Fiber grams")
	logSaveCmd.Flags().IntVar(&logSteps, "steps", 0, "Step count")
	logSaveCmd.Flags().StringVar(&logNotes, "notes", "", "Free-form notes")
	logSaveCmd.Flags().BoolVar(&logAutoFill, "autofill", true, "Fill the macro fields from meal totals (default from config autofill_default, off when macros are typed)")
	logShowCmd.Flags().BoolVar(&logJSON, "json", false, "Output JSON")
	logListCmd.Flags().BoolVar(&logJSON, "json", false, "Output JSON")
	logResetCmd.Flags().BoolVar(&logResetYes, "yes", false, "Confirm deleting all logs")
}
