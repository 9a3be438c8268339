package fitlog

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/shivani123B/fitlog/internal/energy"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var (
	energyDate string
	energyJSON bool
)

var energyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Show BMR, TDEE, targets and calorie balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDayOrToday(energyDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			r, err := service.EnergyReport(sqldb, p.Username, today)
			if err != nil {
				return err
			}
			if energyJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}
			printEnergyReport(cmd.OutOrStdout(), r)
			return nil
		})
	},
}

func printEnergyReport(w io.Writer, r energy.Report) {
	fmt.Fprintf(w, "Date: %s\n", r.Date)
	fmt.Fprintf(w, "Activity level: %s\n", r.Activity)
	if r.BMR == nil || r.TDEE == nil {
		fmt.Fprintln(w, "BMR: unavailable (needs age, height, weight and gender female or male)")
	} else {
		fmt.Fprintf(w, "BMR: %.0f kcal\n", *r.BMR)
		fmt.Fprintf(w, "TDEE: %d kcal\n", *r.TDEE)
	}
	if t := r.Targets; t != nil {
		fmt.Fprintf(w, "Targets: maintenance %d | fat loss %d | aggressive cut %d | lean bulk %d\n", t.Maintenance, t.FatLoss, t.AggressiveCut, t.LeanBulk)
	}
	if pt := r.Protein; pt != nil {
		fmt.Fprintf(w, "Protein: maintenance %dg | cut %d-%dg\n", pt.MaintenanceG, pt.CutLowG, pt.CutHighG)
	}
	if wt := r.Water; wt != nil {
		fmt.Fprintf(w, "Water: %.1f L (%d glasses)\n", wt.Liters, wt.Glasses)
	}
	fmt.Fprintf(w, "Avg intake (7 days): %s\n", formatOptional(r.AvgIntake, " kcal"))
	fmt.Fprintf(w, "Exercise today: %d kcal | avg burn (7 days): %.0f kcal\n", r.TodayBurn, r.AvgBurn)
	printBalance(w, "Diet only", r.DietOnly)
	if r.HasWorkouts {
		printBalance(w, "With exercise", r.WithExercise)
	}
}

func printBalance(w io.Writer, label string, b *energy.Balance) {
	if b == nil {
		fmt.Fprintf(w, "%s: unavailable\n", label)
		return
	}
	fmt.Fprintf(w, "%s: deficit %.0f kcal/day | %.2f kg/week | %s. %s\n", label, b.Deficit, b.WeeklyFatChange, b.Status, b.Status.Advice())
}

func init() {
	rootCmd.AddCommand(energyCmd)
	energyCmd.Flags().StringVar(&energyDate, "date", "", "Date YYYY-MM-DD (default today)")
	energyCmd.Flags().BoolVar(&energyJSON, "json", false, "Output JSON")
}
