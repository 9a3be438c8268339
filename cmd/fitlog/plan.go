package fitlog

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var (
	planDate       string
	planRegenerate bool
	planCopyToLog  bool
	planJSON       bool
	planDeficit    int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Suggest tomorrow's meals from your targets and diet",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDayOrToday(planDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			s, err := service.Suggest(sqldb, p.Username, today, service.SuggestOptions{
				Regenerate: planRegenerate,
				Deficit:    planDeficit,
			})
			if err != nil {
				return err
			}
			if planJSON {
				if err := printJSON(cmd.OutOrStdout(), s); err != nil {
					return err
				}
			} else {
				printSuggestion(cmd.OutOrStdout(), s)
			}
			if planCopyToLog {
				l, err := service.CopyPlanToLog(sqldb, p.Username, s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied plan to log for %s (%s kcal)\n", l.Date, formatOptional(l.Calories, ""))
			}
			return nil
		})
	},
}

func printSuggestion(w io.Writer, s service.Suggestion) {
	t := s.Target
	fmt.Fprintf(w, "Plan for %s (seed %d)\n", s.Date, s.Plan.Seed)
	fmt.Fprintf(w, "BMR %.0f | TDEE %d | avg burn %.0f | effective TDEE %.0f\n", s.BMR, s.TDEE, s.AvgBurn, t.EffectiveTDEE)
	if t.FatLossMode {
		fmt.Fprintf(w, "Fat-loss mode: target %d kcal (deficit %d)\n", t.Calories, t.Deficit)
	} else {
		fmt.Fprintf(w, "Maintenance mode: target %d kcal\n", t.Calories)
	}
	if t.TooLow {
		fmt.Fprintln(w, "Warning: target is close to your BMR. Consider a smaller deficit.")
	}
	if t.TooHigh {
		fmt.Fprintln(w, "Warning: target is well above your TDEE.")
	}
	for _, slot := range s.Plan.Slots {
		fmt.Fprintf(w, "%s (budget %d kcal):\n", slot.Slot, slot.Budget)
		for _, f := range slot.Items {
			fmt.Fprintf(w, "  %s\t%d kcal\t%dg protein\t%s\n", f.Name, f.Calories, f.ProteinG, f.Tag)
		}
	}
	fmt.Fprintf(w, "Total: %d kcal | %dg protein\n", s.Plan.TotalCalories, s.Plan.TotalProteinG)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planDate, "date", "", "Plan for the day after this date (default today)")
	planCmd.Flags().BoolVar(&planRegenerate, "regenerate", false, "Pick a new set of meals")
	planCmd.Flags().BoolVar(&planCopyToLog, "copy-to-log", false, "Overwrite the planned day's log with the plan's calories and protein")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output JSON")
	planCmd.Flags().IntVar(&planDeficit, "deficit", 0, "Daily deficit in fat-loss mode for this plan (default profile preferred deficit)")
}
