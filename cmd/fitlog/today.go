package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, exercise, and remaining calories",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDayOrToday(todayDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			status, err := service.TodaySummary(sqldb, p.Username, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", status.Date)
			if status.HasLog {
				fmt.Fprintf(cmd.OutOrStdout(), "Intake: %s\n", formatOptional(status.IntakeCalories, " kcal"))
				fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %s | C %s | F %s | Fiber %s\n",
					formatOptional(status.ProteinG, "g"), formatOptional(status.CarbsG, "g"), formatOptional(status.FatG, "g"), formatOptional(status.FiberG, "g"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Intake: not logged")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exercise: %d kcal (%d workout(s))\n", status.ExerciseCalories, status.Workouts)
			fmt.Fprintf(cmd.OutOrStdout(), "Net: %s\n", formatOptional(status.NetCalories, " kcal"))
			if status.MaintenanceKcal != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Maintenance: %d kcal\n", *status.MaintenanceKcal)
				fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %s\n", formatOptional(status.RemainingCalories, " kcal"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Maintenance: unavailable")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
