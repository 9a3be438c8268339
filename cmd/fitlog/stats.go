package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var (
	statsDate string
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show logging streaks and the workout dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDayOrToday(statsDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			s, err := service.DashboardStats(sqldb, p.Username, today)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			out := cmd.OutOrStdout()
			w := s.Workouts
			fmt.Fprintf(out, "Date: %s\n", s.Date)
			fmt.Fprintf(out, "Today's intake: %s\n", formatOptional(s.TodayIntake, " kcal"))
			fmt.Fprintf(out, "Logged days: %d | streak %d | best %d\n", s.LogCount, s.LogStreak, s.BestLogStreak)
			fmt.Fprintf(out, "Workouts today: %d min | %d kcal\n", w.TodayMinutes, w.TodayBurn)
			fmt.Fprintf(out, "This week: %d / %d min (%d%%)\n", w.WeeklyMinutes, w.WeeklyGoalMinutes, w.GoalProgressPct)
			fmt.Fprintf(out, "Workout streak: %d | best %d\n", w.CurrentStreak, w.BestStreak)
			if w.Records.LongestSessionMin > 0 {
				fmt.Fprintf(out, "Longest session: %d min (%s)\n", w.Records.LongestSessionMin, w.Records.LongestSession)
				fmt.Fprintf(out, "Highest single burn: %d kcal (%s)\n", w.Records.HighestSingleBurn, w.Records.HighestBurnEntry)
				fmt.Fprintf(out, "Highest daily burn: %d kcal (%s)\n", w.Records.HighestDailyBurn, w.Records.HighestBurnDate)
			}
			for _, c := range w.Breakdown {
				fmt.Fprintf(out, "%s: %d min\n", c.Category, c.Minutes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Date YYYY-MM-DD (default today)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output JSON")
}
