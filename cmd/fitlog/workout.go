package fitlog

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/shivani123B/fitlog/internal/workout"
	"github.com/spf13/cobra"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage workouts",
}

var (
	workoutName      string
	workoutCategory  string
	workoutIntensity string
	workoutMET       float64
	workoutDuration  int
	workoutDate      string
	workoutJSON      bool
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout; burn is estimated from MET and profile weight",
	Long: `Log a workout.

A --name matching a library activity uses its category and MET. Any other
name is a custom workout whose MET comes from --category and --intensity.
--met overrides both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(workoutDate)
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			e, err := service.AddWorkout(sqldb, p.Username, service.WorkoutInput{
				Date:        date,
				Name:        workoutName,
				Category:    workoutCategory,
				Intensity:   workoutIntensity,
				MET:         workoutMET,
				DurationMin: workoutDuration,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %s: %s %d min (MET %.1f) burned %d kcal\n",
				e.ID, e.WorkoutName, e.DurationMin, e.MET, e.CaloriesBurned)
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			book, err := service.ListWorkouts(sqldb, p.Username)
			if err != nil {
				return err
			}
			if workoutDate != "" {
				date, err := dateOrToday(workoutDate)
				if err != nil {
					return err
				}
				filtered := model.WorkoutBook{}
				if entries, ok := book[date]; ok {
					filtered[date] = entries
				}
				book = filtered
			}
			if workoutJSON {
				return printJSON(cmd.OutOrStdout(), book)
			}
			dates := make([]string, 0, len(book))
			for d := range book {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWORKOUT\tCATEGORY\tMIN\tMET\tKCAL")
			for _, d := range dates {
				for _, e := range book[d] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d\t%.1f\t%d\n", e.ID, e.Date, e.WorkoutName, e.Category, e.DurationMin, e.MET, e.CaloriesBurned)
				}
			}
			return nil
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			if err := service.DeleteWorkout(sqldb, p.Username, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		})
	},
}

var workoutLibraryCmd = &cobra.Command{
	Use:   "library [query]",
	Short: "List library activities with their MET values",
	RunE: func(cmd *cobra.Command, args []string) error {
		activities := workout.Search(strings.Join(args, " "))
		if workoutJSON {
			return printJSON(cmd.OutOrStdout(), activities)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ACTIVITY\tCATEGORY\tMET")
		for _, a := range activities {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\n", a.Name, a.Category, a.MET)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutDeleteCmd, workoutLibraryCmd)

	workoutAddCmd.Flags().StringVar(&workoutName, "name", "", "Library activity or custom workout name")
	workoutAddCmd.Flags().StringVar(&workoutCategory, "category", "", "Custom workout category: cardio|strength|other")
	workoutAddCmd.Flags().StringVar(&workoutIntensity, "intensity", "", "Custom workout intensity: easy|moderate|hard")
	workoutAddCmd.Flags().Float64Var(&workoutMET, "met", 0, "MET override")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "Duration in minutes")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "Date YYYY-MM-DD (default today)")
	workoutListCmd.Flags().StringVar(&workoutDate, "date", "", "Only show one date")
	workoutListCmd.Flags().BoolVar(&workoutJSON, "json", false, "Output JSON")
	workoutLibraryCmd.Flags().BoolVar(&workoutJSON, "json", false, "Output JSON")
}
