package fitlog

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profiles",
}

var (
	profileName   string
	profileAge    int
	profileGender string
	profileHeight float64
	profileWeight float64
	profileUnit   string
	profileDiet   string
	profileJSON   bool

	goalWeight        float64
	goalWeightUnit    string
	goalClearWeight   bool
	goalWeeklyMinutes int
	goalDeficit       int
)

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.CreateProfile(sqldb, service.ProfileInput{
				Name:         profileName,
				Age:          profileAge,
				Gender:       profileGender,
				HeightCm:     profileHeight,
				Weight:       profileWeight,
				WeightUnit:   profileUnit,
				DietCategory: profileDiet,
			})
			if err != nil {
				return err
			}
			if err := service.SetActiveUser(sqldb, p.Username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n", p.Username, p.Name)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			if profileJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListProfiles(sqldb)
			if err != nil {
				return err
			}
			active, _, err := service.GetConfig(sqldb, service.ConfigActiveUser)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ACTIVE\tUSERNAME\tNAME\tAGE\tWEIGHT_KG")
			for _, p := range items {
				marker := ""
				if p.Username == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%.1f\n", marker, p.Username, p.Name, p.Age, p.WeightKg)
			}
			return nil
		})
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit profile details",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			in := service.ProfileInput{
				Name:         p.Name,
				Age:          p.Age,
				Gender:       string(p.Gender),
				HeightCm:     p.HeightCm,
				Weight:       p.WeightKg,
				WeightUnit:   "kg",
				DietCategory: string(p.DietCategory),
			}
			if cmd.Flags().Changed("name") {
				in.Name = profileName
			}
			if cmd.Flags().Changed("age") {
				in.Age = profileAge
			}
			if cmd.Flags().Changed("gender") {
				in.Gender = profileGender
			}
			if cmd.Flags().Changed("height") {
				in.HeightCm = profileHeight
			}
			if cmd.Flags().Changed("weight") {
				in.Weight = profileWeight
				in.WeightUnit = profileUnit
			}
			if cmd.Flags().Changed("diet") {
				in.DietCategory = profileDiet
			}
			updated, err := service.UpdateProfile(sqldb, p.Username, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated profile %s\n", updated.Username)
			return nil
		})
	},
}

var profileGoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Set goal weight, weekly active minutes and preferred deficit",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.GoalsInput{
			GoalWeight:              changedFloat(cmd, "weight", goalWeight),
			GoalWeightUnit:          goalWeightUnit,
			ClearGoalWeight:         goalClearWeight,
			WeeklyActiveMinutesGoal: changedInt(cmd, "weekly-minutes", goalWeeklyMinutes),
			PreferredDeficit:        changedInt(cmd, "deficit", goalDeficit),
		}
		if in.GoalWeight == nil && !in.ClearGoalWeight && in.WeeklyActiveMinutesGoal == nil && in.PreferredDeficit == nil {
			return fmt.Errorf("set at least one flag")
		}
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			updated, err := service.UpdateGoals(sqldb, p.Username, in)
			if err != nil {
				return err
			}
			goal := "not set"
			if updated.GoalWeightKg != nil {
				goal = fmt.Sprintf("%.1f kg", *updated.GoalWeightKg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goals for %s: goal weight %s | weekly minutes %d | deficit %d kcal\n",
				updated.Username, goal, updated.WeeklyActiveMinutesGoal, updated.PreferredDeficit)
			return nil
		})
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <username>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetActiveUser(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", args[0])
			return nil
		})
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a profile with its logs and workouts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteProfile(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
			return nil
		})
	},
}

func printProfile(w io.Writer, p model.Profile) {
	fmt.Fprintf(w, "Username: %s\n", p.Username)
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "Age: %d\n", p.Age)
	fmt.Fprintf(w, "Gender: %s\n", p.Gender)
	fmt.Fprintf(w, "Height: %.1f cm\n", p.HeightCm)
	fmt.Fprintf(w, "Weight: %.1f kg\n", p.WeightKg)
	diet := string(p.DietCategory)
	if diet == "" {
		diet = "not set"
	}
	fmt.Fprintf(w, "Diet: %s\n", diet)
	if p.GoalWeightKg != nil {
		fmt.Fprintf(w, "Goal weight: %.1f kg\n", *p.GoalWeightKg)
	} else {
		fmt.Fprintln(w, "Goal weight: not set")
	}
	fmt.Fprintf(w, "Weekly active minutes goal: %d\n", p.WeeklyActiveMinutesGoal)
	fmt.Fprintf(w, "Preferred deficit: %d kcal\n", p.PreferredDeficit)
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&profileName, "name", "", "Display name")
	cmd.Flags().IntVar(&profileAge, "age", 0, "Age in years (1-120)")
	cmd.Flags().StringVar(&profileGender, "gender", "", "female|male|other|prefer-not-to-say")
	cmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm (0 = unknown)")
	cmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight (0 = unknown)")
	cmd.Flags().StringVar(&profileUnit, "unit", "kg", "Weight unit: kg|lb")
	cmd.Flags().StringVar(&profileDiet, "diet", "", "Vegan|Vegetarian|Eggetarian|Non-vegetarian|Prefer not to say")
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd, profileShowCmd, profileListCmd, profileEditCmd, profileGoalsCmd, profileUseCmd, profileDeleteCmd)

	addProfileFlags(profileCreateCmd)
	addProfileFlags(profileEditCmd)
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output JSON")

	profileGoalsCmd.Flags().Float64Var(&goalWeight, "weight", 0, "Goal weight")
	profileGoalsCmd.Flags().StringVar(&goalWeightUnit, "unit", "kg", "Goal weight unit: kg|lb")
	profileGoalsCmd.Flags().BoolVar(&goalClearWeight, "clear-weight", false, "Remove the goal weight")
	profileGoalsCmd.Flags().IntVar(&goalWeeklyMinutes, "weekly-minutes", 0, "Weekly active minutes goal (0 = default 150)")
	profileGoalsCmd.Flags().IntVar(&goalDeficit, "deficit", 0, "Preferred daily deficit in kcal (0 = default 500)")
}
