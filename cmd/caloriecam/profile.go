package caloriecam

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Set up or show your profile and daily calorie goal",
}

var (
	profileName   string
	profileAge    int
	profileHeight float64
	profileWeight float64
	profileGender string
	profileGoal   string
	profileForce  bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create your profile and compute the daily calorie goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		gender, err := model.ParseGender(profileGender)
		if err != nil {
			return err
		}
		goal, err := model.ParseGoal(profileGoal)
		if err != nil {
			return err
		}
		if profileAge < 0 || profileHeight < 0 || profileWeight < 0 {
			return fmt.Errorf("age, height, and weight must be >= 0")
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			if c.View() != controller.ViewProfileSetup {
				if !profileForce {
					return fmt.Errorf("profile already exists; use --force to recreate it and recompute the goal")
				}
				if err := c.ResetProfile(); err != nil {
					return err
				}
			}
			lang, err := displayLanguage(c.Language())
			if err != nil {
				return err
			}
			p, err := c.CompleteProfile(service.ProfileInput{
				Name:     profileName,
				Age:      profileAge,
				HeightCm: profileHeight,
				WeightKg: profileWeight,
				Gender:   gender,
				Goal:     goal,
				Language: lang,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d kcal\n", p.TDEE)
			return nil
		})
	},
}

var profileJSON bool

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: run `caloriecam profile set`", controller.ErrNoProfile)
			}
			if profileJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Age: %d\n", p.Age)
			fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
			fmt.Fprintf(out, "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			fmt.Fprintf(out, "Goal: %s\n", p.Goal)
			fmt.Fprintf(out, "Daily goal: %d kcal\n", p.TDEE)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "First name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years (default 25)")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm (default 170)")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg (default 70)")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "male", "Gender: male|female|other")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "maintain", "Goal: lose|maintain|gain")
	profileSetCmd.Flags().BoolVar(&profileForce, "force", false, "Recreate an existing profile")
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")
}
