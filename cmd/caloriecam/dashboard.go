package caloriecam

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var (
	dashboardDate string
	dashboardJSON bool
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"today"},
	Short:   "Show calories, macros, and meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(dashboardDate)
		if err != nil {
			return err
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			c.SetSelectedDate(date)
			view, err := c.Dashboard()
			if err != nil {
				return err
			}
			if dashboardJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			lang, err := displayLanguage(c.Language())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", title(dayLabel(lang, view.Date)), mutedStyle.Render(service.DateKey(view.Date)))
			fmt.Fprintf(out, "%.0f / %d %s  %s\n", view.Totals.Calories, view.Profile.TDEE, i18n.T(lang, "kcal"), bar(view.Totals.Calories, float64(max(view.Profile.TDEE, 1)), view.Profile.TDEE))
			fmt.Fprintln(out, i18n.Format(lang, "feedback."+view.Feedback.Kind, view.Feedback.Amount))
			fmt.Fprintf(out, "%s %.1fg | %s %.1fg | %s %.1fg\n",
				i18n.T(lang, "protein"), view.Totals.Macros.Protein,
				i18n.T(lang, "carbs"), view.Totals.Macros.Carbs,
				i18n.T(lang, "fats"), view.Totals.Macros.Fats)

			if view.Totals.Entries == 0 {
				fmt.Fprintln(out, mutedStyle.Render(i18n.T(lang, "no_meals")))
			} else {
				for _, g := range view.Meals {
					if len(g.Entries) == 0 {
						continue
					}
					fmt.Fprintf(out, "\n%s  %.0f %s\n", title(i18n.MealLabel(lang, g.MealType)), g.Calories, i18n.T(lang, "kcal"))
					for _, e := range g.Entries {
						fmt.Fprintf(out, "  %s  %s  %.0f %s  %s  %s\n", service.EntryTime(e).Format("15:04"), foodNames(e), e.TotalCalories, i18n.T(lang, "kcal"), ratingBadge(lang, e.HealthRating), mutedStyle.Render(e.ID))
					}
				}
			}

			status := i18n.T(lang, "weekly.above")
			if view.Weekly.OnTrack {
				status = i18n.T(lang, "weekly.good")
			}
			fmt.Fprintf(out, "\n7-day average: %d %s (%s)\n", view.Weekly.Average, i18n.T(lang, "kcal"), status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardDate, "date", "", "Date YYYY-MM-DD (default today)")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Output as JSON")
}
