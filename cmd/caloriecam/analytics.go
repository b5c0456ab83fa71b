package caloriecam

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/spf13/cobra"
)

var (
	analyticsDate string
	analyticsJSON bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the 7-day calorie trend and macro distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(analyticsDate)
		if err != nil {
			return err
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			c.SetSelectedDate(date)
			view, err := c.Analytics()
			if err != nil {
				return err
			}
			if analyticsJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			lang, err := displayLanguage(c.Language())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			top := float64(view.Goal)
			for _, p := range view.Trend {
				if p.Calories > top {
					top = p.Calories
				}
			}
			fmt.Fprintln(out, title("Last 7 days"))
			for _, p := range view.Trend {
				fmt.Fprintf(out, "%s %6.0f %s\n", p.Date, p.Calories, bar(p.Calories, top, p.Goal))
			}
			status := i18n.T(lang, "weekly.above")
			if view.Weekly.OnTrack {
				status = i18n.T(lang, "weekly.good")
			}
			fmt.Fprintf(out, "Average: %d / %d %s (%d days logged) %s\n", view.Weekly.Average, view.Goal, i18n.T(lang, "kcal"), view.Weekly.DaysWithData, status)

			fmt.Fprintln(out, "\n"+title("Macros"))
			total := 0.0
			for _, m := range view.Macros {
				total += m.Grams
			}
			for _, m := range view.Macros {
				pct := 0.0
				if total > 0 {
					pct = m.Grams / total * 100
				}
				fmt.Fprintf(out, "%-14s %8.1fg %5.1f%% %s\n", i18n.T(lang, m.Name), m.Grams, pct, bar(m.Grams, total, 0))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().StringVar(&analyticsDate, "date", "", "Last day of the 7-day window, YYYY-MM-DD (default today)")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Output as JSON")
}
