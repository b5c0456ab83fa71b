package caloriecam

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var (
	historyJSON  bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged meals grouped by day, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 0 {
			return fmt.Errorf("--limit must be >= 0")
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			days, err := c.History()
			if err != nil {
				return err
			}
			if historyLimit > 0 && len(days) > historyLimit {
				days = days[:historyLimit]
			}
			if historyJSON {
				return printJSON(cmd.OutOrStdout(), days)
			}
			lang, err := displayLanguage(c.Language())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(days) == 0 {
				fmt.Fprintln(out, mutedStyle.Render(i18n.T(lang, "no_history")))
				return nil
			}
			for _, d := range days {
				label := d.Date
				if day, err := service.ParseDate(d.Date); err == nil {
					label = dayLabel(lang, day)
				}
				fmt.Fprintf(out, "%s  %.0f %s\n", title(label), d.Calories, i18n.T(lang, "kcal"))
				for _, e := range d.Entries {
					fmt.Fprintf(out, "  %s  %-10s %s  %.0f  %s\n", service.EntryTime(e).Format("15:04"), i18n.MealLabel(lang, e.MealType), foodNames(e), e.TotalCalories, mutedStyle.Render(e.ID))
				}
			}
			return nil
		})
	},
}

var (
	calendarMonth string
	calendarJSON  bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month with each day colored by calorie goal status",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := parseMonthOrCurrent(calendarMonth)
		if err != nil {
			return err
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			view, err := c.Calendar(month)
			if err != nil {
				return err
			}
			if calendarJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			out := cmd.OutOrStdout()
			header := month.Format("January 2006")
			if t, err := time.ParseInLocation("2006-01", view.Month, time.Local); err == nil {
				header = t.Format("January 2006")
			}
			fmt.Fprintln(out, title(header))
			fmt.Fprint(out, calendarGrid(view))
			fmt.Fprintf(out, "%s at or under goal  %s up to 200 over  %s more than 200 over\n", statusDot(service.StatusSuccess), statusDot(service.StatusWarning), statusDot(service.StatusDanger))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd, calendarCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Only the most recent N days (0 = all)")
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month YYYY-MM (default current)")
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "Output as JSON")
}
