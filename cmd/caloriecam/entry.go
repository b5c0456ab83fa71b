package caloriecam

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage logged meals",
}

var (
	listDate string
	listJSON bool
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.ListEntries(sqldb)
			if err != nil {
				return err
			}
			if strings.TrimSpace(listDate) != "" {
				day, err := parseDateOrToday(listDate)
				if err != nil {
					return err
				}
				entries = service.EntriesOn(entries, day)
			}
			if listJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tMEAL\tKCAL\tSOURCE\tFOODS")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f\t%s\t%s\n", e.ID, service.EntryTime(e).Format("2006-01-02 15:04"), e.MealType, e.TotalCalories, e.Source, foodNames(e))
			}
			return nil
		})
	},
}

var entryShowJSON bool

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			item, err := service.EntryByID(sqldb, args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("entry %q not found", args[0])
			}
			if entryShowJSON {
				return printJSON(cmd.OutOrStdout(), item)
			}
			stored, err := service.GetLanguage(sqldb)
			if err != nil {
				return err
			}
			lang, err := displayLanguage(stored)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s\n", title(i18n.MealLabel(lang, item.MealType)), service.EntryTime(*item).Format("2006-01-02 15:04"), mutedStyle.Render(string(item.Source)))
			printEstimate(out, lang, item.NutritionEstimate)
			return nil
		})
	},
}

var (
	editName     string
	editCalories float64
	editProtein  float64
	editCarbs    float64
	editFat      float64
	editMeal     string
	editDate     string
	editTime     string
)

var entryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a logged meal's name, totals, meal type, or time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			item, err := service.EntryByID(sqldb, args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("entry %q not found", args[0])
			}
			in := editInputFrom(*item)
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = editName
			}
			if flags.Changed("calories") {
				in.Calories = editCalories
			}
			if flags.Changed("protein") {
				in.ProteinG = editProtein
			}
			if flags.Changed("carbs") {
				in.CarbsG = editCarbs
			}
			if flags.Changed("fat") {
				in.FatG = editFat
			}
			if flags.Changed("meal") {
				if in.MealType, err = model.ParseMealType(editMeal); err != nil {
					return err
				}
			}
			if flags.Changed("date") || flags.Changed("time") {
				if in.Time, err = editedTime(in.Time, editDate, editTime); err != nil {
					return err
				}
			}
			edited, err := c.EditEntry(args[0], in)
			if err != nil {
				return err
			}
			if edited == nil {
				return fmt.Errorf("entry %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", edited.ID)
			return nil
		})
	},
}

func editInputFrom(item model.AnalysisResult) service.EditEntryInput {
	name := ""
	if len(item.FoodItems) > 0 {
		name = item.FoodItems[0].Name
	}
	return service.EditEntryInput{
		Name:     name,
		Calories: item.TotalCalories,
		ProteinG: item.TotalMacros.Protein,
		CarbsG:   item.TotalMacros.Carbs,
		FatG:     item.TotalMacros.Fats,
		MealType: item.MealType,
		Time:     service.EntryTime(item),
	}
}

func editedTime(current time.Time, date, clock string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		date = current.Format("2006-01-02")
	}
	if strings.TrimSpace(clock) == "" {
		clock = current.Format("15:04")
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(date)+" "+strings.TrimSpace(clock), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			if err := c.DeleteEntry(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		})
	},
}

var duplicateDate string

var entryDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Log a copy of a meal on another date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(duplicateDate)
		if err != nil {
			return err
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			dup, err := c.DuplicateEntry(args[0], date)
			if err != nil {
				return err
			}
			if dup == nil {
				return fmt.Errorf("entry %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated entry %s as %s on %s\n", args[0], dup.ID, service.DateKey(date))
			return nil
		})
	},
}

var clearYes bool

var entryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every logged meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			ok, err := confirm(cmd, "Delete all logged meals?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearEntries(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared meal history")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryListCmd, entryShowCmd, entryEditCmd, entryDeleteCmd, entryDuplicateCmd, entryClearCmd)

	entryListCmd.Flags().StringVar(&listDate, "date", "", "Only meals on YYYY-MM-DD")
	entryListCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	entryShowCmd.Flags().BoolVar(&entryShowJSON, "json", false, "Output as JSON")

	entryEditCmd.Flags().StringVar(&editName, "name", "", "Meal name")
	entryEditCmd.Flags().Float64Var(&editCalories, "calories", 0, "Total calories")
	entryEditCmd.Flags().Float64Var(&editProtein, "protein", 0, "Total protein grams")
	entryEditCmd.Flags().Float64Var(&editCarbs, "carbs", 0, "Total carbs grams")
	entryEditCmd.Flags().Float64Var(&editFat, "fat", 0, "Total fat grams")
	entryEditCmd.Flags().StringVar(&editMeal, "meal", "", "Meal type: breakfast|lunch|dinner|snack")
	entryEditCmd.Flags().StringVar(&editDate, "date", "", "Date YYYY-MM-DD")
	entryEditCmd.Flags().StringVar(&editTime, "time", "", "Time HH:MM")

	entryDuplicateCmd.Flags().StringVar(&duplicateDate, "date", "", "Target date YYYY-MM-DD (default today)")
	entryClearCmd.Flags().BoolVar(&clearYes, "yes", false, "Skip confirmation")
}
