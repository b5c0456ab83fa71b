package caloriecam

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/provider/gemini"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Analyze a meal and log it",
}

var (
	logDate string
	logMeal string
	logYes  bool
)

var logPhotoCmd = &cobra.Command{
	Use:   "photo <image-file>",
	Short: "Estimate nutrition from a JPEG photo (or a base64 data URL file)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readImage(args[0])
		if err != nil {
			return err
		}
		return runLog(cmd, func(ctx context.Context, c *controller.Controller) (model.NutritionEstimate, error) {
			return c.SubmitImage(ctx, img)
		}, func(c *controller.Controller) error {
			date, err := parseDateOrToday(logDate)
			if err != nil {
				return err
			}
			return c.StartCapture(date)
		})
	},
}

var logTextCmd = &cobra.Command{
	Use:   "text <description>",
	Short: "Estimate nutrition from a meal description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))
		if description == "" {
			return fmt.Errorf("description is required")
		}
		return runLog(cmd, func(ctx context.Context, c *controller.Controller) (model.NutritionEstimate, error) {
			return c.SubmitDescription(ctx, description)
		}, func(c *controller.Controller) error {
			date, err := parseDateOrToday(logDate)
			if err != nil {
				return err
			}
			return c.StartManual(date)
		})
	},
}

func runLog(cmd *cobra.Command, submit func(context.Context, *controller.Controller) (model.NutritionEstimate, error), start func(*controller.Controller) error) error {
	var meal model.MealType
	if strings.TrimSpace(logMeal) != "" {
		parsed, err := model.ParseMealType(logMeal)
		if err != nil {
			return err
		}
		meal = parsed
	}
	if logYes && meal == "" {
		return fmt.Errorf("--meal is required with --yes")
	}
	return withController(func(sqldb *sql.DB, c *controller.Controller) error {
		if c.View() == controller.ViewProfileSetup {
			return fmt.Errorf("%w: run `caloriecam profile set` first", controller.ErrNoProfile)
		}
		lang, err := displayLanguage(c.Language())
		if err != nil {
			return err
		}
		if err := start(c); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, mutedStyle.Render(i18n.T(lang, "analyzing")))
		est, err := submit(cmd.Context(), c)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T(lang, "failed_analysis"))
			return err
		}
		printEstimate(out, lang, est)

		if !logYes {
			if meal == "" {
				answer, err := ask(cmd, "Save as which meal? (breakfast, lunch, dinner, snack; empty to discard)")
				if err != nil {
					return err
				}
				if answer != "" {
					if meal, err = model.ParseMealType(answer); err != nil {
						if derr := c.DiscardAnalysis(); derr != nil {
							return derr
						}
						return err
					}
				}
			} else {
				ok, err := confirm(cmd, "Save this meal?")
				if err != nil {
					return err
				}
				if !ok {
					meal = ""
				}
			}
		}
		if meal == "" {
			if err := c.DiscardAnalysis(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Discarded")
			return nil
		}
		item, err := c.SaveAnalysis(meal)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Logged %s (%s) as %s\n", foodNames(item), item.ID, i18n.MealLabel(lang, item.MealType))
		return nil
	})
}

func printEstimate(w io.Writer, lang model.Language, est model.NutritionEstimate) {
	for _, f := range est.FoodItems {
		fmt.Fprintf(w, "- %s (%s): %.0f %s | P %.1fg | C %.1fg | F %.1fg\n", f.Name, f.Weight, f.Calories, i18n.T(lang, "kcal"), f.Macros.Protein, f.Macros.Carbs, f.Macros.Fats)
	}
	fmt.Fprintf(w, "%s: %.0f %s | P %.1fg | C %.1fg | F %.1fg\n", title("Total"), est.TotalCalories, i18n.T(lang, "kcal"), est.TotalMacros.Protein, est.TotalMacros.Carbs, est.TotalMacros.Fats)
	fmt.Fprintf(w, "Rating: %s\n", ratingBadge(lang, est.HealthRating))
	if strings.TrimSpace(est.Suggestions) != "" {
		fmt.Fprintf(w, "Tip: %s\n", est.Suggestions)
	}
}

// readImage loads raw JPEG bytes, or decodes a file holding a base64 data URL.
func readImage(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "data:image/") {
		b, err := base64.StdEncoding.DecodeString(gemini.StripDataURL(text))
		if err != nil {
			return nil, fmt.Errorf("decode image data url: %w", err)
		}
		return b, nil
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logPhotoCmd, logTextCmd)
	for _, c := range []*cobra.Command{logPhotoCmd, logTextCmd} {
		c.Flags().StringVar(&logDate, "date", "", "Date to log the meal on, YYYY-MM-DD (default today)")
		c.Flags().StringVar(&logMeal, "meal", "", "Meal type: breakfast|lunch|dinner|snack")
		c.Flags().BoolVarP(&logYes, "yes", "y", false, "Save without asking")
	}
}
