package caloriecam

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/saadjs/caloriecam/internal/app"
	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/db"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/provider/gemini"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// analyzerFactory builds the meal analyzer. Tests replace it.
var analyzerFactory = func(sqldb *sql.DB) (controller.Analyzer, error) {
	modelName, err := service.ResolveSetting(sqldb, service.ConfigGeminiModel, "", os.Getenv(app.EnvGeminiModel), gemini.DefaultModel)
	if err != nil {
		return nil, err
	}
	baseURL, err := service.ResolveSetting(sqldb, service.ConfigGeminiBaseURL, "", os.Getenv(app.EnvGeminiBaseURL), gemini.DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	return &gemini.Client{
		APIKey:  app.GeminiAPIKey(),
		BaseURL: baseURL,
		Model:   modelName,
		Logger:  logrus.StandardLogger(),
	}, nil
}

// withController opens the database and builds a controller on top of it.
// The --lang flag overrides the stored language for this run only, for both
// output and analysis requests.
func withController(run func(*sql.DB, *controller.Controller) error) error {
	return withDB(func(sqldb *sql.DB) error {
		analyzer, err := analyzerFactory(sqldb)
		if err != nil {
			return err
		}
		opts := []controller.Option{controller.WithLogger(logrus.StandardLogger())}
		if strings.TrimSpace(langFlag) != "" {
			lang, err := i18n.ParseLanguage(langFlag)
			if err != nil {
				return err
			}
			opts = append(opts, controller.WithLanguage(lang))
		}
		c, err := controller.New(sqldb, analyzer, opts...)
		if err != nil {
			return err
		}
		return run(sqldb, c)
	})
}

// displayLanguage returns the language for output.
func displayLanguage(stored model.Language) (model.Language, error) {
	if strings.TrimSpace(langFlag) == "" {
		return stored, nil
	}
	return i18n.ParseLanguage(langFlag)
}

func parseDateOrToday(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

func parseMonthOrCurrent(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q (expected YYYY-MM)", value)
	}
	return t, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

// ask prints question and reads one line of the command's input.
func ask(cmd *cobra.Command, question string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	line, err := ask(cmd, prompt+" [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func dayLabel(lang model.Language, day time.Time) string {
	today := time.Now()
	switch service.DateKey(day) {
	case service.DateKey(today):
		return i18n.T(lang, "today")
	case service.DateKey(today.AddDate(0, 0, -1)):
		return i18n.T(lang, "yesterday")
	case service.DateKey(today.AddDate(0, 0, 1)):
		return i18n.T(lang, "tomorrow")
	default:
		return service.DateKey(day)
	}
}

func foodNames(item model.AnalysisResult) string {
	names := make([]string, 0, len(item.FoodItems))
	for _, f := range item.FoodItems {
		names = append(names, f.Name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
