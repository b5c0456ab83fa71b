package caloriecam

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/saadjs/caloriecam/internal/app"
	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	verbose  bool
	langFlag string
)

var rootCmd = &cobra.Command{
	Use:   "caloriecam",
	Short: "caloriecam logs meals from photos or descriptions and tracks your body metrics",
	Long:  "caloriecam is a local-first diet tracker: it asks Gemini to estimate the nutrition of a meal photo or description, then keeps your meals, weight, and measurements in a local database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(cmd)
		if err := app.LoadEnv(); err != nil {
			logrus.WithError(err).Warn("ignoring unreadable .env file")
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, controller.ErrNoProfile) && !strings.Contains(err.Error(), "profile set") {
			err = fmt.Errorf("%w: run `caloriecam profile set`", err)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(cmd *cobra.Command) {
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Display language for this run (ar or en)")
}
