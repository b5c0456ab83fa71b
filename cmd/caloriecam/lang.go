package caloriecam

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the interface and analysis language",
}

var langShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored language",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			lang, err := service.GetLanguage(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), lang)
			return nil
		})
	},
}

var langSetCmd = &cobra.Command{
	Use:   "set <ar|en>",
	Short: "Store the language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := i18n.ParseLanguage(args[0])
		if err != nil {
			return err
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			if err := c.SetLanguage(lang); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", lang)
			return nil
		})
	},
}

var langToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between Arabic and English",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			next, err := c.ToggleLanguage()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", next)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
	langCmd.AddCommand(langShowCmd, langSetCmd, langToggleCmd)
}
