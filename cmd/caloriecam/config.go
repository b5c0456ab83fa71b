package caloriecam

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage caloriecam local configuration",
}

var (
	cfgGeminiModel   string
	cfgGeminiBaseURL string
	cfgS3Bucket      string
	cfgS3Prefix      string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			for _, f := range []struct {
				flag, key string
				value     *string
			}{
				{"gemini-model", service.ConfigGeminiModel, &cfgGeminiModel},
				{"gemini-base-url", service.ConfigGeminiBaseURL, &cfgGeminiBaseURL},
				{"s3-bucket", service.ConfigS3Bucket, &cfgS3Bucket},
				{"s3-prefix", service.ConfigS3Prefix, &cfgS3Prefix},
			} {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				if err := service.SetConfig(sqldb, f.key, *f.value); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgGeminiModel, "gemini-model", "", "Gemini model name")
	configSetCmd.Flags().StringVar(&cfgGeminiBaseURL, "gemini-base-url", "", "Gemini API base URL")
	configSetCmd.Flags().StringVar(&cfgS3Bucket, "s3-bucket", "", "S3 bucket for remote backups")
	configSetCmd.Flags().StringVar(&cfgS3Prefix, "s3-prefix", "", "Key prefix for remote backups")
}
