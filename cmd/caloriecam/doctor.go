package caloriecam

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range report.Slots {
				state := "missing"
				switch {
				case s.Present && s.Valid:
					state = fmt.Sprintf("ok (%d records)", s.Records)
				case s.Present:
					state = "invalid: " + s.Error
				}
				fmt.Fprintf(out, "%s: %s\n", s.Key, state)
			}
			fmt.Fprintf(out, "Entries without id: %d\n", report.EntriesWithoutID)
			fmt.Fprintf(out, "Duplicate body dates: %d\n", report.DuplicateBodyDates)
			if doctorFix {
				fmt.Fprintf(out, "Cleared slots: %d\n", report.ClearedSlots)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.InvalidSlots > 0 || report.EntriesWithoutID > 0 || report.DuplicateBodyDates > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Clear storage slots that cannot be decoded")
}
