package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored meals for old item shapes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logs scanned: %d\n", report.LogsScanned)
			fmt.Fprintf(cmd.OutOrStdout(), "Legacy items: %d in %d log(s)\n", report.LegacyItems, report.LegacyLogs)
			fmt.Fprintf(cmd.OutOrStdout(), "Unrecognized items: %d in %d log(s)\n", report.DroppedItems, report.DroppedLogs)
			for _, key := range report.UnreadableLogs {
				fmt.Fprintf(cmd.OutOrStdout(), "Unreadable meals: %s\n", key)
			}
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed logs: %d\n", report.FixedLogs)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.LegacyItems > 0 || report.DroppedItems > 0 || len(report.UnreadableLogs) > 0 {
				return fmt.Errorf("doctor found meal data issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rewrite legacy items in the current shape and drop unrecognized ones")
}
