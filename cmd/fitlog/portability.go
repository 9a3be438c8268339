package fitlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportOut string
	importIn  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile, logs and workouts as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, p model.Profile) error {
			snap, err := service.ExportSnapshot(sqldb, p.Username, time.Now())
			if err != nil {
				return err
			}
			if strings.TrimSpace(exportOut) == "" {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			b, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export json: %w", err)
			}
			if err := os.WriteFile(exportOut, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d log(s) for %s to %s\n", len(snap.Logs), snap.User.Username, exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace a user's profile, logs and workouts from an export file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportSnapshot(sqldb, f)
			if err != nil {
				return err
			}
			action := "Updated"
			if report.Created {
				action = "Created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: imported %d log(s) and %d workout(s)\n", action, report.Username, report.Logs, report.Workouts)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
}
