package fitlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shivani123B/fitlog/internal/app"
	"github.com/shivani123B/fitlog/internal/db"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
	"github.com/spf13/cobra"
)

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

// withUser resolves --user or the active profile before running.
func withUser(run func(*sql.DB, model.Profile) error) error {
	return withDB(func(sqldb *sql.DB) error {
		p, err := service.ResolveUser(sqldb, userName)
		if err != nil {
			return err
		}
		return run(sqldb, p)
	})
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// parseDayOrToday returns local midnight of date, or of today when date is
// empty.
func parseDayOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

func dateOrToday(date string) (string, error) {
	t, err := parseDayOrToday(date)
	if err != nil {
		return "", err
	}
	return t.Format(model.DateLayout), nil
}

func parseSlot(value string) (model.MealSlot, error) {
	slot := model.MealSlot(strings.ToLower(strings.TrimSpace(value)))
	for _, s := range model.MealSlots {
		if s == slot {
			return slot, nil
		}
	}
	return "", fmt.Errorf("invalid --slot %q (use breakfast, lunch, dinner or snacks)", value)
}

// changedFloat returns a pointer to v only when the flag was set.
func changedFloat(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func formatOptional(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%s", *v, unit)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
