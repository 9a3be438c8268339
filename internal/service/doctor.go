package service

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shivani123B/fitlog/internal/nutrition"
)

type DoctorReport struct {
	LogsScanned    int      `json:"logsScanned"`
	LegacyItems    int      `json:"legacyItems"`
	LegacyLogs     int      `json:"legacyLogs"`
	DroppedItems   int      `json:"droppedItems"`
	DroppedLogs    int      `json:"droppedLogs"`
	UnreadableLogs []string `json:"unreadableLogs,omitempty"`
	FixedLogs      int      `json:"fixedLogs,omitempty"`
}

type storedMeals struct {
	username string
	date     string
	raw      string
}

// RunDoctor counts meal items stored in an older shape and items whose shape
// is not recognized at all. With fix, those logs are rewritten in the current
// shape in one transaction and unrecognized items are removed. Logs whose
// meals document cannot be parsed are only reported.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	rows, err := db.Query(`SELECT username, date, meals_json FROM daily_logs ORDER BY username ASC, date ASC`)
	if err != nil {
		return report, fmt.Errorf("doctor meals query: %w", err)
	}
	stale := make([]storedMeals, 0)
	for rows.Next() {
		var m storedMeals
		if err := rows.Scan(&m.username, &m.date, &m.raw); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor meals scan: %w", err)
		}
		report.LogsScanned++
		scan, err := nutrition.ScanMeals([]byte(m.raw))
		if err != nil {
			report.UnreadableLogs = append(report.UnreadableLogs, m.username+"/"+m.date)
			continue
		}
		if scan.Legacy > 0 {
			report.LegacyItems += scan.Legacy
			report.LegacyLogs++
		}
		if scan.Dropped > 0 {
			report.DroppedItems += scan.Dropped
			report.DroppedLogs++
		}
		if scan.Legacy > 0 || scan.Dropped > 0 {
			stale = append(stale, m)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("doctor meals iterate: %w", err)
	}
	_ = rows.Close()

	if !fix || len(stale) == 0 {
		return report, nil
	}
	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	for _, m := range stale {
		meals, err := nutrition.DecodeMeals([]byte(m.raw))
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix decode %s/%s: %w", m.username, m.date, err)
		}
		payload, err := json.Marshal(meals)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix encode %s/%s: %w", m.username, m.date, err)
		}
		if _, err := tx.Exec(`UPDATE daily_logs SET meals_json = ?, updated_at = CURRENT_TIMESTAMP WHERE username = ? AND date = ?`, string(payload), m.username, m.date); err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix log %s/%s: %w", m.username, m.date, err)
		}
		report.FixedLogs++
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}
