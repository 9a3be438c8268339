package service

import (
	"database/sql"
	"fmt"
)

type StreakKind string

const (
	StreakLog     StreakKind = "log"
	StreakWorkout StreakKind = "workout"
)

func BestStreak(db *sql.DB, username string, kind StreakKind) (int, error) {
	var best int
	err := db.QueryRow(`SELECT best FROM best_streaks WHERE username = ? AND kind = ?`, normalizeName(username), string(kind)).Scan(&best)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get best %s streak: %w", kind, err)
	}
	return best, nil
}

// RecordStreak raises the stored best to current when current is higher and
// returns the resulting best.
func RecordStreak(db *sql.DB, username string, kind StreakKind, current int) (int, error) {
	_, err := db.Exec(`
INSERT INTO best_streaks(username, kind, best, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(username, kind) DO UPDATE SET
  best=MAX(best_streaks.best, excluded.best),
  updated_at=excluded.updated_at
`, normalizeName(username), string(kind), current)
	if err != nil {
		return 0, fmt.Errorf("record %s streak: %w", kind, err)
	}
	return BestStreak(db, username, kind)
}
