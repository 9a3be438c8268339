package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profiles (
  username TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  age INTEGER NOT NULL CHECK(age > 0),
  gender TEXT NOT NULL,
  height_cm REAL NOT NULL DEFAULT 0 CHECK(height_cm >= 0),
  weight_kg REAL NOT NULL DEFAULT 0 CHECK(weight_kg >= 0),
  diet_category TEXT NOT NULL DEFAULT '',
  goal_weight_kg REAL CHECK(goal_weight_kg > 0),
  weekly_active_minutes_goal INTEGER NOT NULL DEFAULT 150 CHECK(weekly_active_minutes_goal >= 0),
  preferred_deficit INTEGER NOT NULL DEFAULT 500 CHECK(preferred_deficit >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS daily_logs (
  username TEXT NOT NULL,
  date TEXT NOT NULL,
  morning_weight_kg REAL CHECK(morning_weight_kg > 0),
  calories REAL CHECK(calories >= 0),
  protein_g REAL CHECK(protein_g >= 0),
  carbs_g REAL CHECK(carbs_g >= 0),
  fat_g REAL CHECK(fat_g >= 0),
  fiber_g REAL CHECK(fiber_g >= 0),
  steps INTEGER CHECK(steps >= 0),
  meals_json TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(username, date),
  FOREIGN KEY(username) REFERENCES profiles(username) ON DELETE CASCADE
);
`,
	},
	{
		version: 2,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 3,
		name:    "workouts",
		sql: `
CREATE TABLE IF NOT EXISTS workouts (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  date TEXT NOT NULL,
  workout_name TEXT NOT NULL,
  category TEXT NOT NULL CHECK(category IN ('Cardio', 'Strength', 'Other')),
  duration_min INTEGER NOT NULL CHECK(duration_min > 0),
  met REAL NOT NULL CHECK(met > 0),
  calories_burned INTEGER NOT NULL CHECK(calories_burned >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(username) REFERENCES profiles(username) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_workouts_username_date ON workouts(username, date);

CREATE TABLE IF NOT EXISTS best_streaks (
  username TEXT NOT NULL,
  kind TEXT NOT NULL CHECK(kind IN ('log', 'workout')),
  best INTEGER NOT NULL DEFAULT 0 CHECK(best >= 0),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(username, kind),
  FOREIGN KEY(username) REFERENCES profiles(username) ON DELETE CASCADE
);
`,
	},
	{
		version: 4,
		name:    "provider_search_cache",
		sql: `
CREATE TABLE IF NOT EXISTS provider_search_cache (
  mode TEXT NOT NULL,
  query_norm TEXT NOT NULL,
  results_json TEXT NOT NULL,
  fetched_at DATETIME NOT NULL,
  expires_at DATETIME NOT NULL,
  PRIMARY KEY(mode, query_norm)
);

CREATE INDEX IF NOT EXISTS idx_provider_search_cache_expires_at ON provider_search_cache(expires_at);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}
