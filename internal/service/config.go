package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shivani123B/fitlog/internal/energy"
)

const (
	ConfigActiveUser          = "active_user"
	ConfigActivityLevel       = "activity_level"
	ConfigPlanSeed            = "plan_seed"
	ConfigSearchCacheTTLHours = "search_cache_ttl_hours"
	ConfigAutoFillDefault     = "autofill_default"
)

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	value = strings.TrimSpace(value)
	if err := validateConfigValue(key, value); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

func deleteConfig(db *sql.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete config %q: %w", key, err)
	}
	return nil
}

func validateConfigValue(key, value string) error {
	switch key {
	case ConfigActivityLevel:
		_, err := energy.ParseActivityLevel(value)
		return err
	case ConfigPlanSeed:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("plan_seed must be an integer")
		}
	case ConfigSearchCacheTTLHours:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("search_cache_ttl_hours must be an integer >= 0")
		}
	case ConfigAutoFillDefault:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("autofill_default must be true or false")
		}
	}
	return nil
}

// ConfiguredActivityLevel falls back to moderate when nothing is stored.
func ConfiguredActivityLevel(db *sql.DB) (energy.ActivityLevel, error) {
	value, ok, err := GetConfig(db, ConfigActivityLevel)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return energy.DefaultActivity, nil
	}
	return energy.ParseActivityLevel(value)
}

func ConfiguredSearchCacheTTL(db *sql.DB) (time.Duration, error) {
	value, ok, err := GetConfig(db, ConfigSearchCacheTTLHours)
	if err != nil {
		return 0, err
	}
	if !ok || value == "" {
		return defaultProviderSearchTTL, nil
	}
	hours, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", ConfigSearchCacheTTLHours, err)
	}
	return time.Duration(hours) * time.Hour, nil
}

func ConfiguredAutoFill(db *sql.DB) (bool, error) {
	value, ok, err := GetConfig(db, ConfigAutoFillDefault)
	if err != nil {
		return false, err
	}
	if !ok || value == "" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

// PlanSeed returns the stored suggestion seed, or 0 when none was saved.
func PlanSeed(db *sql.DB) (int, error) {
	value, ok, err := GetConfig(db, ConfigPlanSeed)
	if err != nil {
		return 0, err
	}
	if !ok || value == "" {
		return 0, nil
	}
	seed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", ConfigPlanSeed, err)
	}
	return seed, nil
}
