package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/nutrition"
)

var ErrLogNotFound = errors.New("daily log not found")

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

const logColumns = `date, morning_weight_kg, calories, protein_g, carbs_g, fat_g, fiber_g, steps, meals_json, notes`

// SaveLog overwrites the log for l.Date. With autoFill the five macro fields
// are replaced by the meal totals.
func SaveLog(db *sql.DB, username string, l model.DailyLog, autoFill bool) (model.DailyLog, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return model.DailyLog{}, err
	}
	if err := prepareLog(&l, autoFill); err != nil {
		return model.DailyLog{}, err
	}
	if err := upsertLog(db, p.Username, l); err != nil {
		return model.DailyLog{}, err
	}
	return l, nil
}

func GetLog(db *sql.DB, username, date string) (model.DailyLog, error) {
	date, err := parseDate(date)
	if err != nil {
		return model.DailyLog{}, err
	}
	row := db.QueryRow(`SELECT `+logColumns+` FROM daily_logs WHERE username = ? AND date = ?`, normalizeName(username), date)
	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return model.DailyLog{}, fmt.Errorf("daily log for %s: %w", date, ErrLogNotFound)
	}
	if err != nil {
		return model.DailyLog{}, fmt.Errorf("get daily log %s: %w", date, err)
	}
	return l, nil
}

// ListLogs returns every log for the user, oldest first.
func ListLogs(db *sql.DB, username string) ([]model.DailyLog, error) {
	rows, err := db.Query(`SELECT `+logColumns+` FROM daily_logs WHERE username = ? ORDER BY date ASC`, normalizeName(username))
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()
	out := make([]model.DailyLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily logs: %w", err)
	}
	return out, nil
}

func DeleteLog(db *sql.DB, username, date string) error {
	date, err := parseDate(date)
	if err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM daily_logs WHERE username = ? AND date = ?`, normalizeName(username), date)
	if err != nil {
		return fmt.Errorf("delete daily log %s: %w", date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("daily log for %s: %w", date, ErrLogNotFound)
	}
	return nil
}

// ResetLogs deletes every log of the user and reports how many were removed.
func ResetLogs(db *sql.DB, username string) (int64, error) {
	res, err := db.Exec(`DELETE FROM daily_logs WHERE username = ?`, normalizeName(username))
	if err != nil {
		return 0, fmt.Errorf("reset daily logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return n, nil
}

func prepareLog(l *model.DailyLog, autoFill bool) error {
	date, err := parseDate(l.Date)
	if err != nil {
		return err
	}
	l.Date = date
	if l.MorningWeightKg != nil && *l.MorningWeightKg <= 0 {
		return fmt.Errorf("morning weight must be > 0")
	}
	if l.Steps != nil {
		if err := validateNonNegativeInt("steps", *l.Steps); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"calories", l.Calories},
		{"protein", l.ProteinG},
		{"carbs", l.CarbsG},
		{"fat", l.FatG},
		{"fiber", l.FiberG},
	} {
		if err := validateOptionalFloat(f.name, f.value); err != nil {
			return err
		}
	}
	ensureMealSlices(&l.Meals)
	if autoFill {
		nutrition.ApplyDayTotals(l)
	}
	return nil
}

func upsertLog(db execer, username string, l model.DailyLog) error {
	meals, err := json.Marshal(l.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals for %s: %w", l.Date, err)
	}
	_, err = db.Exec(`
INSERT INTO daily_logs(username, date, morning_weight_kg, calories, protein_g, carbs_g, fat_g, fiber_g, steps, meals_json, notes, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(username, date) DO UPDATE SET
  morning_weight_kg=excluded.morning_weight_kg,
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  fiber_g=excluded.fiber_g,
  steps=excluded.steps,
  meals_json=excluded.meals_json,
  notes=excluded.notes,
  updated_at=excluded.updated_at
`, username, l.Date, l.MorningWeightKg, l.Calories, l.ProteinG, l.CarbsG, l.FatG, l.FiberG, l.Steps, string(meals), l.Notes)
	if err != nil {
		return fmt.Errorf("save daily log %s: %w", l.Date, err)
	}
	return nil
}

func scanLog(row rowScanner) (model.DailyLog, error) {
	var l model.DailyLog
	var weight, cal, protein, carbs, fat, fiber sql.NullFloat64
	var steps sql.NullInt64
	var mealsRaw string
	if err := row.Scan(&l.Date, &weight, &cal, &protein, &carbs, &fat, &fiber, &steps, &mealsRaw, &l.Notes); err != nil {
		return model.DailyLog{}, err
	}
	l.MorningWeightKg = floatPtr(weight)
	l.Calories = floatPtr(cal)
	l.ProteinG = floatPtr(protein)
	l.CarbsG = floatPtr(carbs)
	l.FatG = floatPtr(fat)
	l.FiberG = floatPtr(fiber)
	if steps.Valid {
		v := int(steps.Int64)
		l.Steps = &v
	}
	meals, err := nutrition.DecodeMeals([]byte(mealsRaw))
	if err != nil {
		return model.DailyLog{}, fmt.Errorf("log %s: %w", l.Date, err)
	}
	l.Meals = meals
	return l, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func ensureMealSlices(m *model.Meals) {
	for _, slot := range model.MealSlots {
		meal := m.Slot(slot)
		if meal.Items == nil {
			meal.Items = []model.FoodItem{}
		}
	}
}
