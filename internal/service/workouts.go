package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/workout"
)

// WorkoutInput names a library activity or describes a custom one. MET, when
// set, overrides both the library value and the intensity estimate.
type WorkoutInput struct {
	Date        string
	Name        string
	Category    string
	Intensity   string
	MET         float64
	DurationMin int
}

// AddWorkout stores a workout with its burn computed from the profile's
// current weight. The burn is not recalculated if the weight changes later.
func AddWorkout(db *sql.DB, username string, in WorkoutInput) (model.WorkoutEntry, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return model.WorkoutEntry{}, err
	}
	e, err := buildWorkout(in)
	if err != nil {
		return model.WorkoutEntry{}, err
	}
	e.CaloriesBurned = workout.CaloriesBurned(e.MET, p.WeightKg, e.DurationMin)
	if err := insertWorkout(db, p.Username, e); err != nil {
		return model.WorkoutEntry{}, err
	}
	return e, nil
}

func buildWorkout(in WorkoutInput) (model.WorkoutEntry, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return model.WorkoutEntry{}, err
	}
	if in.DurationMin <= 0 {
		return model.WorkoutEntry{}, fmt.Errorf("duration must be > 0")
	}
	if in.MET < 0 {
		return model.WorkoutEntry{}, fmt.Errorf("met must be > 0")
	}
	e := model.WorkoutEntry{
		ID:          uuid.NewString(),
		Date:        date,
		DurationMin: in.DurationMin,
	}
	if a, ok := workout.Lookup(in.Name); ok {
		e.WorkoutName = a.Name
		e.Category = a.Category
		e.MET = a.MET
	} else {
		e.WorkoutName = strings.TrimSpace(in.Name)
		if e.WorkoutName == "" {
			e.WorkoutName = workout.DefaultCustomName
		}
		e.Category = workout.ParseCategory(in.Category)
		intensity, err := workout.ParseIntensity(in.Intensity)
		if err != nil {
			return model.WorkoutEntry{}, err
		}
		e.MET = workout.IntensityMET(e.Category, intensity)
	}
	if in.MET > 0 {
		e.MET = in.MET
	}
	return e, nil
}

func insertWorkout(db execer, username string, e model.WorkoutEntry) error {
	_, err := db.Exec(`
INSERT INTO workouts(id, username, date, workout_name, category, duration_min, met, calories_burned)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, username, e.Date, e.WorkoutName, string(workout.ParseCategory(string(e.Category))), e.DurationMin, e.MET, e.CaloriesBurned)
	if err != nil {
		return fmt.Errorf("add workout: %w", err)
	}
	return nil
}

// ListWorkouts groups the user's workouts by date in insertion order.
func ListWorkouts(db *sql.DB, username string) (model.WorkoutBook, error) {
	rows, err := db.Query(`
SELECT id, date, workout_name, category, duration_min, met, calories_burned
FROM workouts
WHERE username = ?
ORDER BY date ASC, created_at ASC, rowid ASC
`, normalizeName(username))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()
	book := model.WorkoutBook{}
	for rows.Next() {
		var e model.WorkoutEntry
		var category string
		if err := rows.Scan(&e.ID, &e.Date, &e.WorkoutName, &category, &e.DurationMin, &e.MET, &e.CaloriesBurned); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		e.Category = model.WorkoutCategory(category)
		book.Add(e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return book, nil
}

func DeleteWorkout(db *sql.DB, username, id string) error {
	id = strings.TrimSpace(id)
	res, err := db.Exec(`DELETE FROM workouts WHERE username = ? AND id = ?`, normalizeName(username), id)
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout %s not found", id)
	}
	return nil
}
