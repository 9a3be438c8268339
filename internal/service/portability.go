package service

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/nutrition"
	"github.com/shivani123B/fitlog/internal/workout"
)

const SnapshotVersion = 1

var ErrInvalidSnapshot = errors.New("invalid fitlog export")

type SnapshotUser struct {
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Profile  *model.Profile `json:"profile"`
}

type Snapshot struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	User       SnapshotUser      `json:"user"`
	Logs       []model.DailyLog  `json:"logs"`
	Workouts   model.WorkoutBook `json:"workouts"`
}

type ImportReport struct {
	Username string `json:"username"`
	Logs     int    `json:"logs"`
	Workouts int    `json:"workouts"`
	Created  bool   `json:"created"`
}

func ExportSnapshot(db *sql.DB, username string, now time.Time) (Snapshot, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return Snapshot{}, err
	}
	logs, err := ListLogs(db, p.Username)
	if err != nil {
		return Snapshot{}, err
	}
	book, err := ListWorkouts(db, p.Username)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now.UTC().Truncate(time.Second),
		User:       SnapshotUser{Username: p.Username, Name: p.Name, Profile: &p},
		Logs:       logs,
		Workouts:   book,
	}, nil
}

// importLog mirrors model.DailyLog but keeps meals raw so that older item
// shapes go through normalization.
type importLog struct {
	Date            string          `json:"date"`
	MorningWeightKg *float64        `json:"morningWeightKg"`
	Calories        *float64        `json:"calories"`
	ProteinG        *float64        `json:"proteinG"`
	CarbsG          *float64        `json:"carbsG"`
	FatG            *float64        `json:"fatG"`
	FiberG          *float64        `json:"fiberG"`
	Steps           *int            `json:"steps"`
	Meals           json.RawMessage `json:"meals"`
	Notes           string          `json:"notes"`
}

type importDoc struct {
	Version  int             `json:"version"`
	User     *SnapshotUser   `json:"user"`
	Logs     json.RawMessage `json:"logs"`
	Workouts json.RawMessage `json:"workouts"`
}

type parsedSnapshot struct {
	username string
	profile  *model.Profile
	logs     []model.DailyLog
	workouts []model.WorkoutEntry
}

// ImportSnapshot validates the whole document before writing anything, then
// replaces the user's profile, logs and workouts in one transaction.
func ImportSnapshot(db *sql.DB, r io.Reader) (ImportReport, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read import file: %w", err)
	}
	parsed, err := parseSnapshot(raw)
	if err != nil {
		return ImportReport{}, err
	}

	exists, err := profileExists(db, parsed.username)
	if err != nil {
		return ImportReport{}, err
	}
	if !exists && parsed.profile == nil {
		return ImportReport{}, fmt.Errorf("%w: profile for %q is missing and no such user exists", ErrInvalidSnapshot, parsed.username)
	}

	tx, err := db.Begin()
	if err != nil {
		return ImportReport{}, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if parsed.profile != nil {
		if err := upsertProfile(tx, *parsed.profile); err != nil {
			return ImportReport{}, err
		}
	}
	if _, err := tx.Exec(`DELETE FROM daily_logs WHERE username = ?`, parsed.username); err != nil {
		return ImportReport{}, fmt.Errorf("clear daily logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM workouts WHERE username = ?`, parsed.username); err != nil {
		return ImportReport{}, fmt.Errorf("clear workouts: %w", err)
	}
	for _, l := range parsed.logs {
		if err := upsertLog(tx, parsed.username, l); err != nil {
			return ImportReport{}, err
		}
	}
	for _, e := range parsed.workouts {
		if err := insertWorkout(tx, parsed.username, e); err != nil {
			return ImportReport{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return ImportReport{}, fmt.Errorf("commit import: %w", err)
	}
	return ImportReport{
		Username: parsed.username,
		Logs:     len(parsed.logs),
		Workouts: len(parsed.workouts),
		Created:  !exists,
	}, nil
}

func parseSnapshot(raw []byte) (parsedSnapshot, error) {
	var doc importDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return parsedSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if doc.User == nil || strings.TrimSpace(doc.User.Username) == "" {
		return parsedSnapshot{}, fmt.Errorf("%w: user is required", ErrInvalidSnapshot)
	}
	if doc.Version > SnapshotVersion {
		return parsedSnapshot{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, doc.Version)
	}
	logsRaw := bytes.TrimSpace(doc.Logs)
	if len(logsRaw) == 0 || logsRaw[0] != '[' {
		return parsedSnapshot{}, fmt.Errorf("%w: logs must be a list", ErrInvalidSnapshot)
	}
	workoutsRaw := bytes.TrimSpace(doc.Workouts)
	if len(workoutsRaw) == 0 || workoutsRaw[0] != '{' {
		return parsedSnapshot{}, fmt.Errorf("%w: workouts must be an object keyed by date", ErrInvalidSnapshot)
	}

	out := parsedSnapshot{username: normalizeName(doc.User.Username)}
	if doc.User.Profile != nil {
		p := *doc.User.Profile
		p.Username = out.username
		if err := validateImportedProfile(&p); err != nil {
			return parsedSnapshot{}, err
		}
		out.profile = &p
	}

	var logs []importLog
	if err := json.Unmarshal(logsRaw, &logs); err != nil {
		return parsedSnapshot{}, fmt.Errorf("%w: logs: %v", ErrInvalidSnapshot, err)
	}
	seen := map[string]bool{}
	for i, il := range logs {
		meals, err := nutrition.DecodeMealsStrict(il.Meals)
		if err != nil {
			return parsedSnapshot{}, fmt.Errorf("%w: log %d: %v", ErrInvalidSnapshot, i+1, err)
		}
		l := model.DailyLog{
			Date:            il.Date,
			MorningWeightKg: il.MorningWeightKg,
			Calories:        il.Calories,
			ProteinG:        il.ProteinG,
			CarbsG:          il.CarbsG,
			FatG:            il.FatG,
			FiberG:          il.FiberG,
			Steps:           il.Steps,
			Meals:           meals,
			Notes:           il.Notes,
		}
		if err := prepareLog(&l, false); err != nil {
			return parsedSnapshot{}, fmt.Errorf("%w: log %d: %v", ErrInvalidSnapshot, i+1, err)
		}
		if seen[l.Date] {
			return parsedSnapshot{}, fmt.Errorf("%w: duplicate log for %s", ErrInvalidSnapshot, l.Date)
		}
		seen[l.Date] = true
		out.logs = append(out.logs, l)
	}

	var book map[string][]model.WorkoutEntry
	if err := json.Unmarshal(workoutsRaw, &book); err != nil {
		return parsedSnapshot{}, fmt.Errorf("%w: workouts: %v", ErrInvalidSnapshot, err)
	}
	for date, entries := range book {
		day, err := parseDate(date)
		if err != nil {
			return parsedSnapshot{}, fmt.Errorf("%w: workouts: %v", ErrInvalidSnapshot, err)
		}
		for _, e := range entries {
			e.Date = day
			if e.ID == "" {
				e.ID = uuid.NewString()
			}
			if strings.TrimSpace(e.WorkoutName) == "" {
				e.WorkoutName = workout.DefaultCustomName
			}
			e.Category = workout.ParseCategory(string(e.Category))
			if e.DurationMin <= 0 || !(e.MET > 0) || e.CaloriesBurned < 0 {
				return parsedSnapshot{}, fmt.Errorf("%w: workout %q on %s has invalid duration, MET or burn", ErrInvalidSnapshot, e.WorkoutName, day)
			}
			out.workouts = append(out.workouts, e)
		}
	}
	return out, nil
}

func validateImportedProfile(p *model.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidSnapshot)
	}
	if p.Age < 1 || p.Age > 120 {
		return fmt.Errorf("%w: profile age must be between 1 and 120", ErrInvalidSnapshot)
	}
	if p.HeightCm < 0 || p.WeightKg < 0 {
		return fmt.Errorf("%w: profile height and weight must be >= 0", ErrInvalidSnapshot)
	}
	if p.GoalWeightKg != nil && !(*p.GoalWeightKg > 0) {
		p.GoalWeightKg = nil
	}
	if p.Gender == "" {
		p.Gender = model.GenderPreferNotToSay
	}
	if p.WeeklyActiveMinutesGoal <= 0 {
		p.WeeklyActiveMinutesGoal = defaultWeeklyActiveMinutes
	}
	if p.PreferredDeficit <= 0 {
		p.PreferredDeficit = defaultPreferredDeficit
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	return nil
}

func upsertProfile(db execer, p model.Profile) error {
	_, err := db.Exec(`
INSERT INTO profiles(username, name, age, gender, height_cm, weight_kg, diet_category, goal_weight_kg, weekly_active_minutes_goal, preferred_deficit, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
  name=excluded.name,
  age=excluded.age,
  gender=excluded.gender,
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  diet_category=excluded.diet_category,
  goal_weight_kg=excluded.goal_weight_kg,
  weekly_active_minutes_goal=excluded.weekly_active_minutes_goal,
  preferred_deficit=excluded.preferred_deficit,
  updated_at=CURRENT_TIMESTAMP
`, p.Username, p.Name, p.Age, string(p.Gender), p.HeightCm, p.WeightKg, string(p.DietCategory), p.GoalWeightKg,
		p.WeeklyActiveMinutesGoal, p.PreferredDeficit, p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Username, err)
	}
	return nil
}
