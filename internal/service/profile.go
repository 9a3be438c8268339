package service

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
)

var ErrProfileNotFound = errors.New("profile not found")

const (
	defaultWeeklyActiveMinutes = 150
	defaultPreferredDeficit    = 500
	usernameSuffixLen          = 4
	maxUsernameAttempts        = 200
)

type ProfileInput struct {
	Name         string
	Age          int
	Gender       string
	HeightCm     float64
	Weight       float64
	WeightUnit   string
	DietCategory string
}

type GoalsInput struct {
	GoalWeight              *float64
	GoalWeightUnit          string
	ClearGoalWeight         bool
	WeeklyActiveMinutesGoal *int
	PreferredDeficit        *int
}

const profileColumns = `username, name, age, gender, height_cm, weight_kg, diet_category, goal_weight_kg, weekly_active_minutes_goal, preferred_deficit, created_at`

func CreateProfile(db *sql.DB, in ProfileInput) (model.Profile, error) {
	p, err := profileFromInput(in)
	if err != nil {
		return model.Profile{}, err
	}
	p.WeeklyActiveMinutesGoal = defaultWeeklyActiveMinutes
	p.PreferredDeficit = defaultPreferredDeficit
	p.CreatedAt = time.Now().UTC().Truncate(time.Second)

	for attempt := 0; ; attempt++ {
		p.Username, err = GenerateUsername(p.Name, p.Age)
		if err != nil {
			return model.Profile{}, err
		}
		exists, err := profileExists(db, p.Username)
		if err != nil {
			return model.Profile{}, err
		}
		if !exists {
			break
		}
		if attempt >= maxUsernameAttempts {
			return model.Profile{}, fmt.Errorf("could not generate a unique username for %q", p.Name)
		}
	}
	if err := insertProfile(db, p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// GenerateUsername builds a handle from the first three alphanumerics of the
// name, the last two digits of the age and four random base36 characters.
func GenerateUsername(name string, age int) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	prefix := b.String() + strings.Repeat("x", 3-b.Len())

	agePart := fmt.Sprintf("%02d", age%100)

	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, usernameSuffixLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("generate username suffix: %w", err)
		}
		suffix[i] = alphabet[n.Int64()]
	}
	return prefix + agePart + string(suffix), nil
}

func GetProfile(db *sql.DB, username string) (model.Profile, error) {
	row := db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE username = ?`, normalizeName(username))
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return model.Profile{}, fmt.Errorf("profile %q: %w", username, ErrProfileNotFound)
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile %q: %w", username, err)
	}
	return p, nil
}

func ListProfiles(db *sql.DB) ([]model.Profile, error) {
	rows, err := db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC, username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	out := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}

func UpdateProfile(db *sql.DB, username string, in ProfileInput) (model.Profile, error) {
	current, err := GetProfile(db, username)
	if err != nil {
		return model.Profile{}, err
	}
	p, err := profileFromInput(in)
	if err != nil {
		return model.Profile{}, err
	}
	p.Username = current.Username
	p.GoalWeightKg = current.GoalWeightKg
	p.WeeklyActiveMinutesGoal = current.WeeklyActiveMinutesGoal
	p.PreferredDeficit = current.PreferredDeficit
	p.CreatedAt = current.CreatedAt
	if _, err := db.Exec(`
UPDATE profiles
SET name = ?, age = ?, gender = ?, height_cm = ?, weight_kg = ?, diet_category = ?, updated_at = CURRENT_TIMESTAMP
WHERE username = ?
`, p.Name, p.Age, string(p.Gender), p.HeightCm, p.WeightKg, string(p.DietCategory), p.Username); err != nil {
		return model.Profile{}, fmt.Errorf("update profile %q: %w", p.Username, err)
	}
	return p, nil
}

// UpdateGoals applies only the fields that are set. Zero or missing weekly
// minutes and deficit values reset to the defaults.
func UpdateGoals(db *sql.DB, username string, in GoalsInput) (model.Profile, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return model.Profile{}, err
	}
	if in.ClearGoalWeight {
		p.GoalWeightKg = nil
	} else if in.GoalWeight != nil {
		kg, err := convertWeightToKg(*in.GoalWeight, in.GoalWeightUnit)
		if err != nil {
			return model.Profile{}, fmt.Errorf("goal %w", err)
		}
		p.GoalWeightKg = &kg
	}
	if in.WeeklyActiveMinutesGoal != nil {
		if err := validateNonNegativeInt("weekly minutes goal", *in.WeeklyActiveMinutesGoal); err != nil {
			return model.Profile{}, err
		}
		p.WeeklyActiveMinutesGoal = *in.WeeklyActiveMinutesGoal
		if p.WeeklyActiveMinutesGoal == 0 {
			p.WeeklyActiveMinutesGoal = defaultWeeklyActiveMinutes
		}
	}
	if in.PreferredDeficit != nil {
		if err := validateNonNegativeInt("preferred deficit", *in.PreferredDeficit); err != nil {
			return model.Profile{}, err
		}
		p.PreferredDeficit = *in.PreferredDeficit
		if p.PreferredDeficit == 0 {
			p.PreferredDeficit = defaultPreferredDeficit
		}
	}
	if _, err := db.Exec(`
UPDATE profiles
SET goal_weight_kg = ?, weekly_active_minutes_goal = ?, preferred_deficit = ?, updated_at = CURRENT_TIMESTAMP
WHERE username = ?
`, p.GoalWeightKg, p.WeeklyActiveMinutesGoal, p.PreferredDeficit, p.Username); err != nil {
		return model.Profile{}, fmt.Errorf("update goals for %q: %w", p.Username, err)
	}
	return p, nil
}

// DeleteProfile removes the profile with its logs, workouts and streaks, and
// clears the active user when it pointed at this profile.
func DeleteProfile(db *sql.DB, username string) error {
	username = normalizeName(username)
	res, err := db.Exec(`DELETE FROM profiles WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", username, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %q: %w", username, ErrProfileNotFound)
	}
	active, ok, err := GetConfig(db, ConfigActiveUser)
	if err != nil {
		return err
	}
	if ok && active == username {
		return deleteConfig(db, ConfigActiveUser)
	}
	return nil
}

func SetActiveUser(db *sql.DB, username string) error {
	p, err := GetProfile(db, username)
	if err != nil {
		return err
	}
	return SetConfig(db, ConfigActiveUser, p.Username)
}

// ResolveUser picks the explicit username when given, else the active user.
func ResolveUser(db *sql.DB, explicit string) (model.Profile, error) {
	username := normalizeName(explicit)
	if username == "" {
		active, ok, err := GetConfig(db, ConfigActiveUser)
		if err != nil {
			return model.Profile{}, err
		}
		if !ok || active == "" {
			return model.Profile{}, fmt.Errorf("no active profile; run `fitlog profile create` or pass --user")
		}
		username = active
	}
	return GetProfile(db, username)
}

func profileFromInput(in ProfileInput) (model.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Profile{}, fmt.Errorf("name is required")
	}
	if in.Age < 1 || in.Age > 120 {
		return model.Profile{}, fmt.Errorf("age must be between 1 and 120")
	}
	gender, err := parseGender(in.Gender)
	if err != nil {
		return model.Profile{}, err
	}
	diet, err := parseDietCategory(in.DietCategory)
	if err != nil {
		return model.Profile{}, err
	}
	if err := validateNonNegativeFloat("height", in.HeightCm); err != nil {
		return model.Profile{}, err
	}
	p := model.Profile{
		Name:         name,
		Age:          in.Age,
		Gender:       gender,
		HeightCm:     in.HeightCm,
		DietCategory: diet,
	}
	if in.Weight != 0 {
		kg, err := convertWeightToKg(in.Weight, in.WeightUnit)
		if err != nil {
			return model.Profile{}, err
		}
		p.WeightKg = kg
	}
	return p, nil
}

func parseGender(value string) (model.Gender, error) {
	switch model.Gender(normalizeName(value)) {
	case model.GenderFemale:
		return model.GenderFemale, nil
	case model.GenderMale:
		return model.GenderMale, nil
	case model.GenderOther:
		return model.GenderOther, nil
	case "", model.GenderPreferNotToSay:
		return model.GenderPreferNotToSay, nil
	default:
		return "", fmt.Errorf("invalid gender %q (use female, male, other or prefer-not-to-say)", value)
	}
}

func parseDietCategory(value string) (model.DietCategory, error) {
	v := normalizeName(value)
	for _, d := range []model.DietCategory{
		model.DietVegan, model.DietVegetarian, model.DietEggetarian, model.DietNonVegetarian, model.DietPreferNotToSay,
	} {
		if v == strings.ToLower(string(d)) {
			return d, nil
		}
	}
	switch v {
	case "":
		return model.DietUnset, nil
	case "non-veg", "nonveg", "non-vegetarian":
		return model.DietNonVegetarian, nil
	case "veg":
		return model.DietVegetarian, nil
	case "egg":
		return model.DietEggetarian, nil
	}
	return "", fmt.Errorf("invalid diet %q (use vegan, vegetarian, eggetarian, non-vegetarian or prefer not to say)", value)
}

func profileExists(db *sql.DB, username string) (bool, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM profiles WHERE username = ?`, username).Scan(&n); err != nil {
		return false, fmt.Errorf("check profile %q: %w", username, err)
	}
	return n > 0, nil
}

func insertProfile(db execer, p model.Profile) error {
	_, err := db.Exec(`
INSERT INTO profiles(username, name, age, gender, height_cm, weight_kg, diet_category, goal_weight_kg, weekly_active_minutes_goal, preferred_deficit, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.Username, p.Name, p.Age, string(p.Gender), p.HeightCm, p.WeightKg, string(p.DietCategory), p.GoalWeightKg,
		p.WeeklyActiveMinutesGoal, p.PreferredDeficit, p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert profile %q: %w", p.Username, err)
	}
	return nil
}

func scanProfile(row rowScanner) (model.Profile, error) {
	var p model.Profile
	var gender, diet, createdRaw string
	var goal sql.NullFloat64
	if err := row.Scan(&p.Username, &p.Name, &p.Age, &gender, &p.HeightCm, &p.WeightKg, &diet, &goal,
		&p.WeeklyActiveMinutesGoal, &p.PreferredDeficit, &createdRaw); err != nil {
		return model.Profile{}, err
	}
	p.Gender = model.Gender(gender)
	p.DietCategory = model.DietCategory(diet)
	if goal.Valid {
		v := goal.Float64
		p.GoalWeightKg = &v
	}
	p.CreatedAt = parseStoredTime(createdRaw)
	return p, nil
}

// parseStoredTime accepts RFC3339 and SQLite CURRENT_TIMESTAMP values.
func parseStoredTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
