package service_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestDB(t)
	p := newTestProfile(t, src)

	ref := service.MealRef{Username: p.Username, Date: "2024-04-01", Slot: model.SlotLunch, AutoFill: true}
	if _, err := service.AddItem(src, ref, oats(50)); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := service.AddWorkout(src, p.Username, service.WorkoutInput{Date: "2024-04-01", Name: "Yoga", DurationMin: 30}); err != nil {
		t.Fatalf("add workout: %v", err)
	}

	snap, err := service.ExportSnapshot(src, p.Username, time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.Version != 1 || snap.User.Username != p.Username || len(snap.Logs) != 1 || len(snap.Workouts["2024-04-01"]) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	dst := newTestDB(t)
	report, err := service.ImportSnapshot(dst, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !report.Created || report.Logs != 1 || report.Workouts != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	l, err := service.GetLog(dst, p.Username, "2024-04-01")
	if err != nil {
		t.Fatalf("get imported log: %v", err)
	}
	if *l.Calories != 190 || len(l.Meals.Lunch.Items) != 1 || l.Meals.Lunch.Items[0].Computed.Calories != 190 {
		t.Fatalf("unexpected imported log: %+v", l)
	}
	book, err := service.ListWorkouts(dst, p.Username)
	if err != nil {
		t.Fatalf("list imported workouts: %v", err)
	}
	if book["2024-04-01"][0].ID != snap.Workouts["2024-04-01"][0].ID {
		t.Fatalf("expected workout ids to survive import")
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)
	if _, err := service.SaveLog(sqldb, p.Username, model.DailyLog{Date: "2024-01-01", Calories: ptr(1000)}, false); err != nil {
		t.Fatalf("save log: %v", err)
	}

	doc := `{
  "version": 1,
  "user": {"username": "` + p.Username + `"},
  "logs": [{"date": "2024-02-01", "calories": 2200, "meals": {"breakfast": {"items": ["toast"]}}}],
  "workouts": {"2024-02-01": [{"workoutName": "Swimming", "category": "other", "durationMin": 40, "met": 7, "caloriesBurned": 327}]}
}`
	report, err := service.ImportSnapshot(sqldb, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created {
		t.Fatalf("expected existing user to be updated")
	}
	logs, err := service.ListLogs(sqldb, p.Username)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Date != "2024-02-01" {
		t.Fatalf("expected logs replaced, got %+v", logs)
	}
	if logs[0].Meals.Breakfast.Items[0].Name != "toast" {
		t.Fatalf("expected legacy item normalized, got %+v", logs[0].Meals.Breakfast.Items)
	}
	book, err := service.ListWorkouts(sqldb, p.Username)
	if err != nil {
		t.Fatalf("list workouts: %v", err)
	}
	e := book["2024-02-01"][0]
	if e.ID == "" || e.Category != model.CategoryOther || e.CaloriesBurned != 327 {
		t.Fatalf("unexpected imported workout: %+v", e)
	}
	got, err := service.GetProfile(sqldb, p.Username)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.WeightKg != 70 {
		t.Fatalf("expected profile untouched without a profile block, got %+v", got)
	}
}

func TestImportRejectsInvalidWithoutWriting(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)
	if _, err := service.SaveLog(sqldb, p.Username, model.DailyLog{Date: "2024-01-01", Calories: ptr(1000)}, false); err != nil {
		t.Fatalf("save log: %v", err)
	}

	user := `{"username": "` + p.Username + `"}`
	docs := []string{
		`not json`,
		`{"logs": [], "workouts": {}}`,
		`{"user": ` + user + `, "logs": {}, "workouts": {}}`,
		`{"user": ` + user + `, "logs": [], "workouts": []}`,
		`{"user": ` + user + `, "logs": [{"date": "2024-13-01"}], "workouts": {}}`,
		`{"user": ` + user + `, "logs": [{"date": "2024-02-01"}, {"date": "2024-02-01"}], "workouts": {}}`,
		`{"user": ` + user + `, "logs": [{"date": "2024-02-01", "meals": {"lunch": {"items": [42]}}}], "workouts": {}}`,
		`{"user": ` + user + `, "logs": [], "workouts": {"2024-02-01": [{"workoutName": "Yoga", "durationMin": 0, "met": 3}]}}`,
		`{"user": {"username": "stranger"}, "logs": [], "workouts": {}}`,
	}
	for _, doc := range docs {
		if _, err := service.ImportSnapshot(sqldb, strings.NewReader(doc)); !errors.Is(err, service.ErrInvalidSnapshot) {
			t.Fatalf("expected invalid snapshot for %s, got %v", doc, err)
		}
	}
	logs, err := service.ListLogs(sqldb, p.Username)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Date != "2024-01-01" {
		t.Fatalf("expected existing data untouched, got %+v", logs)
	}
}
