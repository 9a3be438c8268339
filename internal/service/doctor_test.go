package service_test

import (
	"strings"
	"testing"

	"github.com/shivani123B/fitlog/internal/service"
)

func TestRunDoctorFixesLegacyItems(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	rows := map[string]string{
		"2023-11-01": `{"breakfast":{"items":["idli",{"query":"sambar","grams":150,"computed":{"calories":90}}]}}`,
		"2023-11-02": `{"lunch":{"items":[{"id":"x","mode":"manual","name":"Dal","grams":100,"manual":{"basis":"absolute","values":{"calories":120}},"computed":{"calories":120}}]}}`,
		"2023-11-03": `{"lunch":`,
	}
	for date, meals := range rows {
		if _, err := sqldb.Exec(`INSERT INTO daily_logs(username, date, meals_json) VALUES(?, ?, ?)`, p.Username, date, meals); err != nil {
			t.Fatalf("insert %s: %v", date, err)
		}
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("run doctor: %v", err)
	}
	if report.LogsScanned != 3 || report.LegacyItems != 2 || report.LegacyLogs != 1 || len(report.UnreadableLogs) != 1 || report.FixedLogs != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	report, err = service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if report.FixedLogs != 1 {
		t.Fatalf("expected 1 fixed log, got %+v", report)
	}

	report, err = service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("rerun doctor: %v", err)
	}
	if report.LegacyItems != 0 {
		t.Fatalf("expected no legacy items after fix, got %+v", report)
	}
	l, err := service.GetLog(sqldb, p.Username, "2023-11-01")
	if err != nil {
		t.Fatalf("get fixed log: %v", err)
	}
	if len(l.Meals.Breakfast.Items) != 2 || l.Meals.Breakfast.Items[1].Computed.Calories != 90 {
		t.Fatalf("unexpected fixed items: %+v", l.Meals.Breakfast.Items)
	}
}

func TestUnrecognizedItemsDoNotBlockReads(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	meals := `{"breakfast":{"items":[null,{"id":"b1","mode":"manual","name":"Poha","grams":150,"manual":{"basis":"absolute","values":{"calories":250}},"computed":{"calories":250}}]}}`
	if _, err := sqldb.Exec(`INSERT INTO daily_logs(username, date, meals_json) VALUES(?, ?, ?)`, p.Username, "2024-01-02", meals); err != nil {
		t.Fatalf("insert log: %v", err)
	}

	logs, err := service.ListLogs(sqldb, p.Username)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || len(logs[0].Meals.Breakfast.Items) != 1 || logs[0].Meals.Breakfast.Items[0].ID != "b1" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
	if _, err := service.EnergyReport(sqldb, p.Username, localDay("2024-01-02")); err != nil {
		t.Fatalf("energy report: %v", err)
	}

	report, err := service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if report.DroppedItems != 1 || report.DroppedLogs != 1 || report.FixedLogs != 1 || len(report.UnreadableLogs) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	report, err = service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("rerun doctor: %v", err)
	}
	if report.DroppedItems != 0 || report.LegacyItems != 0 {
		t.Fatalf("expected a clean store after fix, got %+v", report)
	}
	var stored string
	if err := sqldb.QueryRow(`SELECT meals_json FROM daily_logs WHERE username = ? AND date = ?`, p.Username, "2024-01-02").Scan(&stored); err != nil {
		t.Fatalf("read stored meals: %v", err)
	}
	if strings.Contains(stored, "[null") {
		t.Fatalf("unrecognized item still stored: %s", stored)
	}
}
