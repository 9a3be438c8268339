package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shivani123B/fitlog/internal/db"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitlog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

// newTestProfile creates a 25 year old 70 kg, 175 cm male profile.
func newTestProfile(t *testing.T, sqldb *sql.DB) model.Profile {
	t.Helper()
	p, err := service.CreateProfile(sqldb, service.ProfileInput{
		Name:     "Ravi Kumar",
		Age:      25,
		Gender:   "male",
		HeightCm: 175,
		Weight:   70,
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return p
}

func ptr(v float64) *float64 { return &v }
