package service_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shivani123B/fitlog/internal/db"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
)

func TestBackupAndRestore(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)
	if _, err := service.SaveLog(sqldb, p.Username, model.DailyLog{Date: "2024-01-01", Calories: ptr(1750)}, false); err != nil {
		t.Fatalf("save log: %v", err)
	}

	dir := t.TempDir()
	out := service.DefaultBackupPath(filepath.Join(dir, "fitlog.db"), time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if filepath.Base(out) != "fitlog-20240102-030405.db" {
		t.Fatalf("unexpected backup name %s", out)
	}
	info, err := service.CreateBackup(sqldb, out)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info: %+v", info)
	}
	if _, err := service.CreateBackup(sqldb, out); err == nil {
		t.Fatalf("expected error when backup exists")
	}

	backups, err := service.ListBackups(filepath.Dir(out))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 1 || backups[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups: %+v", backups)
	}

	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(out, restored, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if err := service.RestoreBackup(out, restored, false); err == nil {
		t.Fatalf("expected error restoring over an existing db without force")
	}
	rdb, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer rdb.Close()
	l, err := service.GetLog(rdb, p.Username, "2024-01-01")
	if err != nil {
		t.Fatalf("get restored log: %v", err)
	}
	if *l.Calories != 1750 {
		t.Fatalf("unexpected restored calories %v", *l.Calories)
	}

	if err := os.WriteFile(out+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("corrupt checksum: %v", err)
	}
	if err := service.RestoreBackup(out, restored, true); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}
