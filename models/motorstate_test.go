package models

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&MotorState{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLatestMotorStateEmptyLog(t *testing.T) {
	db := setupTestDB(t)
	_, err := LatestMotorState(db)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestEnsureMotorStateSeedsDefault(t *testing.T) {
	db := setupTestDB(t)

	state, err := EnsureMotorState(db)
	if err != nil {
		t.Fatalf("EnsureMotorState: %v", err)
	}
	if state.On {
		t.Error("seeded state should be off")
	}
	if state.Mode != ModeAutomatic {
		t.Errorf("seeded mode = %s, want automatic", state.Mode)
	}
	if state.Reason != "initial setup" {
		t.Errorf("seeded reason = %q, want %q", state.Reason, "initial setup")
	}
	if state.ChangedBy != ActorSystem {
		t.Errorf("seeded actor = %s, want system", state.ChangedBy)
	}

	// A second call reads the seed back instead of appending another row.
	again, err := EnsureMotorState(db)
	if err != nil {
		t.Fatalf("EnsureMotorState: %v", err)
	}
	if again.ID != state.ID {
		t.Errorf("second Ensure appended a new row: id %d vs %d", again.ID, state.ID)
	}
	var count int64
	db.Model(&MotorState{}).Count(&count)
	if count != 1 {
		t.Errorf("audit log has %d rows, want 1", count)
	}
}

func TestAppendMotorStateIsAppendOnly(t *testing.T) {
	db := setupTestDB(t)

	states := []MotorState{
		{On: false, Mode: ModeAutomatic, Reason: "initial setup", ChangedBy: ActorSystem},
		{On: true, Mode: ModeAutomatic, Reason: "low soil moisture at 25.0%, starting irrigation", ChangedBy: ActorSystem},
		{On: true, Mode: ModeManual, Reason: "control mode switched to manual", ChangedBy: ActorUser},
		{On: false, Mode: ModeManual, Reason: "motor turned off by user", ChangedBy: ActorUser},
	}
	for _, s := range states {
		if _, err := AppendMotorState(db, s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	var count int64
	db.Model(&MotorState{}).Count(&count)
	if count != int64(len(states)) {
		t.Errorf("audit log has %d rows, want %d", count, len(states))
	}

	latest, err := LatestMotorState(db)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.On || latest.Mode != ModeManual || latest.ChangedBy != ActorUser {
		t.Errorf("latest = %+v, want the last appended row", latest)
	}
}
