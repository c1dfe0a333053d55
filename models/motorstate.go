package models

import (
	"time"

	"gorm.io/gorm"
)

type MotorMode string

const (
	ModeAutomatic MotorMode = "automatic"
	ModeManual    MotorMode = "manual"
)

type MotorActor string

const (
	ActorSystem MotorActor = "system"
	ActorUser   MotorActor = "user"
)

// MotorState is one row of the irrigation motor audit log. The log is
// append-only: every change is a new row and the current state is the
// most recent one. Rows are never updated in place.
type MotorState struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	On        bool       `json:"on"`
	Mode      MotorMode  `json:"mode"`
	Reason    string     `json:"reason"`
	ChangedBy MotorActor `json:"changed_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// LatestMotorState returns the current motor state, or
// gorm.ErrRecordNotFound when the log is empty.
func LatestMotorState(db *gorm.DB) (MotorState, error) {
	var state MotorState
	err := db.Order("created_at desc, id desc").First(&state).Error
	return state, err
}

// AppendMotorState writes a new audit row and returns it as stored.
func AppendMotorState(db *gorm.DB, state MotorState) (MotorState, error) {
	err := db.Create(&state).Error
	return state, err
}

// EnsureMotorState returns the current state, seeding the log with a
// default off/automatic row on first use.
func EnsureMotorState(db *gorm.DB) (MotorState, error) {
	state, err := LatestMotorState(db)
	if err == gorm.ErrRecordNotFound {
		return AppendMotorState(db, MotorState{
			On:        false,
			Mode:      ModeAutomatic,
			Reason:    "initial setup",
			ChangedBy: ActorSystem,
		})
	}
	return state, err
}
