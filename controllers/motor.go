package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartfarm/config"
	"smartfarm/models"
	"smartfarm/utils"
)

// RunAutomaticControl evaluates the irrigation policy against a fresh
// reading and appends a motor state change when the decision differs
// from the current state. A no-op decision writes nothing: re-running
// with the same reading and state leaves the audit log untouched.
// Manual mode skips the policy entirely.
func RunAutomaticControl(reading models.SensorReading) error {
	current, err := models.EnsureMotorState(config.DB)
	if err != nil {
		return err
	}
	if current.Mode != models.ModeAutomatic {
		return nil
	}

	decision, err := utils.EvaluateIrrigation(reading, current.On)
	if err != nil {
		// Bad reading: leave the motor exactly as it is.
		return err
	}

	if decision.Activate == current.On {
		return nil
	}

	state, err := models.AppendMotorState(config.DB, models.MotorState{
		On:        decision.Activate,
		Mode:      models.ModeAutomatic,
		Reason:    decision.Reason,
		ChangedBy: models.ActorSystem,
	})
	if err != nil {
		return err
	}

	// The physical motor command is out of scope for the backend; the
	// controller hardware follows the audit log over MQTT/WebSocket.
	slog.Info("motor state changed", "on", state.On, "reason", state.Reason, "by", state.ChangedBy)
	BroadcastMotorState(state)

	if decision.Activate {
		Alerter.Send(config.DB, "irrigation",
			fmt.Sprintf("Smartfarm: irrigation started automatically. %s", decision.Reason))
	}
	return nil
}

// GetMotorState returns the current motor state, seeding the audit log
// with a default off/automatic record on first use.
func GetMotorState(c *gin.Context) {
	state, err := models.EnsureMotorState(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read motor state"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetMotorHistory returns the motor audit log, newest first.
func GetMotorHistory(c *gin.Context) {
	var records []models.MotorState
	if err := config.DB.Order("created_at desc, id desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch motor history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// SetMotorMode switches between automatic and manual control.
func SetMotorMode(c *gin.Context) {
	var req struct {
		Mode models.MotorMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Mode != models.ModeAutomatic && req.Mode != models.ModeManual {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be automatic or manual"})
		return
	}

	current, err := models.EnsureMotorState(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read motor state"})
		return
	}
	if current.Mode == req.Mode {
		c.JSON(http.StatusOK, current)
		return
	}

	state, err := models.AppendMotorState(config.DB, models.MotorState{
		On:        current.On,
		Mode:      req.Mode,
		Reason:    fmt.Sprintf("control mode switched to %s", req.Mode),
		ChangedBy: models.ActorUser,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update motor state"})
		return
	}

	BroadcastMotorState(state)
	c.JSON(http.StatusOK, state)
}

// ToggleMotor turns the motor on or off by direct user command. Only
// allowed in manual mode; in automatic mode the policy owns the motor.
func ToggleMotor(c *gin.Context) {
	var req struct {
		On *bool `json:"on" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	current, err := models.EnsureMotorState(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read motor state"})
		return
	}
	if current.Mode != models.ModeManual {
		c.JSON(http.StatusConflict, gin.H{"error": "Motor is under automatic control; switch to manual mode first"})
		return
	}
	if *req.On == current.On {
		// Nothing to change; don't pollute the audit log.
		c.JSON(http.StatusOK, current)
		return
	}

	action := "off"
	if *req.On {
		action = "on"
	}
	state, err := models.AppendMotorState(config.DB, models.MotorState{
		On:        *req.On,
		Mode:      models.ModeManual,
		Reason:    fmt.Sprintf("motor turned %s by user", action),
		ChangedBy: models.ActorUser,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update motor state"})
		return
	}

	slog.Info("motor state changed", "on", state.On, "reason", state.Reason, "by", state.ChangedBy)
	BroadcastMotorState(state)
	c.JSON(http.StatusOK, state)
}
