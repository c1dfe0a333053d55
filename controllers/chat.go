package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartfarm/config"
	"smartfarm/models"
	"smartfarm/utils"
)

// HandleChat answers one assistant message. The reply comes from the
// external text-generation service when reachable, otherwise from the
// local fallback generator built on the latest farm snapshot.
func HandleChat(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	if err := config.DB.Create(&models.ChatMessage{
		SessionID: req.SessionID,
		UserID:    userID,
		Role:      "user",
		Content:   req.Message,
	}).Error; err != nil {
		slog.Warn("failed to persist chat message", "err", err)
	}

	ctx := buildChatContext()

	reply, err := utils.GenerateChatReply(req.Message, ctx)
	fallback := false
	if err != nil {
		slog.Warn("chat service unavailable, using fallback", "err", err)
		reply = utils.FallbackReply(req.Message, ctx)
		fallback = true
	}

	if err := config.DB.Create(&models.ChatMessage{
		SessionID: req.SessionID,
		UserID:    userID,
		Role:      "assistant",
		Content:   reply,
		Fallback:  fallback,
	}).Error; err != nil {
		slog.Warn("failed to persist chat message", "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"reply":      reply,
		"fallback":   fallback,
	})
}

// GetChatHistory returns the caller's messages for one chat session in
// order. Scoped by user so a session ID alone is not enough to read
// someone else's transcript.
func GetChatHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	var messages []models.ChatMessage
	if err := config.DB.Where("session_id = ? AND user_id = ?", sessionID, currentUserID(c)).
		Order("created_at asc, id asc").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func buildChatContext() utils.ChatContext {
	var ctx utils.ChatContext

	if reading, err := models.LatestReading(config.DB); err == nil {
		ctx.Reading = &reading
		if recs := utils.RankCrops(reading, config.Crops); len(recs) > 0 {
			ctx.Recommendation = &recs[0]
		}
	}
	if motor, err := models.LatestMotorState(config.DB); err == nil {
		ctx.Motor = &motor
	}
	return ctx
}

func currentUserID(c *gin.Context) uint {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	default:
		return 0
	}
}
