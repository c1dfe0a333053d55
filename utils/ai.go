package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"smartfarm/models"
)

var chatHTTPClient = &http.Client{Timeout: 15 * time.Second}

// ChatContext is the farm snapshot handed to the assistant alongside
// the user's message.
type ChatContext struct {
	Reading        *models.SensorReading      `json:"reading,omitempty"`
	Motor          *models.MotorState         `json:"motor,omitempty"`
	Recommendation *models.CropRecommendation `json:"top_recommendation,omitempty"`
}

// GenerateChatReply calls the external text-generation service with the
// user message and the current farm snapshot.
func GenerateChatReply(message string, ctx ChatContext) (string, error) {
	apiURL := os.Getenv("AI_URL")
	if apiURL == "" {
		return "", errors.New("AI_URL not configured")
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"message": message,
		"context": ctx,
	})
	if err != nil {
		return "", err
	}

	resp, err := chatHTTPClient.Post(apiURL, "application/json", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var response struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if response.Reply == "" {
		return "", errors.New("chat service returned an empty reply")
	}
	return response.Reply, nil
}

// FallbackReply produces canned advice from the latest farm snapshot
// when the text-generation service is unreachable. Deterministic on
// purpose: same question and snapshot, same answer.
func FallbackReply(message string, ctx ChatContext) string {
	q := strings.ToLower(message)

	switch {
	case containsAny(q, "water", "irrigat", "motor", "pump"):
		if ctx.Motor == nil {
			return "The irrigation motor has not reported any state yet. Check that the controller is online."
		}
		state := "off"
		if ctx.Motor.On {
			state = "on"
		}
		return fmt.Sprintf("The irrigation motor is currently %s in %s mode. Last change: %s.",
			state, ctx.Motor.Mode, ctx.Motor.Reason)

	case containsAny(q, "crop", "plant", "grow", "sow"):
		if ctx.Recommendation == nil {
			return "I need at least one sensor reading before I can recommend a crop."
		}
		return fmt.Sprintf("Based on current conditions, %s scores %d/100. %s",
			ctx.Recommendation.Crop, ctx.Recommendation.Score, ctx.Recommendation.Advice)

	case containsAny(q, "temperature", "weather", "humid", "rain"):
		if ctx.Reading == nil {
			return "No sensor readings yet, so I cannot describe field conditions."
		}
		return fmt.Sprintf("Field conditions: air %.1f°C at %.1f%% humidity, soil %.1f°C, rainfall %.1f mm.",
			ctx.Reading.AirTemperature, ctx.Reading.AirHumidity,
			ctx.Reading.SoilTemperature, ctx.Reading.Rainfall)

	default:
		if ctx.Reading == nil {
			return "I'm the farm assistant. Ask me about irrigation, crops or field conditions once sensor data arrives."
		}
		reply := fmt.Sprintf("Soil moisture is at %.1f%%", ctx.Reading.SoilMoisture)
		if ctx.Recommendation != nil {
			reply += fmt.Sprintf(" and the best crop match right now is %s (%d/100)",
				ctx.Recommendation.Crop, ctx.Recommendation.Score)
		}
		return reply + ". Ask me about irrigation, crops or field conditions for details."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
