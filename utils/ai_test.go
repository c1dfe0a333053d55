package utils

import (
	"strings"
	"testing"

	"smartfarm/models"
)

func TestGenerateChatReplyWithoutURL(t *testing.T) {
	t.Setenv("AI_URL", "")
	if _, err := GenerateChatReply("hello", ChatContext{}); err == nil {
		t.Error("expected an error when AI_URL is not configured")
	}
}

func TestFallbackReply(t *testing.T) {
	reading := models.SensorReading{
		SoilMoisture:    42,
		SoilTemperature: 21,
		AirTemperature:  27,
		AirHumidity:     55,
		Rainfall:        0.4,
	}
	motor := models.MotorState{
		On:     true,
		Mode:   models.ModeAutomatic,
		Reason: "low soil moisture at 28.0%, starting irrigation",
	}
	rec := models.CropRecommendation{
		Crop:   "Maize",
		Score:  88,
		Advice: "Conditions are well suited for Maize. Keep the current regime going.",
	}
	ctx := ChatContext{Reading: &reading, Motor: &motor, Recommendation: &rec}

	tests := []struct {
		name     string
		message  string
		contains []string
	}{
		{"irrigation question", "is the water pump running?", []string{"on", "automatic"}},
		{"crop question", "what should I plant?", []string{"Maize", "88"}},
		{"weather question", "how is the temperature outside?", []string{"27.0", "55.0"}},
		{"generic question", "hello there", []string{"42.0", "Maize"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := FallbackReply(tt.message, ctx)
			for _, want := range tt.contains {
				if !strings.Contains(reply, want) {
					t.Errorf("reply %q missing %q", reply, want)
				}
			}
			// Same question and snapshot must produce the same answer.
			if again := FallbackReply(tt.message, ctx); again != reply {
				t.Errorf("fallback reply not deterministic: %q vs %q", reply, again)
			}
		})
	}
}

func TestFallbackReplyWithoutData(t *testing.T) {
	reply := FallbackReply("what crop should I grow?", ChatContext{})
	if !strings.Contains(reply, "sensor reading") {
		t.Errorf("expected a no-data explanation, got %q", reply)
	}
}
