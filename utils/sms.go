package utils

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"smartfarm/models"
)

// SMSAlerter sends farm alerts over Twilio with a per-kind cooldown so
// a condition that persists across poll cycles is reported once, not on
// every reading. Every attempt lands in the alert log.
type SMSAlerter struct {
	client   *twilio.RestClient
	from     string
	to       string
	cooldown time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewSMSAlerter builds an alerter from TWILIO_ACCOUNT_SID and
// TWILIO_AUTH_TOKEN plus the configured numbers. Returns nil when
// alerting is disabled or credentials are missing; a nil alerter is
// safe to call and does nothing.
func NewSMSAlerter(enabled bool, from, to string, cooldown time.Duration) *SMSAlerter {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	if !enabled || sid == "" || token == "" || from == "" || to == "" {
		slog.Info("SMS alerting disabled")
		return nil
	}
	return &SMSAlerter{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: token,
		}),
		from:     from,
		to:       to,
		cooldown: cooldown,
		lastSent: make(map[string]time.Time),
	}
}

// Send dispatches one alert of the given kind, skipping silently while
// the kind is inside its cooldown window.
func (a *SMSAlerter) Send(db *gorm.DB, kind, message string) {
	if a == nil {
		return
	}

	a.mu.Lock()
	if last, ok := a.lastSent[kind]; ok && time.Since(last) < a.cooldown {
		a.mu.Unlock()
		return
	}
	a.lastSent[kind] = time.Now()
	a.mu.Unlock()

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(a.to)
	params.SetFrom(a.from)
	params.SetBody(message)

	_, err := a.client.Api.CreateMessage(params)
	if err != nil {
		slog.Error("failed to send SMS alert", "kind", kind, "err", err)
	} else {
		slog.Info("SMS alert sent", "kind", kind, "to", a.to)
	}

	if db != nil {
		entry := models.AlertLog{
			Kind:      kind,
			Message:   message,
			Recipient: a.to,
			Sent:      err == nil,
		}
		if logErr := db.Create(&entry).Error; logErr != nil {
			slog.Error("failed to record alert", "err", logErr)
		}
	}
}
