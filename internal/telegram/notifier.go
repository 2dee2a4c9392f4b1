// Package telegram pushes out-of-band alerts to the authority channel when
// complaints escalate or long-escalated complaints close. It is outbound
// only; all user interaction happens through the REST API.
package telegram

import (
	"fmt"

	"grievgo/backend/internal/models"
	"grievgo/backend/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends alerts to a fixed authority chat.
type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier creates a Notifier. An empty token disables alerting and
// returns a nil Notifier, which is safe to call.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		logger.Warn().Msg("telegram token not set, escalation alerts disabled")
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	logger.Info().Str("account", bot.Self.UserName).Msg("telegram notifier authorized")

	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// EscalationAlert announces an escalation to the authority channel.
func (n *Notifier) EscalationAlert(complaint *models.Complaint) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("⚠️ Escalation L%d [%s] %s\nReason: %s",
		complaint.EscalationLevel, complaint.Priority, complaint.Title, complaint.EscalationReason)
	n.send(text)
}

// ClosureAlert announces the closure of a previously escalated complaint.
func (n *Notifier) ClosureAlert(complaint *models.Complaint) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("✅ Closed after escalation L%d: %s",
		complaint.EscalationLevel, complaint.Title)
	n.send(text)
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.ChatID, text)
	if _, err := n.BotAPI.Send(msg); err != nil {
		logger.Error().Err(err).Msg("telegram alert failed")
	}
}
