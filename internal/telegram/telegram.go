package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client is the operator bot. When no token is configured every method is
// a no-op and Enabled reports false.
type Client interface {
	Enabled() bool

	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	EditMessageText(chatID int64, messageID int, newText string) error

	// SendMessageToUser notifies the configured operator.
	SendMessageToUser(message string)
}
