package telegramimpl

import (
	"fmt"

	"github.com/briidgedotone/narra/internal/telegram"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	User   int64
}

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")
	if opts.Config.Telegram.Token == "" {
		log.Info("Telegram token not set, operator bot disabled")
		return &TelegramImpl{Logger: log}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	return NewWithBot(tgBot, opts.Config.Telegram.User, log), nil
}

func NewWithBot(bot *tgbotapi.BotAPI, user int64, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		TgBot:  bot,
		Logger: log,
		User:   user,
	}
}

var _ telegram.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) Enabled() bool {
	return tg.TgBot != nil
}

func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	if !tg.Enabled() {
		ch := make(chan tgbotapi.Update)
		close(ch)
		return ch
	}
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	if tg.Enabled() {
		tg.TgBot.StopReceivingUpdates()
	}
}

// SendMessage sends a message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	if !tg.Enabled() {
		return 0, nil
	}

	sentMsg, err := tg.TgBot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		tg.Logger.Error("Error sending message", "chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Debug("Message sent", "chat_id", chatID, "message_id", sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	if !tg.Enabled() {
		return nil
	}

	if _, err := tg.TgBot.Send(tgbotapi.NewEditMessageText(chatID, messageID, newText)); err != nil {
		tg.Logger.Error("Error editing message", "chat_id", chatID, "message_id", messageID, "error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// SendMessageToUser sends a text message to the configured user
func (tg *TelegramImpl) SendMessageToUser(message string) {
	if !tg.Enabled() || tg.User == 0 {
		return
	}

	if _, err := tg.TgBot.Send(tgbotapi.NewMessage(tg.User, message)); err != nil {
		tg.Logger.Error("Error sending message to user", "user_id", tg.User, "error", err)
		return
	}

	tg.Logger.Info("Message sent to user", "user_id", tg.User)
}
