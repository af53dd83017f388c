package commandimpl

import (
	"context"

	"github.com/briidgedotone/narra/internal/command"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/internal/ratelimit"
	"github.com/briidgedotone/narra/internal/telegram"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

// Ingestor is the part of the ingestion processor the bot drives.
type Ingestor interface {
	SaveOne(ctx context.Context, url, boardID string) ingest.ItemResult
	ImportProfile(ctx context.Context, handle string, platform domain.Platform, count int) (ingest.ImportResult, error)
}

type Opts struct {
	fx.In

	Telegram  telegram.Client
	Processor *ingest.Processor
	Logger    logger.Logger
	Config    *config.Config
}

type CommandImpl struct {
	Telegram     telegram.Client
	Ingestor     Ingestor
	Logger       logger.Logger
	Limiter      ratelimit.Limiter
	Operator     int64
	DefaultBoard string
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram:     opts.Telegram,
		Ingestor:     opts.Processor,
		Logger:       opts.Logger.WithComponent("Command"),
		Limiter:      ratelimit.NewPerChat(opts.Config.Ingest.SaveRateLimit, 1),
		Operator:     opts.Config.Telegram.User,
		DefaultBoard: opts.Config.Ingest.TargetBoardID,
	}
}

var _ command.Client = (*CommandImpl)(nil)

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	if !c.Telegram.Enabled() {
		return nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.Telegram.GetUpdatesChan(u)
	defer c.Telegram.StopReceivingUpdates()

	c.Logger.Info("Listening for bot commands")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := c.handleUpdate(ctx, update); err != nil {
				c.Logger.Error("Command failed", "error", err)
			}
		}
	}
}

func (c *CommandImpl) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return nil
	}
	if c.Operator != 0 && (msg.From == nil || msg.From.ID != c.Operator) {
		c.Logger.Warn("Ignoring command from unknown user", "chat_id", msg.Chat.ID)
		return nil
	}

	switch msg.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(msg.Chat.ID, helpText)
		return err
	case "save":
		return c.handleSaveCommand(ctx, msg)
	case "import":
		return c.handleImportCommand(ctx, msg)
	default:
		_, err := c.Telegram.SendMessage(msg.Chat.ID, "Unknown command. Send /help for the list of commands.")
		return err
	}
}

const helpText = `Commands:
/save <post_url> [board_id] - save a post to a board
/import <handle> <instagram|tiktok> [count] - import a profile and its recent posts`
