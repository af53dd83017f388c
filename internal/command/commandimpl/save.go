package commandimpl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/pkg/formatter"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const saveTimeout = time.Minute

func (c *CommandImpl) handleSaveCommand(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		_, err := c.Telegram.SendMessage(msg.Chat.ID, "Please provide a post URL: /save <post_url> [board_id]")
		return err
	}

	postURL := args[0]
	boardID := c.DefaultBoard
	if len(args) > 1 {
		boardID = args[1]
	}
	if boardID == "" {
		_, err := c.Telegram.SendMessage(msg.Chat.ID, "No board configured. Use /save <post_url> <board_id>")
		return err
	}
	if _, err := domain.PlatformFromURL(postURL); err != nil {
		_, err := c.Telegram.SendMessage(msg.Chat.ID, "Only Instagram and TikTok post URLs are supported.")
		return err
	}

	if !c.Limiter.Allow(msg.Chat.ID) {
		_, err := c.Telegram.SendMessage(msg.Chat.ID, "You are saving too fast, please wait a few seconds.")
		return err
	}

	statusID, err := c.Telegram.SendMessage(msg.Chat.ID, "Saving "+postURL+"...")
	if err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	res := c.Ingestor.SaveOne(saveCtx, postURL, boardID)
	if res.Err != nil {
		c.Logger.Warn("Interactive save failed", "url", postURL, "outcome", res.Outcome.String(), "error", res.Err)
	}

	return c.Telegram.EditMessageText(msg.Chat.ID, statusID, res.UserMessage())
}

func (c *CommandImpl) handleImportCommand(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		_, err := c.Telegram.SendMessage(msg.Chat.ID, "Usage: /import <handle> <instagram|tiktok> [count]")
		return err
	}

	handle := strings.TrimPrefix(args[0], "@")
	platform, err := domain.ParsePlatform(args[1])
	if err != nil {
		_, err := c.Telegram.SendMessage(msg.Chat.ID, err.Error())
		return err
	}
	count := 12
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			_, err := c.Telegram.SendMessage(msg.Chat.ID, "Count must be a positive number.")
			return err
		}
		count = n
	}

	importCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	res, err := c.Ingestor.ImportProfile(importCtx, handle, platform, count)
	if err != nil {
		_, sendErr := c.Telegram.SendMessage(msg.Chat.ID, fmt.Sprintf("Import of @%s failed: %v", handle, err))
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = c.Telegram.SendMessage(msg.Chat.ID, importMessage(res))
	return err
}

func importMessage(res ingest.ImportResult) string {
	text := "Imported @" + res.Profile.Handle
	if res.Profile.FollowersCount != nil {
		text += " (" + formatter.FormatCount(*res.Profile.FollowersCount) + " followers)"
	}
	return text + fmt.Sprintf(": %d posts saved, %d rejected, %d failed", res.Saved, res.Rejected, res.Failed)
}
