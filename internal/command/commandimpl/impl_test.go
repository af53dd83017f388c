package commandimpl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/internal/ratelimit"
	"github.com/briidgedotone/narra/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sent struct {
	chatID int64
	id     int
	text   string
}

type fakeTelegram struct {
	messages []sent
	edits    []sent
	updates  chan tgbotapi.Update
}

func (f *fakeTelegram) Enabled() bool { return true }
func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}
func (f *fakeTelegram) StopReceivingUpdates() {}
func (f *fakeTelegram) SendMessage(chatID int64, text string) (int, error) {
	f.messages = append(f.messages, sent{chatID: chatID, id: len(f.messages) + 1, text: text})
	return len(f.messages), nil
}
func (f *fakeTelegram) EditMessageText(chatID int64, messageID int, text string) error {
	f.edits = append(f.edits, sent{chatID: chatID, id: messageID, text: text})
	return nil
}
func (f *fakeTelegram) SendMessageToUser(string) {}

type fakeIngestor struct {
	saves   []string
	result  ingest.ItemResult
	imports []string
}

func (f *fakeIngestor) SaveOne(_ context.Context, url, boardID string) ingest.ItemResult {
	f.saves = append(f.saves, url+"|"+boardID)
	return f.result
}

func (f *fakeIngestor) ImportProfile(_ context.Context, handle string, platform domain.Platform, count int) (ingest.ImportResult, error) {
	f.imports = append(f.imports, handle)
	if handle == "broken" {
		return ingest.ImportResult{}, errors.New("boom")
	}
	return ingest.ImportResult{Profile: &domain.Profile{Handle: handle, Platform: platform}, Saved: count}, nil
}

func cmdUpdate(text string, from int64) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 10},
		From:     &tgbotapi.User{ID: from},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func newCommand(tg *fakeTelegram, ing *fakeIngestor) *CommandImpl {
	return &CommandImpl{
		Telegram:     tg,
		Ingestor:     ing,
		Logger:       logger.NewNop(),
		Limiter:      ratelimit.NewPerChat(0, 1),
		Operator:     7,
		DefaultBoard: "board-1",
	}
}

func TestSave_DuplicateIsFriendly(t *testing.T) {
	tg := &fakeTelegram{}
	ing := &fakeIngestor{result: ingest.ItemResult{Outcome: ingest.OutcomeDuplicate}}
	c := newCommand(tg, ing)

	if err := c.handleUpdate(context.Background(), cmdUpdate("/save https://www.instagram.com/p/ABC123/", 7)); err != nil {
		t.Fatal(err)
	}

	if len(ing.saves) != 1 || ing.saves[0] != "https://www.instagram.com/p/ABC123/|board-1" {
		t.Fatalf("unexpected saves %v", ing.saves)
	}
	if len(tg.edits) != 1 || tg.edits[0].text != ingest.DuplicateMessage {
		t.Fatalf("unexpected edits %+v", tg.edits)
	}
}

func TestSave_ExplicitBoardAndFailure(t *testing.T) {
	tg := &fakeTelegram{}
	ing := &fakeIngestor{result: ingest.ItemResult{
		Outcome: ingest.OutcomeFetchFailed,
		Err:     domain.FetchError(errors.New("timeout"), "failed to fetch"),
	}}
	c := newCommand(tg, ing)

	if err := c.handleUpdate(context.Background(), cmdUpdate("/save https://www.tiktok.com/@a/video/1 board-9", 7)); err != nil {
		t.Fatal(err)
	}
	if ing.saves[0] != "https://www.tiktok.com/@a/video/1|board-9" {
		t.Fatalf("board override ignored: %v", ing.saves)
	}
	if !strings.HasPrefix(tg.edits[0].text, "Failed to save: failed to fetch") {
		t.Fatalf("failure message = %q", tg.edits[0].text)
	}
}

func TestSave_RejectsBadInput(t *testing.T) {
	tg := &fakeTelegram{}
	ing := &fakeIngestor{}
	c := newCommand(tg, ing)

	_ = c.handleUpdate(context.Background(), cmdUpdate("/save", 7))
	_ = c.handleUpdate(context.Background(), cmdUpdate("/save https://example.com/p/1", 7))

	if len(ing.saves) != 0 {
		t.Fatalf("nothing should have been saved: %v", ing.saves)
	}
	if len(tg.messages) != 2 {
		t.Fatalf("expected two usage replies, got %+v", tg.messages)
	}
}

func TestSave_RateLimited(t *testing.T) {
	tg := &fakeTelegram{}
	ing := &fakeIngestor{result: ingest.ItemResult{Outcome: ingest.OutcomeSuccess}}
	c := newCommand(tg, ing)
	c.Limiter = ratelimit.NewPerChat(1<<40, 1)

	_ = c.handleUpdate(context.Background(), cmdUpdate("/save https://www.instagram.com/p/A/", 7))
	_ = c.handleUpdate(context.Background(), cmdUpdate("/save https://www.instagram.com/p/B/", 7))

	if len(ing.saves) != 1 {
		t.Fatalf("second save should be limited, saves=%v", ing.saves)
	}
}

func TestIgnoresOtherUsers(t *testing.T) {
	tg := &fakeTelegram{}
	ing := &fakeIngestor{}
	c := newCommand(tg, ing)

	_ = c.handleUpdate(context.Background(), cmdUpdate("/help", 8))
	if len(tg.messages) != 0 {
		t.Fatalf("stranger got a reply: %+v", tg.messages)
	}
}

func TestImport(t *testing.T) {
	tg := &fakeTelegram{}
	ing := &fakeIngestor{}
	c := newCommand(tg, ing)

	if err := c.handleUpdate(context.Background(), cmdUpdate("/import @creator instagram 5", 7)); err != nil {
		t.Fatal(err)
	}
	if tg.messages[0].text != "Imported @creator: 5 posts saved, 0 rejected, 0 failed" {
		t.Fatalf("reply = %q", tg.messages[0].text)
	}

	if err := c.handleUpdate(context.Background(), cmdUpdate("/import broken tiktok", 7)); err == nil {
		t.Fatal("expected the import error to be returned")
	}
	if !strings.Contains(tg.messages[1].text, "boom") {
		t.Fatalf("reply = %q", tg.messages[1].text)
	}
}

func TestHandleCommand_StopsWhenChannelCloses(t *testing.T) {
	tg := &fakeTelegram{updates: make(chan tgbotapi.Update, 1)}
	c := newCommand(tg, &fakeIngestor{})

	tg.updates <- cmdUpdate("/help", 7)
	close(tg.updates)

	if err := c.HandleCommand(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(tg.messages) != 1 || tg.messages[0].text != helpText {
		t.Fatalf("unexpected replies %+v", tg.messages)
	}
}

func TestImportMessage_FormatsFollowers(t *testing.T) {
	followers := int64(1234567)
	got := importMessage(ingest.ImportResult{
		Profile: &domain.Profile{Handle: "creator", FollowersCount: &followers},
		Saved:   3,
	})
	want := "Imported @creator (1,234,567 followers): 3 posts saved, 0 rejected, 0 failed"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
