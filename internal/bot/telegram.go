package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram adapts the Telegram Bot API to the router's Sender and
// FileResolver interfaces and runs the long-polling loop.
type Telegram struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
}

// NewTelegram connects to the Telegram Bot API.
func NewTelegram(token string, pollTimeoutSeconds int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	return &Telegram{api: api, pollTimeout: pollTimeoutSeconds}, nil
}

// Username returns the bot account's username.
func (t *Telegram) Username() string {
	return t.api.Self.UserName
}

// Send delivers a plain text message to a chat.
func (t *Telegram) Send(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Reply delivers a text message quoting the message it responds to.
func (t *Telegram) Reply(chatID int64, messageID int, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = messageID
	_, err := t.api.Send(msg)
	return err
}

// FileURL resolves a Telegram file id to its download URL on Telegram's file
// server. The URL embeds the bot token, so it is only ever handed to the
// image host, never echoed to users.
func (t *Telegram) FileURL(fileID string) (string, error) {
	file, err := t.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file %s: %w", fileID, err)
	}
	return file.Link(t.api.Token), nil
}

// Run polls for updates until ctx is cancelled, dispatching each message to
// the router on its own goroutine. Per-chat ordering is enforced by the
// router's chat locks, not here.
func (t *Telegram) Run(ctx context.Context, router *Router) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = t.pollTimeout
	updates := t.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			msg := fromMessage(update.Message)
			go func() {
				defer func() {
					if rec := recover(); rec != nil {
						slog.Error("update handler panicked", "chat_id", msg.ChatID, "panic", rec)
					}
				}()
				router.HandleUpdate(ctx, msg)
			}()
		}
	}
}

// fromMessage maps a Telegram message onto the transport-independent Incoming.
func fromMessage(m *tgbotapi.Message) Incoming {
	msg := Incoming{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
		Caption:   m.Caption,
	}

	if m.IsCommand() {
		msg.Command = m.Command()
	}

	for _, photo := range m.Photo {
		msg.PhotoFileIDs = append(msg.PhotoFileIDs, photo.FileID)
	}

	if m.Document != nil {
		msg.DocumentFileID = m.Document.FileID
		msg.DocumentMIME = m.Document.MimeType
	}

	return msg
}
