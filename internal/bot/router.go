package bot

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/avoronov/webdump-bot/internal/dialogue"
	"github.com/avoronov/webdump-bot/internal/notion"
	"github.com/avoronov/webdump-bot/internal/shared"
	"github.com/avoronov/webdump-bot/internal/store"
)

// Sender delivers replies back to a chat.
type Sender interface {
	Send(chatID int64, text string) error
	Reply(chatID int64, messageID int, text string) error
}

// FileResolver turns a provider file reference into a fetchable URL.
type FileResolver interface {
	FileURL(fileID string) (string, error)
}

// Uploader mirrors an image to the public image host.
type Uploader interface {
	Upload(ctx context.Context, sourceURL string) (string, error)
}

// NotionFactory builds a Notion client for a user's integration token.
type NotionFactory func(token string) notion.API

// Router dispatches each incoming message to the command handler, the capture
// pipeline, or the onboarding dialogue, holding the chat's lock throughout.
type Router struct {
	repo      store.Repository
	states    dialogue.Store
	sender    Sender
	files     FileResolver
	uploader  Uploader
	notionFor NotionFactory
	locks     *chatLocks
}

// NewRouter wires the router with its collaborators.
func NewRouter(repo store.Repository, states dialogue.Store, sender Sender, files FileResolver, uploader Uploader, notionFor NotionFactory) *Router {
	return &Router{
		repo:      repo,
		states:    states,
		sender:    sender,
		files:     files,
		uploader:  uploader,
		notionFor: notionFor,
		locks:     newChatLocks(),
	}
}

// HandleUpdate processes one message end to end. Safe to call from one
// goroutine per update; updates for the same chat are serialized here.
func (r *Router) HandleUpdate(ctx context.Context, msg Incoming) {
	l := r.locks.lock(msg.ChatID)
	defer l.Unlock()

	if msg.Command != "" {
		r.handleCommand(ctx, msg)
		return
	}

	userID := chatKey(msg.ChatID)
	cred, err := r.repo.GetCredential(ctx, userID)
	if err != nil {
		slog.Error("credential lookup failed", "chat_id", msg.ChatID, "error", err)
		r.send(msg.ChatID, MsgGenericFailure)
		return
	}

	if cred == nil || !cred.Complete() {
		r.stepDialogue(ctx, msg)
		return
	}

	r.handleMessage(ctx, cred, msg)
}

// stepDialogue advances the onboarding machine by one transition and applies
// its side effect. The next state is committed only after a successful
// persist, so a storage failure leaves the user free to confirm again.
func (r *Router) stepDialogue(ctx context.Context, msg Incoming) {
	userID := chatKey(msg.ChatID)
	current := r.states.Get(msg.ChatID)
	out := dialogue.Handle(userID, current, msg.Text)

	if out.Persist != nil {
		if err := r.repo.PutCredential(ctx, out.Persist); err != nil {
			if shared.IsSQLiteConflictError(err) {
				slog.Warn("credential store busy", "chat_id", msg.ChatID, "error", err)
			} else {
				slog.Error("credential persist failed", "chat_id", msg.ChatID, "error", err)
			}
			r.send(msg.ChatID, MsgGenericFailure)
			return
		}
	}

	r.states.Set(msg.ChatID, out.Next)
	for _, reply := range out.Replies {
		r.send(msg.ChatID, reply)
	}
}

func (r *Router) send(chatID int64, text string) {
	if err := r.sender.Send(chatID, text); err != nil {
		slog.Error("send failed", "chat_id", chatID, "error", err)
	}
}

// chatKey is the storage key for a chat: its id rendered as a string.
func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
