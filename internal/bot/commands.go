package bot

import (
	"context"
	"log/slog"
)

const helpMessage = `These commands are supported:
/help - display this text
/reset - reset the bot and delete your stored tokens`

const resetMessage = "Try again by sending a message to activate the setup"

// handleCommand handles /help and /reset. Reset deletes the stored credential
// and forces the chat back to the start of onboarding from any state.
func (r *Router) handleCommand(ctx context.Context, msg Incoming) {
	switch msg.Command {
	case "help", "start":
		r.send(msg.ChatID, helpMessage)
	case "reset":
		if err := r.repo.DeleteCredential(ctx, chatKey(msg.ChatID)); err != nil {
			slog.Error("credential delete failed", "chat_id", msg.ChatID, "error", err)
			r.send(msg.ChatID, MsgGenericFailure)
			return
		}
		r.states.Clear(msg.ChatID)
		r.send(msg.ChatID, resetMessage)
	default:
		r.send(msg.ChatID, helpMessage)
	}
}
