package dialogue

import (
	"fmt"
	"strings"

	"github.com/avoronov/webdump-bot/internal/domain"
)

// Outcome is the result of one transition: the next state, the replies to send,
// and an optional credential to persist. Persist is non-nil only on the
// confirmation edge; the caller must store it before committing Next.
type Outcome struct {
	Next    State
	Replies []string
	Persist *domain.Credential
}

// Handle advances the onboarding machine for one incoming message.
// text is empty when the message carried no text payload (stickers, bare media).
// The function is pure: it never touches storage itself.
func Handle(userID string, current State, text string) Outcome {
	switch st := current.(type) {
	case Instructions:
		return Outcome{
			Next:    AwaitingIntegrationToken{},
			Replies: []string{InstructionsMessage, PromptToken},
		}

	case AwaitingIntegrationToken:
		if text == "" {
			return Outcome{Next: st, Replies: []string{PromptPlainText}}
		}
		return Outcome{
			Next:    AwaitingDatabaseID{IntegrationToken: text},
			Replies: []string{PromptDatabaseID},
		}

	case AwaitingDatabaseID:
		if text == "" {
			return Outcome{Next: st, Replies: []string{PromptPlainText}}
		}
		summary := fmt.Sprintf("integration token: %s\ndatabase id: %s", st.IntegrationToken, text)
		return Outcome{
			Next:    AwaitingConfirmation{IntegrationToken: st.IntegrationToken, DatabaseID: text},
			Replies: []string{summary, PromptConfirm},
		}

	case AwaitingConfirmation:
		if text == "" {
			return Outcome{Next: st, Replies: []string{PromptPlainText}}
		}
		if strings.Contains(strings.ToLower(text), "yes") {
			return Outcome{
				Next:    Ready{},
				Replies: []string{SetupComplete},
				Persist: &domain.Credential{
					UserID:           userID,
					IntegrationToken: st.IntegrationToken,
					DatabaseID:       st.DatabaseID,
				},
			}
		}
		// Anything but a yes discards both captured values and restarts.
		return Outcome{
			Next:    Instructions{},
			Replies: []string{SetupDiscarded},
		}

	case Ready:
		// Not driven by this machine; the router sends Ready chats to the pipeline.
		return Outcome{Next: st}

	default:
		// Unreachable while State stays sealed.
		return Outcome{Next: Instructions{}}
	}
}
