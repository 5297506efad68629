// Package bot routes incoming chat updates: credentialed chats go through the
// capture pipeline, everyone else through the onboarding dialogue.
package bot

// Incoming is the transport-independent view of one chat message. The
// Telegram adapter fills it in; the router and pipeline never see the
// transport's own types.
type Incoming struct {
	ChatID    int64
	MessageID int

	// Text is empty when the message carried no text payload.
	Text    string
	Caption string

	// Command is the parsed bot command name ("help", "reset"), empty for
	// ordinary messages.
	Command string

	// PhotoFileIDs lists the photo's size variants in ascending resolution.
	PhotoFileIDs []string

	// DocumentFileID/DocumentMIME describe an attached file, if any.
	DocumentFileID string
	DocumentMIME   string
}
