// Package dialogue implements the onboarding conversation state machine.
//
// Each chat walks through a fixed sequence of states to hand over its Notion
// integration token and target database id. The machine itself is pure; the
// router applies the returned side effect and stores the next state.
package dialogue

// State is the closed set of onboarding states for one chat.
// Exactly the types in this file implement it.
type State interface {
	isState()
}

// Instructions is the initial state: the next update triggers the setup
// instructions and the token prompt.
type Instructions struct{}

// AwaitingIntegrationToken waits for the user's Notion integration token.
type AwaitingIntegrationToken struct{}

// AwaitingDatabaseID waits for the target database id.
// The token captured in the previous state is carried forward verbatim.
type AwaitingDatabaseID struct {
	IntegrationToken string
}

// AwaitingConfirmation waits for the user to confirm both captured values.
type AwaitingConfirmation struct {
	IntegrationToken string
	DatabaseID       string
}

// Ready is terminal: messages from a chat in this state are routed to the
// capture pipeline, not to this machine. Reset returns the chat to Instructions.
type Ready struct{}

func (Instructions) isState()             {}
func (AwaitingIntegrationToken) isState() {}
func (AwaitingDatabaseID) isState()       {}
func (AwaitingConfirmation) isState()     {}
func (Ready) isState()                    {}
