package dialogue

import "sync"

// Store keeps the current onboarding state per chat. Implementations must be
// safe for concurrent use; swapping in a durable backing store must not touch
// the state machine itself.
type Store interface {
	// Get returns the current state for a chat, Instructions for a new chat.
	Get(chatID int64) State

	// Set replaces the state for a chat.
	Set(chatID int64, s State)

	// Clear forgets the chat, returning it to Instructions.
	Clear(chatID int64)
}

// MemoryStore is the in-process Store. State is lost on restart; the router
// re-derives onboarding need from credential absence, so a restart only means
// the user walks through setup again.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewMemoryStore creates an empty in-process state store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]State)}
}

// Get returns the current state for a chat, Instructions for a new chat.
func (m *MemoryStore) Get(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.states[chatID]; ok {
		return s
	}
	return Instructions{}
}

// Set replaces the state for a chat.
func (m *MemoryStore) Set(chatID int64, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = s
}

// Clear forgets the chat.
func (m *MemoryStore) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
