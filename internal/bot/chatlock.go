package bot

import "sync"

// chatLocks serializes update handling per chat. The transport does not
// guarantee that two updates for the same chat never run concurrently, and the
// dialogue's read-modify-write of conversation state is not atomic without it.
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[int64]*sync.Mutex)}
}

func (c *chatLocks) lock(chatID int64) *sync.Mutex {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[chatID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l
}
