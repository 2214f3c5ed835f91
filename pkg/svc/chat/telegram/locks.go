package telegram

import "sync"

// chatLocks hands out one mutex per chat and forgets it once unused.
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*chatLock
}

type chatLock struct {
	sync.Mutex

	refs int
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[int64]*chatLock)}
}

// lock blocks until the chat is free and returns its unlock function.
func (c *chatLocks) lock(chatID int64) func() {
	c.mu.Lock()

	entry, ok := c.locks[chatID]
	if !ok {
		entry = &chatLock{}
		c.locks[chatID] = entry
	}

	entry.refs++
	c.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		c.mu.Lock()
		defer c.mu.Unlock()

		entry.refs--
		if entry.refs == 0 {
			delete(c.locks, chatID)
		}
	}
}

func (c *chatLocks) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.locks)
}
