package services

import "sync"

// recipeLocks hands out one mutex per recipe id. Entries are dropped once
// no goroutine holds or waits on them.
type recipeLocks struct {
	mu      sync.Mutex
	pending map[uint]*recipeLock
}

type recipeLock struct {
	mu   sync.Mutex
	refs int
}

func newRecipeLocks() *recipeLocks {
	return &recipeLocks{pending: make(map[uint]*recipeLock)}
}

// Lock blocks until the caller owns recipeID and returns the unlock func.
func (l *recipeLocks) Lock(recipeID uint) func() {
	l.mu.Lock()
	lock, ok := l.pending[recipeID]
	if !ok {
		lock = &recipeLock{}
		l.pending[recipeID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.pending, recipeID)
		}
		l.mu.Unlock()
	}
}

func (l *recipeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
