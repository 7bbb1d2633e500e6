package usecase

import "sync"

// keyedMutex serializes work per key. Entries are dropped once nobody holds
// or waits for them.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*lockEntry)}
}

// Lock blocks until the key is free and returns the function releasing it.
func (that *keyedMutex) Lock(key string) func() {
	that.mu.Lock()
	entry, ok := that.entries[key]
	if !ok {
		entry = &lockEntry{}
		that.entries[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.entries, key)
		}
		that.mu.Unlock()
	}
}

func (that *keyedMutex) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.entries)
}
