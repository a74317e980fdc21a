package service

import "sync"

// keyedMutex serializes read-modify-write cycles per key so concurrent
// writers to the same user's collection cannot interleave and drop each
// other's entries. Different keys proceed in parallel.
//
// The map holds one mutex per key ever locked and never evicts; at a few
// dozen bytes per active user this stays far below the process's other
// per-user state.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use. Returns the
// unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
