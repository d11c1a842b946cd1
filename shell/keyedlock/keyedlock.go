// Package keyedlock provides a mutual exclusion lock per string key.
//
// Holders of different keys never contend. An entry lives only while the key is held
// or awaited, so the lock does not grow with the number of keys ever seen.
package keyedlock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// KeyedLock serializes work per key. The zero value is not usable, use New.
type KeyedLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyedLock.
func New() *KeyedLock {
	return &KeyedLock{entries: make(map[string]*entry)}
}

// Lock blocks until key is acquired or ctx is done.
// On success it returns the function releasing the key, which must be called exactly once.
func (l *KeyedLock) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := l.acquireEntry(key)

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			l.releaseEntry(key, e)
		}, nil

	case <-ctx.Done():
		l.releaseEntry(key, e)
		return nil, ctx.Err()
	}
}

// Len returns the number of keys currently held or awaited.
func (l *KeyedLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

func (l *KeyedLock) acquireEntry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++

	return e
}

func (l *KeyedLock) releaseEntry(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
