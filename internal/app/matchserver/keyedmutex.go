package matchserver

import (
	"sync"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// keyedMutex serializes work per id. Entries are never evicted; the id
// space here (live matches, players with in-flight updates) stays small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuidstring.ID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[uuidstring.ID]*sync.Mutex),
	}
}

func (k *keyedMutex) Lock(id uuidstring.ID) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
