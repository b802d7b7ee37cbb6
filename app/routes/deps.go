package routes

import (
	"sync"

	convsvc "creator_inbox/internal/services/conversations"
)

type Deps struct {
	Conversations *convsvc.Service
}

var (
	depsMu   sync.RWMutex
	depsOnce bool
	deps     Deps
)

func SetDeps(next Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = next
	depsOnce = true
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	if !depsOnce {
		panic("routes deps not initialized")
	}
	return deps
}
