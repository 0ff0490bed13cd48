package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BackendRegistry indexes vendor backends by id so callers can look an
// adapter up from a target name.
type BackendRegistry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

func NewBackendRegistry() *BackendRegistry {
	return &BackendRegistry{backends: make(map[string]Backend)}
}

func (r *BackendRegistry) Register(backend Backend) error {
	if backend == nil {
		return fmt.Errorf("core: backend is nil")
	}
	id := strings.TrimSpace(backend.ID())
	if id == "" {
		return fmt.Errorf("core: backend id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.backends[id]; exists {
		return fmt.Errorf("core: backend already registered: %s", id)
	}
	r.backends[id] = backend
	return nil
}

func (r *BackendRegistry) Get(backendID string) (Backend, bool) {
	id := strings.TrimSpace(backendID)
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	backend, ok := r.backends[id]
	r.mu.RUnlock()
	return backend, ok
}

func (r *BackendRegistry) List() []Backend {
	r.mu.RLock()
	keys := make([]string, 0, len(r.backends))
	for id := range r.backends {
		keys = append(keys, id)
	}
	r.mu.RUnlock()
	sort.Strings(keys)

	backends := make([]Backend, 0, len(keys))
	r.mu.RLock()
	for _, id := range keys {
		backends = append(backends, r.backends[id])
	}
	r.mu.RUnlock()
	return backends
}
