package msgcode

import (
	"sync"
	"sync/atomic"
)

var globalCell struct {
	mu      sync.Mutex
	catalog atomic.Pointer[DefaultCatalog]
}

// Global returns the process-wide catalog, creating it with a default
// configuration on first use.
func Global() Catalog {
	return globalCatalog()
}

// InitGlobal creates the global catalog with cfg. It fails with
// ErrGlobalInitialized once the global catalog exists, including after an
// earlier call to Global.
func InitGlobal(cfg Config) (Catalog, error) {
	globalCell.mu.Lock()
	defer globalCell.mu.Unlock()
	if globalCell.catalog.Load() != nil {
		return nil, ErrGlobalInitialized
	}
	c := newCatalog(cfg, true)
	globalCell.catalog.Store(c)
	return c, nil
}

func globalCatalog() *DefaultCatalog {
	if c := globalCell.catalog.Load(); c != nil {
		return c
	}

	globalCell.mu.Lock()
	defer globalCell.mu.Unlock()
	if c := globalCell.catalog.Load(); c != nil {
		return c
	}
	c := newCatalog(Config{}, true)
	globalCell.catalog.Store(c)
	return c
}
