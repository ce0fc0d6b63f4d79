package service

import (
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

// EditIntent is the one-shot handoff slot between the product list and
// the edit form. The list view sets the product before navigating, the
// form takes it exactly once on load. An empty slot means create mode.
type EditIntent struct {
	mu      sync.Mutex
	pending *domain.Product
}

func NewEditIntent() *EditIntent {
	return &EditIntent{}
}

// Set stores the product to edit, replacing any unconsumed intent.
func (e *EditIntent) Set(p domain.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = &p
}

// Take consumes the pending intent, clearing the slot. The returned
// product has legacy single-image records already normalized.
func (e *EditIntent) Take() (domain.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		return domain.Product{}, false
	}
	p := e.pending.NormalizeImages()
	e.pending = nil
	return p, true
}
