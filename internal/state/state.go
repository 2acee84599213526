// Package state tracks the readiness of an Explainer in a thread-safe manner.
//
// An Explainer becomes ready once its background data and base prediction
// have been computed in New; Explain refuses to run before that point.
// BaseValue does not consult the ready flag. This mirrors the fitted/not-fitted lifecycle a
// trainable model would have, even though Explainer itself never trains
// anything.
package state

import (
	"sync"

	"github.com/shapkit/kernelshap/pkg/errors"
)

// Manager guards the ready flag and the dimensions fixed at construction
// time (background row count n, feature count d, output width k).
type Manager struct {
	mu    sync.RWMutex
	ready bool

	d, n, k int
}

// NewManager returns a Manager in the not-ready state.
func NewManager() *Manager {
	return &Manager{}
}

// IsReady reports whether SetReady has been called.
func (m *Manager) IsReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// SetReady marks the manager ready and records the fixed dimensions.
func (m *Manager) SetReady(d, n, k int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = true
	m.d, m.n, m.k = d, n, k
}

// Dims returns the dimensions recorded by SetReady.
func (m *Manager) Dims() (d, n, k int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d, m.n, m.k
}

// RequireReady returns an error if SetReady has not yet been called.
func (m *Manager) RequireReady(op string) error {
	if !m.IsReady() {
		return errors.NewNotReadyError("Explainer", op)
	}
	return nil
}
