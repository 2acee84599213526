package coalition

// Registry is the ordered list of (mask, weight) pairs produced by the
// enumerator/sampler for one explanation. Masks are appended in
// generation order and never reordered or removed; the sample builder and
// regressor both rely on registry order to line up rows of the synthetic
// sample matrix and of yBar with the corresponding weight.
type Registry struct {
	entries []WeightedMask
}

// NewRegistry returns an empty registry with room for at least capacity
// entries.
func NewRegistry(capacity int) *Registry {
	return &Registry{entries: make([]WeightedMask, 0, capacity)}
}

// Add appends one (mask, weight) pair and returns its index.
func (r *Registry) Add(m Mask, weight float64) int {
	r.entries = append(r.entries, WeightedMask{Mask: m, Weight: weight})
	return len(r.entries) - 1
}

// Len returns the number of masks currently registered.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at index t.
func (r *Registry) At(t int) WeightedMask {
	return r.entries[t]
}

// All returns the full ordered slice of entries. Callers must not mutate
// it.
func (r *Registry) All() []WeightedMask {
	return r.entries
}
