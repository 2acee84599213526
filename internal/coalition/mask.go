package coalition

// Mask is a binary coalition vector z ∈ {0,1}^d: Bits[j] is true when
// feature j is "present" (takes its value from the query point x) and
// false when it is "absent" (takes its value from a background row).
type Mask struct {
	Bits []bool
	Size int // cached cardinality, i.e. number of true bits
}

// NewMask returns an all-absent mask of width d.
func NewMask(d int) Mask {
	return Mask{Bits: make([]bool, d)}
}

// Complement returns 1-z: every bit flipped, same cardinality complement.
func (m Mask) Complement() Mask {
	c := Mask{Bits: make([]bool, len(m.Bits)), Size: len(m.Bits) - m.Size}
	for j, b := range m.Bits {
		c.Bits[j] = !b
	}
	return c
}

// Clone returns an independent copy of m.
func (m Mask) Clone() Mask {
	c := Mask{Bits: make([]bool, len(m.Bits)), Size: m.Size}
	copy(c.Bits, m.Bits)
	return c
}

// FromIndices builds a size-|idx| mask of width d with the given positions
// set to present.
func FromIndices(d int, idx []int) Mask {
	m := NewMask(d)
	for _, j := range idx {
		m.Bits[j] = true
	}
	m.Size = len(idx)
	return m
}

// WeightedMask pairs a coalition with the regression weight it should
// receive. The mean predictor output for the mask is not stored here;
// sample.Builder returns it as the matching row of yBar, in registry order.
type WeightedMask struct {
	Mask   Mask
	Weight float64
}
