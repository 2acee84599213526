package coalition

import "testing"

func TestLCGDeterministic(t *testing.T) {
	a := NewLCG(42)
	b := NewLCG(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("streams diverged at step %d", i)
		}
	}
}

func TestLCGDifferentSeedsDiverge(t *testing.T) {
	a := NewLCG(1)
	b := NewLCG(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different streams")
	}
}

func TestLCGZeroSeedRemapped(t *testing.T) {
	r := NewLCG(0)
	if r.state == 0 {
		t.Fatal("expected zero seed to be remapped to a non-zero state")
	}
}

func TestFloat64InUnitInterval(t *testing.T) {
	r := NewLCG(7)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want [0,1)", v)
		}
	}
}

func TestSamplePositionsDistinctAndInRange(t *testing.T) {
	r := NewLCG(123)
	d, s := 10, 4
	pos := r.SamplePositions(d, s)
	if len(pos) != s {
		t.Fatalf("got %d positions, want %d", len(pos), s)
	}
	seen := make(map[int]bool)
	for _, p := range pos {
		if p < 0 || p >= d {
			t.Fatalf("position %d out of range [0,%d)", p, d)
		}
		if seen[p] {
			t.Fatalf("duplicate position %d", p)
		}
		seen[p] = true
	}
}

func TestSamplePositionsReproducible(t *testing.T) {
	a := NewLCG(99).SamplePositions(20, 6)
	b := NewLCG(99).SamplePositions(20, 6)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}
