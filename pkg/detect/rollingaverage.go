package detect

// RollingAverage maintains the mean of the most recently added values over
// a fixed window. Until the first value arrives, Get returns the seed.
type RollingAverage struct {
	values []float64
	sum    float64
	next   int
	count  int
	seed   float64
}

// NewRollingAverage creates an average over a window of size values,
// seeded with zero.
func NewRollingAverage(size int) *RollingAverage {
	return NewSeededRollingAverage(size, 0)
}

// NewSeededRollingAverage creates an average over a window of size values.
// Get returns seed until the first Add.
func NewSeededRollingAverage(size int, seed float64) *RollingAverage {
	if size < 1 {
		panic("detect: rolling average window must hold at least one value")
	}
	return &RollingAverage{
		values: make([]float64, size),
		seed:   seed,
	}
}

// Add inserts a value, evicting the oldest one once the window is full.
func (r *RollingAverage) Add(v float64) {
	if r.count == len(r.values) {
		r.sum -= r.values[r.next]
	} else {
		r.count++
	}

	r.values[r.next] = v
	r.sum += v
	r.next = (r.next + 1) % len(r.values)
}

// Get returns the current mean, or the seed if nothing has been added.
func (r *RollingAverage) Get() float64 {
	if r.count == 0 {
		return r.seed
	}
	return r.sum / float64(r.count)
}
