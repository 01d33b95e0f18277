package touch

// filterWindow is the number of samples averaged per axis.
const filterWindow = 8

// Filter smooths one scalar channel with a moving average over the last
// filterWindow samples. Reset discards all accumulated state, so the
// next Feed behaves exactly like a fresh filter.
type Filter struct {
	samples [filterWindow]float32
	count   int
	next    int
}

// Feed folds a new sample into the running estimate.
func (f *Filter) Feed(v float32) {
	f.samples[f.next] = v
	f.next = (f.next + 1) % filterWindow
	if f.count < filterWindow {
		f.count++
	}
}

// Reset clears all accumulated state.
func (f *Filter) Reset() {
	f.count = 0
	f.next = 0
}

// Value returns the current estimate: the mean of the samples seen
// since the last reset. Zero before the first feed.
func (f *Filter) Value() float32 {
	if f.count == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < f.count; i++ {
		sum += f.samples[i]
	}
	return sum / float32(f.count)
}

// Stable reports whether the window is full and every sample in it lies
// within tol of every other. This is the positional debounce: a touch
// does not count until the filtered point has settled.
func (f *Filter) Stable(tol float32) bool {
	if f.count < filterWindow {
		return false
	}
	min := f.samples[0]
	max := f.samples[0]
	for _, v := range f.samples[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max-min <= tol
}
