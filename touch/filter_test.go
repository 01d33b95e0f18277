package touch

import "testing"

func TestFilterValueIsMeanOfWindow(t *testing.T) {
	var f Filter
	if f.Value() != 0 {
		t.Fatalf("expected 0 before any feed, got %v", f.Value())
	}
	f.Feed(10)
	f.Feed(20)
	if got := f.Value(); got != 15 {
		t.Fatalf("expected mean 15, got %v", got)
	}
}

func TestFilterWindowSlides(t *testing.T) {
	var f Filter
	for i := 0; i < filterWindow; i++ {
		f.Feed(100)
	}
	// One more feed displaces the oldest sample.
	f.Feed(100 + filterWindow*8)
	want := float32(100 + 8)
	if got := f.Value(); got != want {
		t.Fatalf("expected %v after slide, got %v", want, got)
	}
}

func TestFilterStableRequiresFullWindow(t *testing.T) {
	var f Filter
	for i := 0; i < filterWindow-1; i++ {
		f.Feed(50)
		if f.Stable(4) {
			t.Fatalf("expected unstable with %d samples", i+1)
		}
	}
	f.Feed(50)
	if !f.Stable(4) {
		t.Fatal("expected stable with a full settled window")
	}
}

func TestFilterStableSpreadGate(t *testing.T) {
	var f Filter
	for i := 0; i < filterWindow; i++ {
		f.Feed(float32(100 + i)) // spread of filterWindow-1
	}
	if f.Stable(float32(filterWindow - 2)) {
		t.Fatal("expected spread above tolerance to be unstable")
	}
	if !f.Stable(float32(filterWindow - 1)) {
		t.Fatal("expected spread at tolerance to be stable")
	}
}

func TestFilterResetEqualsFresh(t *testing.T) {
	var used Filter
	for i := 0; i < filterWindow+3; i++ {
		used.Feed(float32(i * 7))
	}
	used.Reset()

	var fresh Filter
	for _, v := range []float32{3, 1, 4} {
		used.Feed(v)
		fresh.Feed(v)
	}
	if used.Value() != fresh.Value() {
		t.Fatalf("expected reset filter to match fresh: %v vs %v", used.Value(), fresh.Value())
	}
	if used.Stable(100) != fresh.Stable(100) {
		t.Fatal("expected identical stability after reset")
	}
}
