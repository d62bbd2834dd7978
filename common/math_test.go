package common

import "testing"

func TestRectIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"touching edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"apart", Rect{0, 0, 10, 10}, Rect{30, 30, 1, 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.want {
				t.Fatalf("Intersects = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPRNGIsReproducible(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)
	for i := 0; i < 8; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d differs for equal seeds", i)
		}
	}
}

func TestBetween(t *testing.T) {
	r := NewPRNG(7)
	for i := 0; i < 100; i++ {
		v := Between(r, -3, 3)
		if v < -3 || v >= 3 {
			t.Fatalf("Between out of range: %v", v)
		}
	}
	if got := Between(nil, 1, 2); got != 1 {
		t.Fatalf("nil source should return lo, got %v", got)
	}
}
