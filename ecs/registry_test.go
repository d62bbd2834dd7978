package ecs

import "testing"

func TestRegistryEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRegistry()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, r.Create())
			}
			if r.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, r.Len())
			}
			if c.destroyIndex >= 0 {
				if !r.Destroy(ents[c.destroyIndex]) {
					t.Fatalf("Destroy should return true for alive entity")
				}
				if r.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if r.Destroy(ents[c.destroyIndex]) {
					t.Fatalf("second Destroy should return false")
				}
			}
		})
	}
}

func TestRegistryRecycledSlotGetsNewGeneration(t *testing.T) {
	r := NewRegistry()
	a := r.Create()
	r.Destroy(a)
	b := r.Create()
	if a.Index() != b.Index() {
		t.Fatalf("expected slot reuse, got %d and %d", a.Index(), b.Index())
	}
	if a == b {
		t.Fatalf("recycled entity must differ from the stale one")
	}
	if r.IsAlive(a) {
		t.Fatalf("stale id must not be alive")
	}
}

func TestSparseSetStaleGenerationMisses(t *testing.T) {
	r := NewRegistry()
	s := NewSparseSet[string]()
	a := r.Create()
	s.Set(a, "a")
	r.Destroy(a)
	b := r.Create()
	s.Set(b, "b")

	if _, ok := s.Get(a); ok {
		t.Fatalf("stale entity should not resolve")
	}
	if v, ok := s.Get(b); !ok || v != "b" {
		t.Fatalf("Get(b) = %q, %v", v, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 value, got %d", s.Len())
	}
}

func TestSparseSetRemoveKeepsOthers(t *testing.T) {
	r := NewRegistry()
	s := NewSparseSet[int]()
	ents := []Entity{r.Create(), r.Create(), r.Create()}
	for i, e := range ents {
		s.Set(e, i)
	}
	if !s.Remove(ents[0]) {
		t.Fatalf("Remove should report true")
	}
	if s.Remove(ents[0]) {
		t.Fatalf("second Remove should report false")
	}
	for i, e := range ents[1:] {
		v, ok := s.Get(e)
		if !ok || v != i+1 {
			t.Fatalf("Get(%v) = %d, %v", e, v, ok)
		}
	}
}
