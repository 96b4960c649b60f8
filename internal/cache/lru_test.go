package cache

import "testing"

func TestLRUGetPut(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}

	// "b" is now least recently used and must be evicted.
	c.Put("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v, want 3, true", v, ok)
	}

	st := c.Stats()
	if st.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", st.Evictions)
	}
	if st.Len != 2 {
		t.Errorf("Len = %d, want 2", st.Len)
	}
}

func TestLRUReplace(t *testing.T) {
	c := NewLRU[int, string](0)
	if c.Stats().Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", c.Stats().Capacity, DefaultCapacity)
	}
	c.Put(1, "x")
	c.Put(1, "y")
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if v, _ := c.Get(1); v != "y" {
		t.Errorf("Get(1) = %q, want y", v)
	}
}

func TestLRUGetOrCreate(t *testing.T) {
	c := NewLRU[int, int](4)
	calls := 0
	create := func() int { calls++; return 42 }

	for range 3 {
		if v := c.GetOrCreate(7, create); v != 42 {
			t.Fatalf("GetOrCreate = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestLRUDeleteAndClear(t *testing.T) {
	c := NewLRU[int, int](4)
	for i := range 4 {
		c.Put(i, i)
	}
	c.Delete(2)
	c.Delete(99)
	if _, ok := c.Get(2); ok {
		t.Error("2 should be deleted")
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
	// The list must be usable after Clear.
	c.Put(5, 5)
	if v, ok := c.Get(5); !ok || v != 5 {
		t.Errorf("Get(5) = %d, %v after Clear", v, ok)
	}
}
