package observability

import "testing"

func TestStoreAddsAndLimits(t *testing.T) {
	store := NewTraceStore(2)
	store.Add(Trace{ID: "a"})
	store.Add(Trace{ID: "b"})
	store.Add(Trace{ID: "c"})

	traces := store.List()
	if len(traces) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(traces))
	}
	if traces[0].ID != "b" || traces[1].ID != "c" {
		t.Fatalf("unexpected trace order: %v", traces)
	}
	if store.Len() != 2 {
		t.Fatalf("expected len 2, got %d", store.Len())
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := NewTraceStore(0)
	if store.Limit() != 1000 {
		t.Fatalf("expected default limit 1000, got %d", store.Limit())
	}
}

func TestStoreListIsCopy(t *testing.T) {
	store := NewStore[int](3)
	store.Add(1)
	list := store.List()
	list[0] = 42
	if store.List()[0] != 1 {
		t.Fatalf("expected list to be a copy")
	}
}
