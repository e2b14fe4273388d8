package cache

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *QuarantineStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quarantine.db")
	store, err := NewQuarantineStore(path)
	if err != nil {
		t.Fatalf("NewQuarantineStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestQuarantineStore_AddThenContains(t *testing.T) {
	store := openTestStore(t)
	if store.Contains("иван петров") {
		t.Fatal("expected alias not quarantined before Add")
	}
	if err := store.Add("иван петров"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !store.Contains("иван петров") {
		t.Error("expected alias quarantined after Add")
	}
}

func TestQuarantineStore_Remove(t *testing.T) {
	store := openTestStore(t)
	_ = store.Add("алиас")
	if err := store.Remove("алиас"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if store.Contains("алиас") {
		t.Error("expected alias no longer quarantined after Remove")
	}
}

func TestQuarantineStore_RemoveNonexistentIsNoOp(t *testing.T) {
	store := openTestStore(t)
	if err := store.Remove("никогда не добавлялся"); err != nil {
		t.Errorf("expected no error removing a never-added alias, got %v", err)
	}
}

func TestQuarantineStore_AllSorted(t *testing.T) {
	store := openTestStore(t)
	_ = store.Add("второй")
	_ = store.Add("первый")

	got, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	want := []string{"первый", "второй"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQuarantineStore_AddIdempotent(t *testing.T) {
	store := openTestStore(t)
	_ = store.Add("повтор")
	_ = store.Add("повтор")

	got, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected idempotent Add to produce 1 entry, got %v", got)
	}
}
