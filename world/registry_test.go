package world

import (
	"errors"
	"testing"
)

func TestRegistryAssignsSequentialIDs(t *testing.T) {
	t.Parallel()
	r := NewRegistry[string]()
	names := []string{"first", "second", "third"}
	for i, name := range names {
		id, err := r.Register(name, name+" def")
		if err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
		if id != uint32(i) {
			t.Errorf("Register(%q) = id %d, want %d", name, id, i)
		}
	}
	if r.Len() != len(names) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(names))
	}
	for i, name := range names {
		id, def, err := r.ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if id != uint32(i) || def != name+" def" {
			t.Errorf("ByName(%q) = (%d, %q), want (%d, %q)", name, id, def, i, name+" def")
		}
		if got := r.Name(uint32(i)); got != name {
			t.Errorf("Name(%d) = %q, want %q", i, got, name)
		}
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	t.Parallel()
	r := NewRegistry[int]()
	if _, err := r.Register("twice", 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Register("twice", 2); err == nil {
		t.Error("registering a name twice did not return an error")
	}
}

func TestRegistryNotRegistered(t *testing.T) {
	t.Parallel()
	r := NewRegistry[int]()
	if _, _, err := r.ByName("missing"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("ByName of an unknown name returned %v, want ErrNotRegistered", err)
	}
	if _, err := r.ByID(0); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("ByID of an unknown id returned %v, want ErrNotRegistered", err)
	}
	if name := r.Name(7); name != "" {
		t.Errorf("Name of an unknown id returned %q, want empty", name)
	}
}

func TestRegistryAll(t *testing.T) {
	t.Parallel()
	r := NewRegistry[int]()
	for i := 0; i < 4; i++ {
		if _, err := r.Register(string(rune('a'+i)), i*10); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	next := uint32(0)
	for id, def := range r.All() {
		if id != next {
			t.Fatalf("All yielded id %d, want %d", id, next)
		}
		if def != int(id)*10 {
			t.Errorf("All yielded def %d for id %d, want %d", def, id, id*10)
		}
		next++
	}
	if next != 4 {
		t.Errorf("All yielded %d pairs, want 4", next)
	}
}
