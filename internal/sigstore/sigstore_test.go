package sigstore

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{"sqlite": sq, "memory": NewMemStore()}
}

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, "utest:a"); err != nil || ok {
				t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
			}

			if err := s.Put(ctx, "utest:a", []byte{1, 2, 3}); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := s.Put(ctx, "utest:a", []byte{4, 5}); err != nil {
				t.Fatalf("Put() overwrite error = %v", err)
			}

			got, ok, err := s.Get(ctx, "utest:a")
			if err != nil || !ok {
				t.Fatalf("Get() = ok %v, err %v", ok, err)
			}
			if !bytes.Equal(got, []byte{4, 5}) {
				t.Errorf("Get() = %v, want [4 5]", got)
			}
		})
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Put(ctx, "k", []byte("sig")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != "sig" {
		t.Errorf("Get() after reopen = %q, %v, %v", got, ok, err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestMemStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	sig := []byte{1}
	_ = m.Put(ctx, "k", sig)
	sig[0] = 9

	got, _, _ := m.Get(ctx, "k")
	if got[0] != 1 {
		t.Error("MemStore kept a reference to the caller's slice")
	}
}
