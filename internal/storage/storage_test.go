package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "recipes.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := sqliteStore.Close(); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	return map[string]Backend{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestBackendRoundTrip(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := backend.Get("savedRecipes"); err != nil || ok {
				t.Fatalf("Expected missing key, got ok=%v err=%v", ok, err)
			}

			if err := backend.Set("savedRecipes", []byte(`[{"id":1}]`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := backend.Set("savedRecipes", []byte(`[]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			value, ok, err := backend.Get("savedRecipes")
			if err != nil || !ok {
				t.Fatalf("get: ok=%v err=%v", ok, err)
			}
			if string(value) != "[]" {
				t.Errorf("Expected [], got %s", value)
			}
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	value := []byte("abc")
	if err := store.Set("k", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'x'

	got, _, _ := store.Get("k")
	if string(got) != "abc" {
		t.Errorf("Expected abc, got %s", got)
	}

	got[0] = 'y'
	again, _, _ := store.Get("k")
	if string(again) != "abc" {
		t.Errorf("Expected stored value to be unaffected by callers, got %s", again)
	}
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := store.Set("savedRecipes", []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "savedRecipes.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected [], got %s", data)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("Expected no temp files, got %v", leftovers)
	}
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, key := range []string{"", "../escape", "a/b"} {
		if err := store.Set(key, []byte("x")); err == nil {
			t.Errorf("Expected error for key %q", key)
		}
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set("savedRecipes", []byte(`[{"id":2}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	value, ok, err := second.Get("savedRecipes")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":2}]` {
		t.Errorf("Expected stored value, got %s", value)
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open("redis", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Expected ErrUnknownBackend, got %v", err)
	}
	if _, err := OpenSQLite(""); err == nil {
		t.Error("Expected empty path error")
	}

	backend, err := Open("memory", "")
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := backend.(*MemoryStore); !ok {
		t.Errorf("Expected *MemoryStore, got %T", backend)
	}
}
