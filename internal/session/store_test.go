package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func storeUnderTest(t *testing.T, name string) Store {
	t.Helper()
	switch name {
	case "memory":
		return NewMemoryStore()
	case "file":
		return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	default:
		t.Fatalf("unknown store %q", name)
		return nil
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for _, name := range []string{"memory", "file"} {
		t.Run(name, func(t *testing.T) {
			store := storeUnderTest(t, name)
			ctx := context.Background()

			if _, err := store.Load(ctx); !errors.Is(err, ErrNoSession) {
				t.Fatalf("expected ErrNoSession on empty store, got %v", err)
			}

			want := Session{Credential: "tok-123", Role: RoleFrontDesk, DisplayName: "frontdesk"}
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}

			if err := store.Clear(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, err := store.Load(ctx); !errors.Is(err, ErrNoSession) {
				t.Errorf("expected ErrNoSession after clear, got %v", err)
			}

			// Clearing an already-empty store must not fail.
			if err := store.Clear(ctx); err != nil {
				t.Errorf("clear on empty store: %v", err)
			}
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	first := NewFileStore(path)
	want := Session{Credential: "tok", Role: RoleDoctor, DisplayName: "drsmith"}
	if err := first.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := NewFileStore(path)
	got, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt session file")
	}
}
