package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nexus/internal/domain"
)

// cheap scrypt cost for tests
var testKDF = kdfParams{N: 1 << 10, R: 8, P: 1}

func backends(t *testing.T) map[string]domain.KeyValueStore {
	t.Helper()
	dir := t.TempDir()

	db, err := NewSQLiteKV(filepath.Join(dir, "session.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return map[string]domain.KeyValueStore{
		"memory": NewMemoryKV(),
		"file":   NewFileKV(filepath.Join(dir, "session.json")),
		"sealed": NewFileKV(filepath.Join(dir, "session.enc"), WithPassphrase("pass"), withKDF(testKDF)),
		"sqlite": db,
	}
}

func TestKeyValue_SetGetDelete(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("missing"); err != nil || ok {
				t.Fatalf("get missing: ok=%v err=%v", ok, err)
			}
			if err := kv.Set("a", []byte("1")); err != nil {
				t.Fatalf("set a: %v", err)
			}
			if err := kv.Set("a", []byte("2")); err != nil {
				t.Fatalf("overwrite a: %v", err)
			}
			if err := kv.Set("b", []byte("3")); err != nil {
				t.Fatalf("set b: %v", err)
			}
			got, ok, err := kv.Get("a")
			if err != nil || !ok || string(got) != "2" {
				t.Fatalf("get a = %q ok=%v err=%v", got, ok, err)
			}
			if err := kv.Delete("a", "b", "never-set"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := kv.Get("b"); ok {
				t.Fatal("b still present after delete")
			}
		})
	}
}

func TestCredentials_RoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			creds := NewCredentials(kv)
			user := domain.UserProfile{ID: 7, FullName: "Tendai M", Email: "t@example.com"}

			if err := creds.SaveCredentials("tok-123", user); err != nil {
				t.Fatalf("save: %v", err)
			}
			tok, ok, err := creds.LoadToken()
			if err != nil || !ok || tok != "tok-123" {
				t.Fatalf("token = %q ok=%v err=%v", tok, ok, err)
			}
			got, ok, err := creds.LoadUser()
			if err != nil || !ok || got != user {
				t.Fatalf("user = %+v ok=%v err=%v", got, ok, err)
			}

			if err := creds.ClearCredentials(); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, ok, _ := creds.LoadToken(); ok {
				t.Fatal("token present after clear")
			}
			if _, ok, _ := creds.LoadUser(); ok {
				t.Fatal("user present after clear")
			}
		})
	}
}

func TestFileKV_SealedHidesToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	kv := NewFileKV(path, WithPassphrase("correct"), withKDF(testKDF))

	if err := NewCredentials(kv).SaveCredentials("secret-token", domain.UserProfile{ID: 1, Email: "a@b.c"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(raw), "secret-token") {
		t.Fatal("token stored in clear text")
	}

	wrong := NewFileKV(path, WithPassphrase("wrong"))
	if _, _, err := wrong.Get(TokenKey); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestFileKV_RemovesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	kv := NewFileKV(path)

	if err := kv.Set(TokenKey, []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if err := kv.Delete(TokenKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err = %v", err)
	}
}
