package db

import "testing"

func openTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	v, err := store.Get("gemini_api_key")
	if err != nil || v != "" {
		t.Fatalf("Get on empty store = %q, %v", v, err)
	}
	if err := store.Set("gemini_api_key", "AIza-one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ = store.Get("gemini_api_key"); v != "AIza-one" {
		t.Fatalf("Get = %q", v)
	}
	if err := store.Set("gemini_api_key", "AIza-two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _ = store.Get("gemini_api_key"); v != "AIza-two" {
		t.Fatalf("Get after overwrite = %q", v)
	}
	if err := store.Delete("gemini_api_key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if v, _ = store.Get("gemini_api_key"); v != "" {
		t.Fatalf("Get after delete = %q", v)
	}
}

func TestDeleteAbsentKey(t *testing.T) {
	store := openTestStore(t)
	if err := store.Delete("never-set"); err != nil {
		t.Fatalf("deleting an absent key should not error: %v", err)
	}
}
