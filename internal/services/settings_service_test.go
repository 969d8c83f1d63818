package services

import "testing"

type memorySettings map[string]string

func (m memorySettings) Get(key string) (string, error) { return m[key], nil }
func (m memorySettings) Set(key, value string) error    { m[key] = value; return nil }
func (m memorySettings) Delete(key string) error        { delete(m, key); return nil }

func TestSettingsAPIKeyLifecycle(t *testing.T) {
	svc := NewSettingsService(memorySettings{})

	key, err := svc.APIKey()
	if err != nil || key != "" {
		t.Fatalf("initial APIKey = %q, %v", key, err)
	}
	if err := svc.SaveAPIKey("  AIza-test  "); err != nil {
		t.Fatalf("SaveAPIKey: %v", err)
	}
	key, _ = svc.APIKey()
	if key != "AIza-test" {
		t.Fatalf("APIKey = %q, want trimmed value", key)
	}
	if err := svc.SaveAPIKey("AIza-next"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if key, _ = svc.APIKey(); key != "AIza-next" {
		t.Fatalf("APIKey after overwrite = %q", key)
	}
	if err := svc.ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey: %v", err)
	}
	if key, _ = svc.APIKey(); key != "" {
		t.Fatalf("APIKey after clear = %q", key)
	}
}

func TestSaveAPIKeyEmptyRejected(t *testing.T) {
	svc := NewSettingsService(memorySettings{})
	if err := svc.SaveAPIKey("   "); err == nil {
		t.Fatal("blank key must be rejected")
	}
}
