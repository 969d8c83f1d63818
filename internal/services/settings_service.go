package services

import "strings"

// apiKeySetting is the settings slot holding the recognition API key.
const apiKeySetting = "gemini_api_key"

// SettingsStore abstracts the persistent key/value settings table.
type SettingsStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// SettingsService owns the credential lifecycle: read at startup, overwritten
// on save, removed on explicit clear.
type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// APIKey returns the stored recognition API key, or "" when none is saved.
func (s *SettingsService) APIKey() (string, error) {
	return s.store.Get(apiKeySetting)
}

func (s *SettingsService) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return NewInvalidError("apikey.required")
	}
	return s.store.Set(apiKeySetting, key)
}

func (s *SettingsService) ClearAPIKey() error {
	return s.store.Delete(apiKeySetting)
}
