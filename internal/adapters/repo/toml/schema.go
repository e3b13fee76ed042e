package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported memory schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	SessionID   string            `toml:"session_id"`
	UserID      string            `toml:"user_id"`
	Request     string            `toml:"request"`
	Route       string            `toml:"route"`
	Response    string            `toml:"response,omitempty"`
	ActiveHours map[string]int    `toml:"active_hours,omitempty"`
	Slots       map[string]string `toml:"slots,omitempty"`
	CapturedAt  string            `toml:"captured_at"`
}
