package model

// ================ Config ================
type SessionConfig struct {
	Backend string `envconfig:"SESSION_BACKEND" default:"redis"`
	TTL     string `envconfig:"SESSION_TTL" default:"24h"`
}
