// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, env). AppConfig is everything specific to Midad.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Token cookie configuration. TokenKey signs the JWTs carried in
	// the "token" cookie; TokenTTL is how long an issued token lives.
	TokenKey string
	TokenTTL time.Duration

	// Flash cookie configuration (gorilla sessions)
	SessionKey  string
	SessionName string

	// File storage for notification attachments
	StorageType      string // "local" (S3 keys reserved, not wired)
	StorageLocalPath string
	StorageLocalURL  string

	// Notification cooldown: identical content within this window is
	// rejected with the "wait for reply" message.
	NotifyCooldown time.Duration

	// Admin bootstrap: when set, an admin account with this login is
	// created (or promoted) on startup.
	AdminLogin    string
	AdminPassword string
	AdminName     string
}
