// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Midad.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_key, etc.
//   - Environment variables: MIDAD_MONGO_URI, MIDAD_TOKEN_KEY, etc.
//   - Command-line flags: --mongo_uri, --token_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "midad", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT signing key for the token cookie (must be strong in production)"},
	{Name: "token_ttl", Default: "72h", Desc: "Token cookie lifetime (e.g., 72h, 24h)"},

	{Name: "session_key", Default: "", Desc: "Flash cookie signing key (random per-process key when blank)"},
	{Name: "session_name", Default: "midad-flash", Desc: "Flash cookie name"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' ('s3' reserved)"},
	{Name: "storage_local_path", Default: "./uploads/media", Desc: "Local storage path for notification attachments"},
	{Name: "storage_local_url", Default: "/files/media", Desc: "URL prefix for serving stored files"},

	{Name: "notify_cooldown", Default: "10m", Desc: "Window within which an identical notification is rejected"},

	// Admin bootstrap
	{Name: "admin_login", Default: "", Desc: "Login of the bootstrap admin account (created or promoted on startup)"},
	{Name: "admin_password", Default: "", Desc: "Password for the bootstrap admin (only used when creating)"},
	{Name: "admin_name", Default: "مشرف النظام", Desc: "Display name for the bootstrap admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer (WAFFLE_* variables);
// AppConfig is Midad's own (MIDAD_* variables), merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MIDAD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenKey: appValues.String("token_key"),
		TokenTTL: appValues.Duration("token_ttl", 72*time.Hour),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		NotifyCooldown: appValues.Duration("notify_cooldown", 10*time.Minute),

		AdminLogin:    appValues.String("admin_login"),
		AdminPassword: appValues.String("admin_password"),
		AdminName:     appValues.String("admin_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Midad validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and refuses the dev token key
// outside dev mode.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.TokenKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("token_key must be overridden in production")
	}

	if appCfg.AdminLogin != "" && appCfg.AdminPassword == "" {
		logger.Warn("admin_login set without admin_password; bootstrap admin will only be promoted, never created")
	}

	return nil
}
