// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	bookmarksfeature "github.com/k36p/Midad/internal/app/features/bookmarks"
	collegesfeature "github.com/k36p/Midad/internal/app/features/colleges"
	coursesfeature "github.com/k36p/Midad/internal/app/features/courses"
	errorsfeature "github.com/k36p/Midad/internal/app/features/errors"
	healthfeature "github.com/k36p/Midad/internal/app/features/health"
	homefeature "github.com/k36p/Midad/internal/app/features/home"
	loginfeature "github.com/k36p/Midad/internal/app/features/login"
	logoutfeature "github.com/k36p/Midad/internal/app/features/logout"
	notificationsfeature "github.com/k36p/Midad/internal/app/features/notifications"
	specializationsfeature "github.com/k36p/Midad/internal/app/features/specializations"
	toolsfeature "github.com/k36p/Midad/internal/app/features/tools"
	usersfeature "github.com/k36p/Midad/internal/app/features/users"
	notificationstore "github.com/k36p/Midad/internal/app/store/notifications"
	userstore "github.com/k36p/Midad/internal/app/store/users"
	"github.com/k36p/Midad/internal/app/system/auth"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Midad initializes the template engine,
// installs the token verifier middleware, and registers the portal's
// feature routes: home, login, colleges, specializations, courses,
// notifications, bookmarks, users, and the PDF tools.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	// Token manager for the "token" cookie. The verifier resolves the
	// full session user (specialization and college included) through
	// the user store on every request.
	tokens := auth.NewTokenManager(appCfg.TokenKey, "midad", appCfg.TokenTTL, secure, logger)
	tokens.SetUserResolver(userstore.New(deps.MidadMongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Storage backend for notification attachments. S3 config keys are
	// reserved; only the local backend is wired.
	media, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global token middleware: attaches SessionUser to context when the
	// cookie verifies; otherwise the request proceeds anonymous.
	r.Use(tokens.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MidadMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Uploaded notification attachments
	r.Handle(appCfg.StorageLocalURL+"/*", http.StripPrefix(appCfg.StorageLocalURL+"/",
		http.FileServer(http.Dir(appCfg.StorageLocalPath))))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.MidadMongoDatabase, errLog, logger)
	homefeature.Register(r, homeHandler)

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MidadMongoDatabase, tokens, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/auth", loginfeature.AuthRoutes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(tokens, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Catalog
	collegesHandler := collegesfeature.NewHandler(deps.MidadMongoDatabase, errLog, logger)
	collegesfeature.Register(r, collegesHandler)

	specializationsHandler := specializationsfeature.NewHandler(deps.MidadMongoDatabase, errLog, logger)
	specializationsfeature.Register(r, specializationsHandler)

	coursesHandler := coursesfeature.NewHandler(deps.MidadMongoDatabase, errLog, logger)
	coursesfeature.Register(r, coursesHandler)

	// Notifications with the configured cooldown window
	notifications := notificationstore.New(deps.MidadMongoDatabase, appCfg.NotifyCooldown)
	notificationsHandler := notificationsfeature.NewHandler(deps.MidadMongoDatabase, notifications, media, errLog, logger)
	notificationsfeature.Register(r, notificationsHandler)

	// Bookmarks and accounts
	bookmarksHandler := bookmarksfeature.NewHandler(deps.MidadMongoDatabase, errLog, logger)
	bookmarksfeature.Register(r, bookmarksHandler)

	usersHandler := usersfeature.NewHandler(deps.MidadMongoDatabase, errLog, logger)
	usersfeature.Register(r, usersHandler)

	// Stateless PDF tools
	toolsHandler := toolsfeature.NewHandler(errLog, logger)
	toolsfeature.Register(r, toolsHandler)

	// Unknown paths render the 404 page.
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
