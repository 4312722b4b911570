// Package flash carries one-shot notices across the dashboard's
// post-redirect-get flows using a signed cookie session.
package flash

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

var (
	store       *sessions.CookieStore
	sessionName = "midad-flash"
)

// Init sets up the flash cookie store under the configured cookie name.
// An empty key gets a random one, which is fine for dev but drops flashes
// across restarts; production config must supply a stable key.
func Init(name, sessionKey string, secure bool, logger *zap.Logger) {
	if name != "" {
		sessionName = name
	}
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("flash session key not configured, generated a random one")
	}
	store = sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Notice stores a success notice for the next page render.
func Notice(w http.ResponseWriter, r *http.Request, msg string) {
	add(w, r, "notice", msg)
}

// Alert stores an error notice for the next page render.
func Alert(w http.ResponseWriter, r *http.Request, msg string) {
	add(w, r, "alert", msg)
}

func add(w http.ResponseWriter, r *http.Request, kind, msg string) {
	if store == nil {
		return
	}
	sess, _ := store.Get(r, sessionName)
	sess.AddFlash(msg, kind)
	_ = sess.Save(r, w)
}

// Pop returns and clears the pending notices for this request.
func Pop(w http.ResponseWriter, r *http.Request) (notices, alerts []string) {
	if store == nil {
		return nil, nil
	}
	sess, _ := store.Get(r, sessionName)
	for _, f := range sess.Flashes("notice") {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	for _, f := range sess.Flashes("alert") {
		if s, ok := f.(string); ok {
			alerts = append(alerts, s)
		}
	}
	_ = sess.Save(r, w)
	return notices, alerts
}
