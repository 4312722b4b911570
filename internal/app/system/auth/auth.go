// Package auth resolves the signed "token" cookie into a request identity.
//
// One verifier, two outcomes: LoadSessionUser attaches a *SessionUser to the
// request context when the cookie verifies and the account still exists, and
// leaves the request anonymous otherwise. Verification failures are logged,
// never surfaced to the client. Handlers that cannot serve an anonymous
// caller enforce that through the gates package, which chooses between a
// login redirect (pages) and a JSON 401/403 (API).
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TokenCookie is the session cookie name; the value is a compact HS256 JWT
// whose subject is the user's ObjectID hex.
const TokenCookie = "token"

// SessionUser is the identity attached to the request context. The verifier
// populates it from a fresh user lookup, never from claims alone, so role
// changes take effect on the next request.
type SessionUser struct {
	ID                 string
	Name               string
	Role               string
	SpecializationID   string
	SpecializationName string
	CollegeName        string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity attached by LoadSessionUser, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// UserResolver loads the full account for a verified token subject.
// Implemented by the user store; returns (nil, nil) when the account is gone.
type UserResolver interface {
	ResolveSessionUser(ctx context.Context, id primitive.ObjectID) (*SessionUser, error)
}

// TokenManager issues and verifies the session tokens carried in TokenCookie.
type TokenManager struct {
	signKey  []byte
	issuer   string
	ttl      time.Duration
	secure   bool
	resolver UserResolver
	log      *zap.Logger
}

// NewTokenManager builds a TokenManager. secure controls the cookie's Secure
// flag (true in prod). The resolver is set later via SetUserResolver because
// stores need the DB connection that only exists after ConnectDB.
func NewTokenManager(signKey, issuer string, ttl time.Duration, secure bool, logger *zap.Logger) *TokenManager {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &TokenManager{
		signKey: []byte(signKey),
		issuer:  issuer,
		ttl:     ttl,
		secure:  secure,
		log:     logger,
	}
}

// SetUserResolver wires the account lookup used on each verified request.
func (tm *TokenManager) SetUserResolver(r UserResolver) {
	tm.resolver = r
}

// Issue signs a token for userID and sets it as the session cookie.
func (tm *TokenManager) Issue(w http.ResponseWriter, userID primitive.ObjectID) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tm.issuer,
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.signKey)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(tm.ttl / time.Second),
		HttpOnly: true,
		Secure:   tm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (tm *TokenManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   tm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// verify parses and validates the raw cookie value, returning the subject ID.
func (tm *TokenManager) verify(raw string) (primitive.ObjectID, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return tm.signKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tm.issuer))
	if err != nil {
		return primitive.NilObjectID, err
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(sub)
}

// LoadSessionUser is the soft verifier: it attaches the resolved identity on
// success and continues anonymously on any failure (missing cookie, bad
// signature, expired token, vanished account).
func (tm *TokenManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := tm.verify(cookie.Value)
		if err != nil {
			tm.log.Debug("session token rejected", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if tm.resolver == nil {
			next.ServeHTTP(w, r)
			return
		}
		u, err := tm.resolver.ResolveSessionUser(r.Context(), userID)
		if err != nil {
			tm.log.Warn("session user lookup failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if u == nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// WithTestUser injects an identity directly, bypassing cookie verification.
// Handler tests use this instead of minting real tokens.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
