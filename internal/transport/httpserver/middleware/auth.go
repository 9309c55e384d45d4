package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"rental-app-go/internal/config"
	"rental-app-go/pkg/logger"
)

// User is the resolved caller identity: the auth system has already
// verified who they are and which role flags they hold.
type User struct {
	ID       string
	Email    string
	Name     string
	IsOwner  bool
	IsTenant bool
}

// Claims is the access-token payload minted by the identity provider.
type Claims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsOwner  bool   `json:"is_owner"`
	IsTenant bool   `json:"is_tenant"`
	jwt.RegisteredClaims
}

type IdentitySaver interface {
	UpsertIdentity(ctx context.Context, id, email, name string, isOwner, isTenant bool) error
}

type Auth struct {
	secret     []byte
	identities IdentitySaver
	skipAuth   bool
	mockUser   User
	log        logger.Logger
}

func NewAuth(cfg config.AuthConfig, identities IdentitySaver, log logger.Logger) *Auth {
	return &Auth{
		secret:     []byte(cfg.JWTSecret),
		identities: identities,
		skipAuth:   cfg.SkipAuth,
		mockUser: User{
			ID:       strings.TrimSpace(cfg.MockUserID),
			Email:    strings.TrimSpace(cfg.MockUserEmail),
			Name:     strings.TrimSpace(cfg.MockUserName),
			IsOwner:  cfg.MockUserOwner,
			IsTenant: cfg.MockUserTenant,
		},
		log: log,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockUser.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			a.admit(w, r, next, a.mockUser)
			return
		}

		if len(a.secret) == 0 {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !parsed.Valid || claims.Subject == "" {
			unauthorized(w)
			return
		}

		a.admit(w, r, next, User{
			ID:       claims.Subject,
			Email:    claims.Email,
			Name:     claims.Name,
			IsOwner:  claims.IsOwner,
			IsTenant: claims.IsTenant,
		})
	})
}

func (a *Auth) admit(w http.ResponseWriter, r *http.Request, next http.Handler, user User) {
	if a.identities != nil {
		if err := a.identities.UpsertIdentity(r.Context(), user.ID, user.Email, user.Name, user.IsOwner, user.IsTenant); err != nil {
			a.log.BusinessError("auth: upsert identity failed", err, "user_id", user.ID)
		}
	}
	next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

type contextKey int

const userKey contextKey = iota

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
