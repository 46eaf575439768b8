package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/services"
)

type ctxKey int

const userKey ctxKey = iota

// Authenticator resolves bearer tokens to users.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AppUser, error)
}

// Auth guards handlers behind a bearer token and a minimum role.
type Auth struct {
	Users Authenticator
	Log   *zap.Logger
}

// CurrentUser returns the user set by the auth middleware.
func CurrentUser(r *http.Request) *models.AppUser {
	u, _ := r.Context().Value(userKey).(*models.AppUser)
	return u
}

func withUser(r *http.Request, u *models.AppUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (a *Auth) require(allowed func(*models.AppUser) bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, r, a.Log, fmt.Errorf("%w: missing bearer token", services.ErrUnauthorized))
			return
		}
		user, err := a.Users.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, r, a.Log, err)
			return
		}
		if !allowed(user) {
			writeError(w, r, a.Log, fmt.Errorf("%w: role %q may not access this resource", services.ErrForbidden, user.Role))
			return
		}
		next(w, withUser(r, user))
	}
}

func (a *Auth) UserOnly(next http.HandlerFunc) http.HandlerFunc {
	return a.require(func(u *models.AppUser) bool { return models.ValidRole(u.Role) }, next)
}

func (a *Auth) StaffOnly(next http.HandlerFunc) http.HandlerFunc {
	return a.require((*models.AppUser).IsStaff, next)
}

func (a *Auth) AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return a.require((*models.AppUser).IsAdmin, next)
}
