package middleware

import (
	"fmt"
	"net/http"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v4"

	"github.com/soleterra-wellness/sw-booking/internal/pkg/jwt"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/session"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/response"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

const (
	audienceCustomer = "customerapp"
	audienceAdmin    = "adminapp"
)

type sessionClaims struct {
	gojwt.RegisteredClaims
}

// CustomerSession verifies the bearer token and resolves the customer's
// session, attaching the account to the request context.
type CustomerSession struct {
	jsonWebToken *jwt.JSONWebToken
	store        session.Store
}

func NewCustomerSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *CustomerSession {
	return &CustomerSession{
		jsonWebToken: jsonWebToken,
		store:        store,
	}
}

func (m *CustomerSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return verify(m.jsonWebToken, m.store, audienceCustomer, next)
}

// AdminSession is the adminapp counterpart of CustomerSession.
type AdminSession struct {
	jsonWebToken *jwt.JSONWebToken
	store        session.Store
}

func NewAdminSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *AdminSession {
	return &AdminSession{
		jsonWebToken: jsonWebToken,
		store:        store,
	}
}

func (m *AdminSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return verify(m.jsonWebToken, m.store, audienceAdmin, next)
}

func verify(jsonWebToken *jwt.JSONWebToken, store session.Store, audience string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "authorization bearer token is required",
			})
			return
		}

		claims := &sessionClaims{}
		if err := jsonWebToken.Parse(token, claims); err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})
			return
		}

		acc, err := store.Get(ctx, fmt.Sprintf("%s:%s", audience, claims.Subject))
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})
			return
		}

		if acc.Audience != audience {
			response.JSON(w, http.StatusForbidden, response.RESTEnvelope{
				Status:  status.FORBIDDEN,
				Message: "session does not belong to this application",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(session.SetAccountToCtx(ctx, acc)))
	}
}
