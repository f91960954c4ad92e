package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"ecomstore/internal/models"
	"ecomstore/internal/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userContextKey = contextKey("authenticatedUser")

// authenticatedUser is the identity resolved from a bearer token. Handlers
// trust it unconditionally.
type authenticatedUser struct {
	ID    primitive.ObjectID
	Email string
	Name  string
	Role  string
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth resolves the bearer token into an identity and stores it in the
// request context.
func (app *application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, status, message := app.authenticate(r)
		if user == nil {
			app.clientError(w, status, message)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireRole is requireAuth plus a role check.
func (app *application) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if app.contextUser(r).Role != role {
			app.clientError(w, http.StatusForbidden, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) authenticate(r *http.Request) (*authenticatedUser, int, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, http.StatusUnauthorized, "No token, authorization denied"
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, http.StatusUnauthorized, "Invalid token format. Use 'Bearer <token>'"
	}

	claims, err := token.Parse(app.jwtSecret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			return nil, http.StatusUnauthorized, "Token expired"
		}
		return nil, http.StatusUnauthorized, "Invalid token"
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid token"
	}

	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}
	return &authenticatedUser{
		ID:    id,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, 0, ""
}

// contextUser returns the identity requireAuth stored; it panics if called
// from a handler that is not behind requireAuth.
func (app *application) contextUser(r *http.Request) *authenticatedUser {
	user, ok := r.Context().Value(userContextKey).(*authenticatedUser)
	if !ok {
		panic("missing authenticated user in request context")
	}
	return user
}
