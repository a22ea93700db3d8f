package middleware

import (
	"net/http"

	apperrors "venus-backend/pkg/errors"
)

// AdminPasswordHeader carries the shared administrator secret
const AdminPasswordHeader = "X-Admin-Password"

// Authenticator checks the administrator secret
type Authenticator interface {
	Authenticate(input string) error
}

// RequireAdmin rejects requests whose X-Admin-Password header does not match
func RequireAdmin(auth Authenticator, errHandler *apperrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authenticate(r.Header.Get(AdminPasswordHeader)); err != nil {
				errHandler.Handle(w, r, apperrors.NewUnauthorizedError("Invalid Password").WithCause(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
