package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/auth"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserStaff = "X-User-Staff"
)

// Identity trusts the identity headers set by the gateway. A missing user id
// is an anonymous caller; an unparsable staff flag counts as false.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := auth.Identity{UserID: strings.TrimSpace(r.Header.Get(HeaderUserID))}
		if id.UserID != "" {
			id.Staff, _ = strconv.ParseBool(strings.TrimSpace(r.Header.Get(HeaderUserStaff)))
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}
