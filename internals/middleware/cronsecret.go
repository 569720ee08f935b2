package middle

import (
	"crypto/subtle"
	"net/http"

	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

// CronSecret guards the externally triggered job endpoints. The scheduler
// sends the shared secret in the x-cron-secret header; anything else is
// rejected before any monitor is touched.
func CronSecret(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())

			got := r.Header.Get("x-cron-secret")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "invalid cron secret")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
