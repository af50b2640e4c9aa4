package middleware

import (
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !sess.IsAdmin() {
			response.Forbidden(w, "Admin privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ApproverOnly admits admins and managers; only they decide leave requests.
func ApproverOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !sess.CanApprove() {
			response.Forbidden(w, "Approver privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
