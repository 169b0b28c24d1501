package middleware

import "context"

type contextKey string

const (
	ctxAdminSubject contextKey = "admin_subject"
)

// AdminSubjectFromContext returns the verified admin token subject, or ""
// when the request did not pass the admin auth middleware.
func AdminSubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(ctxAdminSubject).(string)
	return subject
}
