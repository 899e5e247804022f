package middleware

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"

	"github.com/wingbank/appconfig/pkg/metrics"
)

// RoleResolver maps an authenticated subject to the roles it holds.
type RoleResolver func(ctx context.Context, user string) ([]string, error)

// RBAC allows a request when the user itself or any of their roles matches a
// policy rule. Denials are counted so a spike shows up on the dashboard.
func RBAC(enf *casbin.Enforcer, resolve RoleResolver) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, w := humachi.Unwrap(ctx)
		sub := UserFromContext(r.Context())
		if allowed(r.Context(), enf, resolve, sub, r.URL.Path, r.Method) {
			next(ctx)
			return
		}
		metrics.AccessDenied.WithLabelValues(r.Method).Inc()
		http.Error(w, "forbidden", http.StatusForbidden)
	}
}

func allowed(ctx context.Context, enf *casbin.Enforcer, resolve RoleResolver, sub, obj, act string) bool {
	subjects := []string{sub}
	if resolve != nil {
		if roles, err := resolve(ctx, sub); err == nil {
			subjects = append(subjects, roles...)
		}
	}
	for _, s := range subjects {
		if ok, _ := enf.Enforce(s, obj, act); ok {
			return true
		}
	}
	return false
}
