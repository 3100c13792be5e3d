package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/pkg/metrics"
)

// RBAC admits only actors holding one of allowedRoles. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	msg := "Access denied. Insufficient permissions."
	if len(allowedRoles) == 1 {
		msg = fmt.Sprintf("Access denied. %s privileges required.", allowedRoles[0])
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[claims.Role]; !ok {
				metrics.PolicyDenialsTotal.WithLabelValues("rbac").Inc()
				return domain.NewError(domain.ErrForbidden, msg)
			}
			return next(c)
		}
	}
}
