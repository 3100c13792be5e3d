package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/user-admin/internal/api/middleware"
	"github.com/teamroster/user-admin/internal/core/domain"
)

// ctxActor returns the authenticated actor. Absent claims mean the route was
// mounted without the Auth middleware, which is reported as unauthenticated.
func ctxActor(c echo.Context) (domain.Actor, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return claims.Actor(), nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(domain.ErrValidation, "Invalid user id")
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewError(domain.ErrValidation, "invalid payload")
	}
	return c.Validate(req)
}
