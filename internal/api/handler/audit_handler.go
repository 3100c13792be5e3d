package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/ports"
)

type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Recent returns the newest audit events first.
//
// @Summary      Recent audit events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max events (1-200, default 50)"
// @Success      200    {array}   domain.AuditEvent
// @Failure      400    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return domain.NewError(domain.ErrValidation, "limit must be an integer")
		}
	}

	events, err := h.auditService.Recent(c.Request().Context(), actor, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
