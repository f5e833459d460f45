package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// auditHandler handles HTTP requests for the audit trail.
type auditHandler struct {
	auditService  portssvc.AuditSvcFacade
	retentionDays int
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(as portssvc.AuditSvcFacade, retentionDays int) *auditHandler {
	return &auditHandler{
		auditService:  as,
		retentionDays: retentionDays,
	}
}

// registerAuditRoutes registers routes related to the audit trail.
func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSvcFacade, retentionDays int) {
	h := newAuditHandler(as, retentionDays)

	audit := rg.Group("/audit")
	{
		audit.GET("", h.listAll)
		audit.GET("/users/:id", h.listByUser)
		audit.GET("/range", h.listByRange)
		audit.DELETE("/purge", h.purge)
	}
}

// listAll godoc
// @Summary List the audit trail
// @Tags audit
// @Produce json
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) listAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.auditService.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve audit trail"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditListResponse(entries))
}

// listByUser godoc
// @Summary List one actor's audit entries
// @Tags audit
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit/users/{id} [get]
func (h *auditHandler) listByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.auditService.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to list audit entries by user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve audit trail"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditListResponse(entries))
}

// listByRange godoc
// @Summary List audit entries in a date range
// @Tags audit
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit/range [get]
func (h *auditHandler) listByRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseRangeParams(c)
	if !ok {
		return
	}

	entries, err := h.auditService.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list audit entries by range", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve audit trail"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditListResponse(entries))
}

// purge godoc
// @Summary Purge old audit entries
// @Description Deletes entries older than the given number of days (default: configured retention). Idempotent.
// @Tags audit
// @Produce json
// @Param days query int false "Age threshold in days"
// @Success 200 {object} dto.PurgeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit/purge [delete]
func (h *auditHandler) purge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	days := h.retentionDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "'days' must be a positive integer"})
			return
		}
		days = parsed
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	deleted, err := h.auditService.PurgeOlderThan(c.Request.Context(), cutoff)
	if err != nil {
		logger.Error("Failed to purge audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purge audit trail"})
		return
	}

	c.JSON(http.StatusOK, dto.PurgeResponse{
		Deleted: deleted,
		Cutoff:  cutoff.Format(dto.DateLayout),
	})
}
