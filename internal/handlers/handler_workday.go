package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// workdayHandler handles HTTP requests for the workday ledger.
type workdayHandler struct {
	workdayService portssvc.WorkdaySvcFacade
	carryService   portssvc.CarryForwardSvc
}

// newWorkdayHandler creates a new workdayHandler.
func newWorkdayHandler(ws portssvc.WorkdaySvcFacade, cs portssvc.CarryForwardSvc) *workdayHandler {
	return &workdayHandler{
		workdayService: ws,
		carryService:   cs,
	}
}

// registerWorkdayRoutes registers routes related to workdays.
func registerWorkdayRoutes(rg *gin.RouterGroup, ws portssvc.WorkdaySvcFacade, cs portssvc.CarryForwardSvc) {
	h := newWorkdayHandler(ws, cs)

	workdays := rg.Group("/workdays")
	{
		workdays.POST("/checkin", h.checkin)
		workdays.POST("/checkout", h.checkout)
		workdays.GET("/mine", h.myHistory)
		workdays.GET("/carry-candidates", h.carryCandidates)
		workdays.GET("/pending", h.listPending)
		workdays.GET("/approved", h.listApproved)
		workdays.GET("/supervised", h.listSupervised)
		workdays.GET("/stats", h.myStats)
		workdays.PATCH("/:id/approve", h.approve)
		workdays.PATCH("/:id/reject", h.reject)
	}
}

// checkin godoc
// @Summary Open a workday
// @Description Registers a check-in with planned tasks and optional carried tasks from the previous day.
// @Tags workdays
// @Accept json
// @Produce json
// @Param checkin body dto.CheckinRequest true "Check-in details"
// @Success 201 {object} dto.WorkdayResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Workday already exists for the date"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/checkin [post]
func (h *workdayHandler) checkin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for checkin", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	workday, err := h.workdayService.Checkin(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "A workday already exists for this date"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to check in", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check in"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkdayResponse(workday))
}

// checkout godoc
// @Summary Close a workday
// @Description Registers the check-out on an open workday.
// @Tags workdays
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutRequest true "Check-out details"
// @Success 200 {object} dto.WorkdayResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Workday already closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/checkout [post]
func (h *workdayHandler) checkout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	workday, err := h.workdayService.Checkout(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Workday not found"})
		} else if errors.Is(err, apperrors.ErrAlreadyClosed) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Workday is already checked out"})
		} else {
			logger.Error("Failed to check out", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check out"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayResponse(workday))
}

// myHistory godoc
// @Summary Get my workday history
// @Description Lists the authenticated user's workdays with activities and comments, newest first.
// @Tags workdays
// @Produce json
// @Success 200 {array} dto.WorkdayResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/mine [get]
func (h *workdayHandler) myHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	workdays, err := h.workdayService.GetUserHistory(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list workday history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayListResponse(workdays))
}

// carryCandidates godoc
// @Summary List carry-forward candidates
// @Description Lists the pending activities of the user's last closed workday, available for carry-over at check-in.
// @Tags workdays
// @Produce json
// @Success 200 {array} dto.ActivityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/carry-candidates [get]
func (h *workdayHandler) carryCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	candidates, err := h.carryService.ListPendingCandidates(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list carry candidates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve carry candidates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(candidates))
}

// listPending godoc
// @Summary List workdays pending approval
// @Tags workdays
// @Produce json
// @Success 200 {array} dto.WorkdayResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/pending [get]
func (h *workdayHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workdays, err := h.workdayService.ListPending(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending workdays", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve pending workdays"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayListResponse(workdays))
}

// listApproved godoc
// @Summary List approved workdays
// @Tags workdays
// @Produce json
// @Success 200 {array} dto.WorkdayResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/approved [get]
func (h *workdayHandler) listApproved(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workdays, err := h.workdayService.ListApproved(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list approved workdays", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve approved workdays"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayListResponse(workdays))
}

// listSupervised godoc
// @Summary List workdays assigned to me as supervisor
// @Tags workdays
// @Produce json
// @Success 200 {array} dto.WorkdayResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/supervised [get]
func (h *workdayHandler) listSupervised(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	workdays, err := h.workdayService.ListBySupervisor(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list supervised workdays", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve supervised workdays"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayListResponse(workdays))
}

// myStats godoc
// @Summary Get my workday statistics over a date range
// @Tags workdays
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.UserStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/stats [get]
func (h *workdayHandler) myStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	from, to, ok := parseRangeParams(c)
	if !ok {
		return
	}

	stats, err := h.workdayService.GetUserStats(c.Request.Context(), userID, from, to)
	if err != nil {
		logger.Error("Failed to compute user stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserStatsResponse(stats))
}

// approve godoc
// @Summary Approve a workday
// @Tags workdays
// @Produce json
// @Param id path string true "Workday ID"
// @Success 200 {object} dto.WorkdayResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Workday already approved"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/{id}/approve [patch]
func (h *workdayHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workdayID := c.Param("id")

	workday, err := h.workdayService.Approve(c.Request.Context(), workdayID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Workday not found"})
		} else if errors.Is(err, apperrors.ErrAlreadyApproved) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Workday is already approved"})
		} else {
			logger.Error("Failed to approve workday", slog.String("error", err.Error()), slog.String("workday_id", workdayID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to approve workday"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayResponse(workday))
}

// reject godoc
// @Summary Reject a workday
// @Description Resets the approval flag and appends an activity recording the rejection reason.
// @Tags workdays
// @Accept json
// @Produce json
// @Param id path string true "Workday ID"
// @Param rejection body dto.RejectWorkdayRequest true "Rejection reason"
// @Success 200 {object} dto.WorkdayResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/{id}/reject [patch]
func (h *workdayHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workdayID := c.Param("id")

	var req dto.RejectWorkdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	workday, err := h.workdayService.Reject(c.Request.Context(), workdayID, req.Reason)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Workday not found"})
		} else {
			logger.Error("Failed to reject workday", slog.String("error", err.Error()), slog.String("workday_id", workdayID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reject workday"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkdayResponse(workday))
}

// parseRangeParams reads the from/to query params in the wire date format.
// On failure it writes the 400 response and returns ok=false.
func parseRangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(dto.DateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dto.DateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "'to' must not precede 'from'"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
