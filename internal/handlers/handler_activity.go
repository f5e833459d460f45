package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// activityHandler handles HTTP requests for activities.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

// newActivityHandler creates a new activityHandler.
func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers routes related to activities.
func registerActivityRoutes(rg *gin.RouterGroup, as portssvc.ActivitySvcFacade) {
	h := newActivityHandler(as)

	activities := rg.Group("/activities")
	{
		activities.POST("", h.createActivity)
		activities.GET("/:id", h.getActivity)
		activities.PATCH("/:id", h.updateActivity)
	}
	rg.GET("/workdays/:id/activities", h.listByWorkday)
}

// createActivity godoc
// @Summary Add an activity to an open workday
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body dto.CreateActivityRequest true "Activity details"
// @Success 201 {object} dto.ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Workday already checked out"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities [post]
func (h *activityHandler) createActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	activity, err := h.activityService.CreateActivity(c.Request.Context(), req, userID)
	if err != nil {
		respondActivityError(c, logger, err, "Failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, dto.ToActivityResponse(activity))
}

// getActivity godoc
// @Summary Get an activity
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.ActivityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [get]
func (h *activityHandler) getActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	activity, err := h.activityService.GetActivityByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondActivityError(c, logger, err, "Failed to retrieve activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

// updateActivity godoc
// @Summary Update an activity's state or observation
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param activity body dto.UpdateActivityRequest true "Fields to update"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [patch]
func (h *activityHandler) updateActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if req.StateID == nil && req.Observation == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Nothing to update"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	activity, err := h.activityService.UpdateActivity(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondActivityError(c, logger, err, "Failed to update activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

// listByWorkday godoc
// @Summary List a workday's activities
// @Tags activities
// @Produce json
// @Param id path string true "Workday ID"
// @Success 200 {array} dto.ActivityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/{id}/activities [get]
func (h *activityHandler) listByWorkday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	activities, err := h.activityService.ListByWorkday(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondActivityError(c, logger, err, "Failed to list activities")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(activities))
}

// respondActivityError maps service errors to HTTP responses shared by the
// activity endpoints.
func respondActivityError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrAlreadyClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Workday is already checked out"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
