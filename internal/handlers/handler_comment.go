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

// commentHandler handles HTTP requests for activity comments.
type commentHandler struct {
	commentService portssvc.CommentSvcFacade
}

// newCommentHandler creates a new commentHandler.
func newCommentHandler(cs portssvc.CommentSvcFacade) *commentHandler {
	return &commentHandler{commentService: cs}
}

// registerCommentRoutes registers routes related to comments.
func registerCommentRoutes(rg *gin.RouterGroup, cs portssvc.CommentSvcFacade) {
	h := newCommentHandler(cs)

	comments := rg.Group("/comments")
	{
		comments.POST("", h.createComment)
	}
	rg.GET("/activities/:id/comments", h.listByActivity)
	rg.GET("/workdays/:id/comments", h.listByWorkday)
}

// createComment godoc
// @Summary Comment on an activity
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body dto.CreateCommentRequest true "Comment details"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments [post]
func (h *commentHandler) createComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), req.ActivityID, req.Text, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Activity not found"})
		} else {
			logger.Error("Failed to create comment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// listByActivity godoc
// @Summary List an activity's comments
// @Tags comments
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{id}/comments [get]
func (h *commentHandler) listByActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	comments, err := h.commentService.ListByActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to list comments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(comments))
}

// listByWorkday godoc
// @Summary List comments across a workday's activities
// @Tags comments
// @Produce json
// @Param id path string true "Workday ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workdays/{id}/comments [get]
func (h *commentHandler) listByWorkday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	comments, err := h.commentService.ListByWorkday(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to list workday comments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(comments))
}
