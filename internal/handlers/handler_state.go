package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

// stateHandler handles HTTP requests for the task state lookup table.
type stateHandler struct {
	stateService portssvc.TaskStateSvcFacade
}

// registerStateRoutes registers routes related to task states.
func registerStateRoutes(rg *gin.RouterGroup, ss portssvc.TaskStateSvcFacade) {
	h := &stateHandler{stateService: ss}

	states := rg.Group("/states")
	{
		states.POST("", h.createState)
		states.GET("", h.listStates)
		states.GET("/:id", h.getState)
		states.PATCH("/:id", h.updateState)
		states.DELETE("/:id", h.deleteState)
	}
}

// createState godoc
// @Summary Create a task state
// @Tags states
// @Accept json
// @Produce json
// @Param state body dto.NamedLookupRequest true "State name"
// @Success 201 {object} dto.TaskStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /states [post]
func (h *stateHandler) createState(c *gin.Context) {
	var req dto.NamedLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.stateService.CreateTaskState(c.Request.Context(), req.Name)
	if err != nil {
		respondLookupError(c, err, "Failed to create task state")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskStateResponse(state))
}

// listStates godoc
// @Summary List task states
// @Tags states
// @Produce json
// @Success 200 {array} dto.TaskStateResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /states [get]
func (h *stateHandler) listStates(c *gin.Context) {
	states, err := h.stateService.ListTaskStates(c.Request.Context())
	if err != nil {
		respondLookupError(c, err, "Failed to list task states")
		return
	}
	out := make([]dto.TaskStateResponse, len(states))
	for i := range states {
		out[i] = dto.ToTaskStateResponse(&states[i])
	}
	c.JSON(http.StatusOK, out)
}

// getState godoc
// @Summary Get a task state
// @Tags states
// @Produce json
// @Param id path string true "State ID"
// @Success 200 {object} dto.TaskStateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /states/{id} [get]
func (h *stateHandler) getState(c *gin.Context) {
	state, err := h.stateService.GetTaskStateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLookupError(c, err, "Failed to retrieve task state")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskStateResponse(state))
}

// updateState godoc
// @Summary Rename a task state
// @Tags states
// @Accept json
// @Produce json
// @Param id path string true "State ID"
// @Param state body dto.NamedLookupRequest true "New name"
// @Success 200 {object} dto.TaskStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /states/{id} [patch]
func (h *stateHandler) updateState(c *gin.Context) {
	var req dto.NamedLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.stateService.UpdateTaskState(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondLookupError(c, err, "Failed to update task state")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskStateResponse(state))
}

// deleteState godoc
// @Summary Delete a task state
// @Description Deletion is blocked while activities still reference the state.
// @Tags states
// @Produce json
// @Param id path string true "State ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "State still referenced"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /states/{id} [delete]
func (h *stateHandler) deleteState(c *gin.Context) {
	if err := h.stateService.DeleteTaskState(c.Request.Context(), c.Param("id")); err != nil {
		respondLookupError(c, err, "Failed to delete task state")
		return
	}
	c.Status(http.StatusNoContent)
}
