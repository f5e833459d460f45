package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

// areaHandler handles HTTP requests for the area lookup table.
type areaHandler struct {
	areaService portssvc.AreaSvcFacade
}

// registerAreaRoutes registers routes related to areas.
func registerAreaRoutes(rg *gin.RouterGroup, as portssvc.AreaSvcFacade) {
	h := &areaHandler{areaService: as}

	areas := rg.Group("/areas")
	{
		areas.POST("", h.createArea)
		areas.GET("", h.listAreas)
		areas.GET("/:id", h.getArea)
		areas.PATCH("/:id", h.updateArea)
		areas.DELETE("/:id", h.deleteArea)
	}
}

// createArea godoc
// @Summary Create an area
// @Tags areas
// @Accept json
// @Produce json
// @Param area body dto.NamedLookupRequest true "Area name"
// @Success 201 {object} dto.AreaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /areas [post]
func (h *areaHandler) createArea(c *gin.Context) {
	var req dto.NamedLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	area, err := h.areaService.CreateArea(c.Request.Context(), req.Name)
	if err != nil {
		respondLookupError(c, err, "Failed to create area")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAreaResponse(area))
}

// listAreas godoc
// @Summary List areas
// @Tags areas
// @Produce json
// @Success 200 {array} dto.AreaResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /areas [get]
func (h *areaHandler) listAreas(c *gin.Context) {
	areas, err := h.areaService.ListAreas(c.Request.Context())
	if err != nil {
		respondLookupError(c, err, "Failed to list areas")
		return
	}
	out := make([]dto.AreaResponse, len(areas))
	for i := range areas {
		out[i] = dto.ToAreaResponse(&areas[i])
	}
	c.JSON(http.StatusOK, out)
}

// getArea godoc
// @Summary Get an area
// @Tags areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} dto.AreaResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /areas/{id} [get]
func (h *areaHandler) getArea(c *gin.Context) {
	area, err := h.areaService.GetAreaByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondLookupError(c, err, "Failed to retrieve area")
		return
	}
	c.JSON(http.StatusOK, dto.ToAreaResponse(area))
}

// updateArea godoc
// @Summary Rename an area
// @Tags areas
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Param area body dto.NamedLookupRequest true "New name"
// @Success 200 {object} dto.AreaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /areas/{id} [patch]
func (h *areaHandler) updateArea(c *gin.Context) {
	var req dto.NamedLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	area, err := h.areaService.UpdateArea(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondLookupError(c, err, "Failed to update area")
		return
	}
	c.JSON(http.StatusOK, dto.ToAreaResponse(area))
}

// deleteArea godoc
// @Summary Delete an area
// @Tags areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /areas/{id} [delete]
func (h *areaHandler) deleteArea(c *gin.Context) {
	if err := h.areaService.DeleteArea(c.Request.Context(), c.Param("id")); err != nil {
		respondLookupError(c, err, "Failed to delete area")
		return
	}
	c.Status(http.StatusNoContent)
}
