package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// reportHandler handles HTTP requests for reports and statistics.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// registerReportRoutes registers routes related to reports.
func registerReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportSvcFacade) {
	h := &reportHandler{reportService: rs}

	reports := rg.Group("/reports")
	{
		reports.GET("/daily-stats", h.dailyStats)
		reports.POST("/send", h.sendReports)
	}
}

// dailyStats godoc
// @Summary Get the daily dashboard statistics
// @Tags reports
// @Produce json
// @Param date query string false "Calendar day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DailyStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/daily-stats [get]
func (h *reportHandler) dailyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	stats, err := h.reportService.GetDailyStats(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to compute daily stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyStatsResponse(stats))
}

// sendReports godoc
// @Summary Trigger the daily report run manually
// @Description Emails each active user their digest and the management summary, same as the scheduled run.
// @Tags reports
// @Produce json
// @Param date query string false "Calendar day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]int
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/send [post]
func (h *reportHandler) sendReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	sent, err := h.reportService.SendDailyReports(c.Request.Context(), date, true)
	if err != nil {
		logger.Error("Failed to send daily reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"digests": sent})
}

// parseDateParam reads the optional date query param, defaulting to today.
// On failure it writes the 400 response and returns ok=false.
func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'date', expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
