package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/middleware"
)

// backupHandler handles HTTP requests for database backups.
type backupHandler struct {
	backupService portssvc.BackupSvcFacade
}

// registerBackupRoutes registers routes related to backups.
func registerBackupRoutes(rg *gin.RouterGroup, bs portssvc.BackupSvcFacade) {
	h := &backupHandler{backupService: bs}

	backups := rg.Group("/backups")
	{
		backups.POST("", h.runBackup)
		backups.GET("", h.listBackups)
	}
}

// runBackup godoc
// @Summary Run a database backup
// @Description Dumps the database into a timestamped file under the backup directory.
// @Tags backups
// @Produce json
// @Success 201 {object} portssvc.BackupResult
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /backups [post]
func (h *backupHandler) runBackup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.backupService.RunBackup(c.Request.Context())
	if err != nil {
		logger.Error("Failed to run backup", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to run backup"})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// listBackups godoc
// @Summary List backup files
// @Tags backups
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /backups [get]
func (h *backupHandler) listBackups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	files, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list backups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list backups"})
		return
	}
	c.JSON(http.StatusOK, files)
}
