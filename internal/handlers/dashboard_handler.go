package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/services"
)

// DashboardHandler handles the admin analytics HTTP requests
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles GET /admin/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c, c.Query("timeframe"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeframe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
