package api

import (
	"fmt"
	"ironai/workout-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type NextSessionResponse struct {
	ID            string `json:"id"`
	ProgramName   string `json:"programName"`
	Name          string `json:"name"`
	Focus         string `json:"focus"`
	EstimatedTime string `json:"estimatedTime"`
	Intensity     string `json:"intensity"`
}

type DashboardResponse struct {
	Name        string               `json:"name"`
	NextSession *NextSessionResponse `json:"nextSession"`
}

func MapNextSessionToResponse(next *service.NextSession) *NextSessionResponse {
	if next == nil {
		return nil
	}
	return &NextSessionResponse{
		ID:            next.DayID.Hex(),
		ProgramName:   next.ProgramName,
		Name:          next.DayName,
		Focus:         next.Focus,
		EstimatedTime: fmt.Sprintf("%d min", next.EstimatedMinutes),
		Intensity:     next.Intensity,
	}
}

// Get godoc
// @Summary Dashboard greeting and next session
// @Description nextSession is null when the user has no program to train.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{
		Name:        overview.Name,
		NextSession: MapNextSessionToResponse(overview.Next),
	})
}
