package controller

import (
	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary Score distribution of the caller's latest attempts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/dashboard/score-distribution [get]
func (c *DashboardController) ScoreDistribution(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	buckets, err := c.DashboardService.ScoreDistribution(principal)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, buckets)
}
