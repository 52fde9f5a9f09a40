package controller

import (
	"onlinetest_backend/internal/integration"
	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// EmployeeController proxies the company roster from the user-management
// service so the assignment UI has one backend to talk to.
type EmployeeController struct {
	Users integration.UserDirectory
}

func NewEmployeeController(users integration.UserDirectory) *EmployeeController {
	return &EmployeeController{Users: users}
}

// @Summary List the caller's company employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/employees [get]
func (c *EmployeeController) List(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	users, err := c.Users.LookupEmployees(ctx.Request.Context(), principal.CompanyID, middleware.GetToken(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, users)
}
