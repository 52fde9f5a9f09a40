package controller

import (
	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// @Summary Assign an exam to a batch of employees
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssignRequest true "assignment batch"
// @Success 201 {object} util.Response
// @Router /api/v1/assignments [post]
func (c *AssignmentController) Assign(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.AssignmentService.Assign(ctx.Request.Context(), principal, middleware.GetToken(ctx), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary List the caller's own assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/v1/assignments/my [get]
func (c *AssignmentController) ListMine(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := parsePagination(ctx)
	views, total, err := c.AssignmentService.ListMyAssignments(principal, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, pageOf(views, total, page, limit))
}

// @Summary List assignments of one exam
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/v1/exams/{id}/assignments [get]
func (c *AssignmentController) ListByExam(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	examID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(ctx)
	views, total, err := c.AssignmentService.ListByExam(principal.CompanyID, examID, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, pageOf(views, total, page, limit))
}

// @Summary Start or resume a sitting
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Router /api/v1/assignments/{id}/start [post]
func (c *AssignmentController) Start(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	session, err := c.AssignmentService.Start(principal, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary Revoke a pending or in-progress assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Router /api/v1/assignments/{id} [delete]
func (c *AssignmentController) Revoke(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AssignmentService.Revoke(principal.CompanyID, id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"revoked": true})
}
