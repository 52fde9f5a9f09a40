package controller

import (
	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// @Summary Submit and score a sitting
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitRequest true "answer list"
// @Success 200 {object} util.Response
// @Router /api/v1/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.SubmissionService.Submit(principal, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Review a scored attempt with correct answers
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/v1/attempts/{id}/review [get]
func (c *SubmissionController) Review(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	review, err := c.SubmissionService.ReviewAttempt(principal, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// @Summary List attempts of one assignment
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Router /api/v1/assignments/{id}/attempts [get]
func (c *SubmissionController) ListAttempts(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	attempts, err := c.SubmissionService.ListAttempts(principal, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
