package controller

import (
	"strconv"

	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// @Summary Compose an exam from topic selections
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ExamCreateRequest true "exam"
// @Success 201 {object} util.Response
// @Router /api/v1/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.ExamCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	exam, err := c.ExamService.CreateExam(principal, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary Get one exam with its topic breakdown
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/v1/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	exam, err := c.ExamService.GetExam(principal.CompanyID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	topics, err := c.ExamService.DeriveSelectedTopics(principal.CompanyID, exam.ID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"exam": exam, "topics": topics})
}

// @Summary Search exams by title
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param search query string false "title filter"
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/v1/exams [get]
func (c *ExamController) Search(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	page, _ := parsePagination(ctx)
	// exam lists render in short admin pages
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 100 {
		limit = 5
	}
	search := ctx.Query("search")
	exams, total, err := c.ExamService.SearchExams(principal.CompanyID, search, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, pageOf(exams, total, page, limit))
}

// @Summary Update an exam's scalar settings
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param body body service.ExamUpdateRequest true "exam"
// @Success 200 {object} util.Response
// @Router /api/v1/exams/{id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.ExamUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	exam, err := c.ExamService.UpdateExam(principal, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary Delete an exam and its composition
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/v1/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ExamService.DeleteExam(principal.CompanyID, id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
