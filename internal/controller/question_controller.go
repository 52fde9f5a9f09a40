package controller

import (
	"strconv"

	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/v1/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.CreateQuestion(principal, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary Get one question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/v1/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	q, err := c.QuestionService.GetQuestion(principal.CompanyID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary List active questions, optionally filtered by topic or text
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param topicId query int false "topic id"
// @Param search query string false "text filter"
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/v1/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := parsePagination(ctx)
	topicID, _ := strconv.Atoi(ctx.DefaultQuery("topicId", "0"))
	search := ctx.Query("search")

	questions, total, err := c.QuestionService.ListQuestions(principal.CompanyID, uint(topicID), search, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, pageOf(questions, total, page, limit))
}

// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/v1/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.UpdateQuestion(principal, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary Deactivate a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/v1/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuestionService.DeleteQuestion(principal.CompanyID, id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
