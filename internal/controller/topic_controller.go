package controller

import (
	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	TopicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

// @Summary Create a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TopicRequest true "topic"
// @Success 201 {object} util.Response
// @Router /api/v1/topics [post]
func (c *TopicController) Create(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.TopicService.CreateTopic(principal, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// @Summary Get one topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response
// @Router /api/v1/topics/{id} [get]
func (c *TopicController) Get(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	topic, err := c.TopicService.GetTopic(principal.CompanyID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// @Summary List topics
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/v1/topics [get]
func (c *TopicController) List(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := parsePagination(ctx)
	topics, total, err := c.TopicService.ListTopics(principal.CompanyID, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, pageOf(topics, total, page, limit))
}

// @Summary Update a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "topic id"
// @Param body body service.TopicRequest true "topic"
// @Success 200 {object} util.Response
// @Router /api/v1/topics/{id} [put]
func (c *TopicController) Update(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.TopicService.UpdateTopic(principal.CompanyID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// @Summary Delete a topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response
// @Router /api/v1/topics/{id} [delete]
func (c *TopicController) Delete(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.TopicService.DeleteTopic(principal.CompanyID, id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
