package controller

import (
	"strconv"

	"onlinetest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parsePagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func pageOf(list interface{}, total int64, page, limit int) util.PageResponse {
	return util.PageResponse{
		List:    list,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: int64(page*limit) < total,
		HasPrev: page > 1,
	}
}
