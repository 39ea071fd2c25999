package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chpancrate/litreview/internal/middleware"
	"github.com/chpancrate/litreview/pkg/response"
)

// Feed 个人信息流（自己 + 关注的人 + 评自己 Ticket 的 Review）
// @Summary 个人信息流
// @Tags 信息流
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.feedService.Feed(c.Request.Context(), userID, page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// Posts 仅自己发布的内容
// @Summary 我的发布
// @Tags 信息流
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router /api/v1/posts [get]
func (h *Handler) Posts(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.feedService.Posts(c.Request.Context(), userID, page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// Home 首页：个人流与全站流各取最近几条
// @Summary 首页
// @Tags 信息流
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.HomeFeed}
// @Router /api/v1/home [get]
func (h *Handler) Home(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	res, err := h.feedService.Home(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}
