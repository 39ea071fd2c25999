package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chpancrate/litreview/internal/middleware"
	"github.com/chpancrate/litreview/pkg/response"
)

type followRequest struct {
	Username string `json:"username" binding:"required"`
}

// Follow 按用户名关注
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "被关注用户名"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/follows [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	f, err := h.relService.Follow(c.Request.Context(), userID, req.Username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, f)
}

// Unfollow 取消关注（仅关注方本人）
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param id path string true "关系 ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/follows/{id} [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if err := h.relService.Unfollow(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListRelations 查询关注与被关注列表
// @Summary 查询关系链
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.Relations}
// @Router /api/v1/follows [get]
func (h *Handler) ListRelations(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	rel, err := h.relService.ListRelations(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, rel)
}
