package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chpancrate/litreview/internal/middleware"
	"github.com/chpancrate/litreview/internal/service"
	"github.com/chpancrate/litreview/pkg/response"
)

type ticketRequest struct {
	Title       string `json:"title" binding:"required,max=128"`
	Description string `json:"description" binding:"max=2048"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=512"`
}

// CreateTicket 创建书评请求
// @Summary 创建 Ticket
// @Tags Ticket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ticketRequest true "Ticket 内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/tickets [post]
func (h *Handler) CreateTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	t, err := h.ticketService.Create(c.Request.Context(), userID, service.TicketInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, t)
}

// GetTicket 查询单个 Ticket
// @Summary 查询 Ticket
// @Tags Ticket
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tickets/{id} [get]
func (h *Handler) GetTicket(c *gin.Context) {
	t, err := h.ticketService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, t)
}

// UpdateTicket 编辑 Ticket（仅作者）
// @Summary 编辑 Ticket
// @Tags Ticket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body ticketRequest true "Ticket 内容"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tickets/{id} [put]
func (h *Handler) UpdateTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	t, err := h.ticketService.Update(c.Request.Context(), userID, c.Param("id"), service.TicketInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, t)
}

// DeleteTicket 删除 Ticket（仅作者，连带删除其下 Review）
// @Summary 删除 Ticket
// @Tags Ticket
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tickets/{id} [delete]
func (h *Handler) DeleteTicket(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if err := h.ticketService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
