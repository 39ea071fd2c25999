package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chpancrate/litreview/internal/middleware"
	"github.com/chpancrate/litreview/internal/service"
	"github.com/chpancrate/litreview/pkg/response"
)

type reviewRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
	Rating   int    `json:"rating" binding:"min=0,max=5"`
	Headline string `json:"headline" binding:"required,max=128"`
	Body     string `json:"body" binding:"max=8192"`
}

type reviewUpdateRequest struct {
	Rating   int    `json:"rating" binding:"min=0,max=5"`
	Headline string `json:"headline" binding:"required,max=128"`
	Body     string `json:"body" binding:"max=8192"`
}

type combinedReviewRequest struct {
	Ticket ticketRequest       `json:"ticket" binding:"required"`
	Review reviewUpdateRequest `json:"review" binding:"required"`
}

// CreateReview 评论一个已有 Ticket
// @Summary 创建 Review
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reviewRequest true "Review 内容"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	rv, err := h.reviewService.Create(c.Request.Context(), userID, req.TicketID, service.ReviewInput{
		Rating:   req.Rating,
		Headline: req.Headline,
		Body:     req.Body,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, rv)
}

// CreateReviewWithTicket 一次请求同时创建 Ticket 和 Review
// @Summary 创建 Ticket + Review
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body combinedReviewRequest true "Ticket 与 Review 内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/reviews/combined [post]
func (h *Handler) CreateReviewWithTicket(c *gin.Context) {
	var req combinedReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	t, rv, err := h.reviewService.CreateWithTicket(c.Request.Context(), userID,
		service.TicketInput{
			Title:       req.Ticket.Title,
			Description: req.Ticket.Description,
			ImageURL:    req.Ticket.ImageURL,
		},
		service.ReviewInput{
			Rating:   req.Review.Rating,
			Headline: req.Review.Headline,
			Body:     req.Review.Body,
		},
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"ticket": t, "review": rv})
}

// GetReview 查询单个 Review
// @Summary 查询 Review
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reviews/{id} [get]
func (h *Handler) GetReview(c *gin.Context) {
	rv, err := h.reviewService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, rv)
}

// UpdateReview 编辑 Review（仅作者）
// @Summary 编辑 Review
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reviewUpdateRequest true "Review 内容"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reviews/{id} [put]
func (h *Handler) UpdateReview(c *gin.Context) {
	var req reviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	rv, err := h.reviewService.Update(c.Request.Context(), userID, c.Param("id"), service.ReviewInput{
		Rating:   req.Rating,
		Headline: req.Headline,
		Body:     req.Body,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, rv)
}

// DeleteReview 删除 Review（仅作者）
// @Summary 删除 Review
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if err := h.reviewService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
