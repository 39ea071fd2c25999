package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chpancrate/litreview/internal/service"
	"github.com/chpancrate/litreview/pkg/response"
)

type Handler struct {
	authService   service.AuthService
	ticketService service.TicketService
	reviewService service.ReviewService
	relService    service.RelationshipService
	feedService   service.FeedService
}

func New(
	authService service.AuthService,
	ticketService service.TicketService,
	reviewService service.ReviewService,
	relService service.RelationshipService,
	feedService service.FeedService,
) *Handler {
	return &Handler{
		authService:   authService,
		ticketService: ticketService,
		reviewService: reviewService,
		relService:    relService,
		feedService:   feedService,
	}
}

// writeServiceError 服务层错误 → HTTP 状态码
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrUsernameTaken):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
