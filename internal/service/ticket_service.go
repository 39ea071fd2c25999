package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
	"github.com/chpancrate/litreview/internal/repository"
)

type TicketInput struct {
	Title       string
	Description string
	ImageURL    string
}

type TicketService interface {
	Create(ctx context.Context, userID string, in TicketInput) (*model.Ticket, error)
	Get(ctx context.Context, id string) (*model.Ticket, error)
	// Update / Delete 仅作者本人可操作
	Update(ctx context.Context, userID, id string, in TicketInput) (*model.Ticket, error)
	Delete(ctx context.Context, userID, id string) error
}

type ticketService struct {
	ticketRepo repository.TicketRepository
}

func NewTicketService(ticketRepo repository.TicketRepository) TicketService {
	return &ticketService{ticketRepo: ticketRepo}
}

func (s *ticketService) Create(ctx context.Context, userID string, in TicketInput) (*model.Ticket, error) {
	t := &model.Ticket{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UserID:      userID,
	}
	if err := s.ticketRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ticketService) Get(ctx context.Context, id string) (*model.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *ticketService) Update(ctx context.Context, userID, id string, in TicketInput) (*model.Ticket, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}
	t.Title = in.Title
	t.Description = in.Description
	t.ImageURL = in.ImageURL
	if err := s.ticketRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ticketService) Delete(ctx context.Context, userID, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return ErrNotOwner
	}
	return s.ticketRepo.DeleteByID(ctx, id)
}
