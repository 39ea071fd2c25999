package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
	"github.com/chpancrate/litreview/internal/repository"
)

type ReviewInput struct {
	Rating   int
	Headline string
	Body     string
}

type ReviewService interface {
	// Create 评论一个已存在的 Ticket
	Create(ctx context.Context, userID, ticketID string, in ReviewInput) (*model.Review, error)
	// CreateWithTicket 同一事务内创建 Ticket 和对它的 Review（自发自评）
	CreateWithTicket(ctx context.Context, userID string, ticketIn TicketInput, reviewIn ReviewInput) (*model.Ticket, *model.Review, error)
	Get(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, userID, id string, in ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, userID, id string) error
}

type reviewService struct {
	db         *gorm.DB
	reviewRepo repository.ReviewRepository
	ticketRepo repository.TicketRepository
}

func NewReviewService(db *gorm.DB, reviewRepo repository.ReviewRepository, ticketRepo repository.TicketRepository) ReviewService {
	return &reviewService{db: db, reviewRepo: reviewRepo, ticketRepo: ticketRepo}
}

func (s *reviewService) Create(ctx context.Context, userID, ticketID string, in ReviewInput) (*model.Review, error) {
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rv := &model.Review{
		ID:       uuid.New().String(),
		TicketID: ticketID,
		Rating:   in.Rating,
		Headline: in.Headline,
		Body:     in.Body,
		UserID:   userID,
	}
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) CreateWithTicket(ctx context.Context, userID string, ticketIn TicketInput, reviewIn ReviewInput) (*model.Ticket, *model.Review, error) {
	t := &model.Ticket{
		ID:          uuid.New().String(),
		Title:       ticketIn.Title,
		Description: ticketIn.Description,
		ImageURL:    ticketIn.ImageURL,
		UserID:      userID,
	}
	rv := &model.Review{
		ID:       uuid.New().String(),
		TicketID: t.ID,
		Rating:   reviewIn.Rating,
		Headline: reviewIn.Headline,
		Body:     reviewIn.Body,
		UserID:   userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Create(rv).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return t, rv, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	rv, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) Update(ctx context.Context, userID, id string, in ReviewInput) (*model.Review, error) {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrNotOwner
	}
	rv.Rating = in.Rating
	rv.Headline = in.Headline
	rv.Body = in.Body
	if err := s.reviewRepo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, id string) error {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return ErrNotOwner
	}
	return s.reviewRepo.DeleteByID(ctx, id)
}
