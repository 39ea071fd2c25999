package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, rv *model.Review) error
	DeleteByID(ctx context.Context, id string) error
	// ListVisible 返回作者在集合内、或评论对象属于 ticketOwnerID 的全部 Review
	ListVisible(ctx context.Context, authorIDs []string, ticketOwnerID string) ([]*model.Review, error)
	ListByAuthors(ctx context.Context, authorIDs []string) ([]*model.Review, error)
	ListAll(ctx context.Context) ([]*model.Review, error)
}

type reviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) ReviewRepository { return &reviewRepository{db: db} }

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *reviewRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{}).Error
}

func (r *reviewRepository) ListVisible(ctx context.Context, authorIDs []string, ticketOwnerID string) ([]*model.Review, error) {
	var res []*model.Review
	// 连接 tickets 后两表列名重叠，显式只取 reviews.*
	q := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("reviews.*").
		Joins("JOIN tickets ON tickets.id = reviews.ticket_id")
	if len(authorIDs) > 0 {
		q = q.Where("reviews.user_id IN ? OR tickets.user_id = ?", authorIDs, ticketOwnerID)
	} else {
		q = q.Where("tickets.user_id = ?", ticketOwnerID)
	}
	err := q.Find(&res).Error
	return res, err
}

func (r *reviewRepository) ListByAuthors(ctx context.Context, authorIDs []string) ([]*model.Review, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var res []*model.Review
	err := r.db.WithContext(ctx).Where("user_id IN ?", authorIDs).Find(&res).Error
	return res, err
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]*model.Review, error) {
	var res []*model.Review
	err := r.db.WithContext(ctx).Find(&res).Error
	return res, err
}
