package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
)

type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) error
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	Update(ctx context.Context, t *model.Ticket) error
	DeleteByID(ctx context.Context, id string) error
	// ListByAuthors 返回作者集合内的全部 Ticket（可见性过滤的数据源）
	ListByAuthors(ctx context.Context, authorIDs []string) ([]*model.Ticket, error)
	ListAll(ctx context.Context) ([]*model.Ticket, error)
}

type ticketRepository struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepository{db: db} }

func (r *ticketRepository) Create(ctx context.Context, t *model.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	var t model.Ticket
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) Update(ctx context.Context, t *model.Ticket) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ticketRepository) DeleteByID(ctx context.Context, id string) error {
	// 级联删除该 Ticket 下的 Review，与原始数据模型的 on_delete=CASCADE 对齐
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Ticket{}).Error
	})
}

func (r *ticketRepository) ListByAuthors(ctx context.Context, authorIDs []string) ([]*model.Ticket, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var res []*model.Ticket
	err := r.db.WithContext(ctx).Where("user_id IN ?", authorIDs).Find(&res).Error
	return res, err
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]*model.Ticket, error) {
	var res []*model.Ticket
	err := r.db.WithContext(ctx).Find(&res).Error
	return res, err
}
