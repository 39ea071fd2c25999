package model

import "time"

// Review 对某个 Ticket 的评论，评分 0~5
// 同一用户可对同一 Ticket 重复评论（沿用原始数据模型，未加唯一约束）
type Review struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TicketID  string    `gorm:"type:varchar(36);index:idx_review_ticket;not null" json:"ticket_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Headline  string    `gorm:"type:varchar(128);not null" json:"headline"`
	Body      string    `gorm:"type:text" json:"body"`
	UserID    string    `gorm:"type:varchar(36);index:idx_review_user;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"index:idx_review_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
