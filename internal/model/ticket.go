package model

import "time"

// Ticket 书评请求（某本书/文章求评）
type Ticket struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string `gorm:"type:varchar(128);not null" json:"title"`
	Description string `gorm:"type:varchar(2048)" json:"description"`
	UserID      string `gorm:"type:varchar(36);index:idx_ticket_user;not null" json:"user_id"`
	// 图片上传/缩放由外部服务处理，这里只存地址
	ImageURL  string    `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_ticket_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }
