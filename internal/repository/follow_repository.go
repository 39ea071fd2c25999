package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chpancrate/litreview/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID string) error
	GetByID(ctx context.Context, id string) (*model.Follow, error)
	DeleteByID(ctx context.Context, id string) error
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	// ListFollowedIDs 返回 followerID 关注的所有用户 ID（可见性过滤用，不分页）
	ListFollowedIDs(ctx context.Context, followerID string) ([]string, error)
	ListFollowing(ctx context.Context, followerID string) ([]*model.Follow, error)
	ListFollowers(ctx context.Context, followedID string) ([]*model.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, followerID, followedID string) error {
	f := &model.Follow{ID: uuid.New().String(), FollowerID: followerID, FollowedID: followedID}
	// 幂等：重复关注不报错
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

func (r *followRepository) GetByID(ctx context.Context, id string) (*model.Follow, error) {
	var f model.Follow
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *followRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID string) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).Where("follower_id = ?", followerID).Find(&res).Error
	return res, err
}

func (r *followRepository) ListFollowers(ctx context.Context, followedID string) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).Where("followed_id = ?", followedID).Find(&res).Error
	return res, err
}
