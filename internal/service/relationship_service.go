package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
	"github.com/chpancrate/litreview/internal/repository"
)

var (
	ErrFollowSelf  = errors.New("cannot follow self")
	ErrUnknownUser = errors.New("unknown user")
)

// RelationEntry 关注列表条目（带用户名，供展示）
type RelationEntry struct {
	RelationID string `json:"relation_id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
}

// Relations 关注与被关注双向列表
type Relations struct {
	Following []RelationEntry `json:"following"`
	Followers []RelationEntry `json:"followers"`
}

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 按用户名关注，未知用户名返回 ErrUnknownUser
	Follow(ctx context.Context, followerID, username string) (*model.Follow, error)
	// Unfollow 按关系 ID 取关，仅关注方本人可操作
	Unfollow(ctx context.Context, userID, relationID string) error
	ListRelations(ctx context.Context, userID string) (*Relations, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, username string) (*model.Follow, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if target.ID == followerID {
		return nil, ErrFollowSelf
	}
	if err := s.followRepo.Create(ctx, followerID, target.ID); err != nil {
		return nil, err
	}
	// Create 幂等，重复关注时返回已存在的那条关系
	follows, err := s.followRepo.ListFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}
	for _, f := range follows {
		if f.FollowedID == target.ID {
			return f, nil
		}
	}
	return nil, ErrNotFound
}

func (s *relationshipService) Unfollow(ctx context.Context, userID, relationID string) error {
	f, err := s.followRepo.GetByID(ctx, relationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if f.FollowerID != userID {
		return ErrNotOwner
	}
	return s.followRepo.DeleteByID(ctx, relationID)
}

func (s *relationshipService) ListRelations(ctx context.Context, userID string) (*Relations, error) {
	following, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(following)+len(followers))
	for _, f := range following {
		ids = append(ids, f.FollowedID)
	}
	for _, f := range followers {
		ids = append(ids, f.FollowerID)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	res := &Relations{
		Following: make([]RelationEntry, 0, len(following)),
		Followers: make([]RelationEntry, 0, len(followers)),
	}
	for _, f := range following {
		res.Following = append(res.Following, RelationEntry{RelationID: f.ID, UserID: f.FollowedID, Username: names[f.FollowedID]})
	}
	for _, f := range followers {
		res.Followers = append(res.Followers, RelationEntry{RelationID: f.ID, UserID: f.FollowerID, Username: names[f.FollowerID]})
	}
	return res, nil
}
