package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Ticket{}, &model.Review{}, &model.Follow{}))
	return db
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	// 重复关注不报错，也不产生第二条记录
	require.NoError(t, repo.Create(ctx, "u1", "u2"))

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)

	ok, err := repo.Exists(ctx, "u1", "u2")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Exists(ctx, "u2", "u1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestListFollowedIDsAndFollowers(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, "u0", fmt.Sprintf("u%d", i)))
	}
	require.NoError(t, repo.Create(ctx, "u9", "u0"))

	ids, err := repo.ListFollowedIDs(ctx, "u0")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"u1", "u2", "u3"}, ids)

	followers, err := repo.ListFollowers(ctx, "u0")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "u9", followers[0].FollowerID)
}

func TestFollowDeleteByID(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	following, err := repo.ListFollowing(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, following, 1)

	require.NoError(t, repo.DeleteByID(ctx, following[0].ID))
	_, err = repo.GetByID(ctx, following[0].ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewListVisible(t *testing.T) {
	db := setupRepoDB(t)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	// frank 的 ticket，eve 评论；viewer 谁也不关注
	require.NoError(t, db.Create(&model.Ticket{ID: "tk1", Title: "t", UserID: "frank"}).Error)
	require.NoError(t, db.Create(&model.Review{ID: "rv1", TicketID: "tk1", Rating: 4, Headline: "h", UserID: "eve"}).Error)

	// frank 视角：评论落在自己的 ticket 上
	res, err := reviewRepo.ListVisible(ctx, []string{"frank"}, "frank")
	require.NoError(t, err)
	require.Len(t, res, 1)

	// grace 视角：不可见
	res, err = reviewRepo.ListVisible(ctx, []string{"grace"}, "grace")
	require.NoError(t, err)
	require.Empty(t, res)

	// eve 视角：自己写的可见
	res, err = reviewRepo.ListVisible(ctx, []string{"eve"}, "eve")
	require.NoError(t, err)
	require.Len(t, res, 1)
}
