package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/model"
	"github.com/chpancrate/litreview/internal/repository"
)

func setupFeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Ticket{}, &model.Review{}, &model.Follow{}))
	return db
}

func newTestFeedService(db *gorm.DB, pageSize, homeSize int) FeedService {
	return NewFeedService(
		repository.NewTicketRepository(db),
		repository.NewReviewRepository(db),
		repository.NewFollowRepository(db),
		pageSize, homeSize,
	)
}

func testTime() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func seedUser(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: name, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

func seedTicket(t *testing.T, db *gorm.DB, userID string, at time.Time) *model.Ticket {
	t.Helper()
	tk := &model.Ticket{ID: uuid.New().String(), Title: "t", UserID: userID, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Create(tk).Error)
	return tk
}

func seedReview(t *testing.T, db *gorm.DB, userID, ticketID string, at time.Time) *model.Review {
	t.Helper()
	rv := &model.Review{ID: uuid.New().String(), TicketID: ticketID, Rating: 4, Headline: "h", UserID: userID, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Create(rv).Error)
	return rv
}

func seedFollow(t *testing.T, db *gorm.DB, followerID, followedID string) {
	t.Helper()
	require.NoError(t, repository.NewFollowRepository(db).Create(context.Background(), followerID, followedID))
}

// Alice 关注 Bob；Bob 发 Ticket（t1），Alice 评自己的 Ticket（t2 > t1）
// Alice 的第一页应为 [R1, T1]
func TestFeedMergesFollowedTicketsAndOwnReviews(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedFollow(t, db, alice, bob)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := seedTicket(t, db, bob, base)
	ownTicket := seedTicket(t, db, alice, base.Add(-time.Hour))
	r1 := seedReview(t, db, alice, ownTicket.ID, base.Add(time.Hour))

	page, err := svc.Feed(ctx, alice, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.Equal(t, FeedKindReview, page.Items[0].Kind)
	require.Equal(t, r1.ID, page.Items[0].Review.ID)
	require.Equal(t, FeedKindTicket, page.Items[1].Kind)
	require.Equal(t, t1.ID, page.Items[1].Ticket.ID)
	require.Equal(t, ownTicket.ID, page.Items[2].Ticket.ID)
}

// 什么都没发、谁也不关注的用户：1 页 0 条
func TestFeedEmptyForIsolatedUser(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)

	carol := seedUser(t, db, "carol")
	// 站内有别人的内容，但与 Carol 无关
	dave := seedUser(t, db, "dave")
	seedTicket(t, db, dave, time.Now())

	page, err := svc.Feed(context.Background(), carol, 1)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, 0, page.TotalItems)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
}

// 12 条 Ticket：第 1 页是最新 5 条，第 3 页是最旧 2 条，越界第 4 页等于第 3 页
func TestPostsPaginationClampsOutOfRange(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)
	ctx := context.Background()

	dave := seedUser(t, db, "dave")
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]string, 12)
	for i := 0; i < 12; i++ {
		ids[i] = seedTicket(t, db, dave, base.Add(time.Duration(i)*time.Minute)).ID
	}

	p1, err := svc.Posts(ctx, dave, 1)
	require.NoError(t, err)
	require.Len(t, p1.Items, 5)
	require.Equal(t, ids[11], p1.Items[0].Ticket.ID)
	require.Equal(t, ids[7], p1.Items[4].Ticket.ID)
	require.Equal(t, 12, p1.TotalItems)
	require.Equal(t, 3, p1.TotalPages)
	require.True(t, p1.HasNext)
	require.False(t, p1.HasPrev)

	p3, err := svc.Posts(ctx, dave, 3)
	require.NoError(t, err)
	require.Len(t, p3.Items, 2)
	require.Equal(t, ids[1], p3.Items[0].Ticket.ID)
	require.Equal(t, ids[0], p3.Items[1].Ticket.ID)
	require.False(t, p3.HasNext)
	require.True(t, p3.HasPrev)

	p4, err := svc.Posts(ctx, dave, 4)
	require.NoError(t, err)
	require.Equal(t, 3, p4.Page)
	require.Equal(t, p3.Items, p4.Items)

	// 页码 ≤ 0 回落到第 1 页
	p0, err := svc.Posts(ctx, dave, 0)
	require.NoError(t, err)
	require.Equal(t, 1, p0.Page)
	require.Equal(t, p1.Items, p0.Items)
}

// Eve 评 Frank 的 Ticket（互不关注）：Frank 可见、Eve 可见、无关的 Grace 不可见
func TestReviewOnOwnTicketVisibility(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)
	ctx := context.Background()

	eve := seedUser(t, db, "eve")
	frank := seedUser(t, db, "frank")
	grace := seedUser(t, db, "grace")

	t2 := seedTicket(t, db, frank, time.Now().Add(-time.Hour))
	rv := seedReview(t, db, eve, t2.ID, time.Now())

	contains := func(page *FeedPage, reviewID string) bool {
		for _, it := range page.Items {
			if it.Kind == FeedKindReview && it.Review.ID == reviewID {
				return true
			}
		}
		return false
	}

	frankFeed, err := svc.Feed(ctx, frank, 1)
	require.NoError(t, err)
	require.True(t, contains(frankFeed, rv.ID), "review targets frank's ticket")

	eveFeed, err := svc.Feed(ctx, eve, 1)
	require.NoError(t, err)
	require.True(t, contains(eveFeed, rv.ID), "eve authored the review")

	graceFeed, err := svc.Feed(ctx, grace, 1)
	require.NoError(t, err)
	require.False(t, contains(graceFeed, rv.ID))
}

// 既是"关注的作者"又是"评我的 Ticket"的 Review 只出现一次
func TestFeedNoDuplicateItems(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 10, 3)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	eve := seedUser(t, db, "eve")
	seedFollow(t, db, alice, eve)

	tk := seedTicket(t, db, alice, time.Now().Add(-time.Hour))
	rv := seedReview(t, db, eve, tk.ID, time.Now())

	page, err := svc.Feed(ctx, alice, 1)
	require.NoError(t, err)
	n := 0
	for _, it := range page.Items {
		if it.Kind == FeedKindReview && it.Review.ID == rv.ID {
			n++
		}
	}
	require.Equal(t, 1, n)
}

// 时间倒序；时间完全相同时按 ID 倒序，顺序可重现
func TestFeedOrderingAndTieBreak(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 20, 3)
	ctx := context.Background()

	dave := seedUser(t, db, "dave")
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// 同一时刻的一批内容
	var sameIDs []string
	for i := 0; i < 4; i++ {
		sameIDs = append(sameIDs, seedTicket(t, db, dave, at).ID)
	}
	tk := seedTicket(t, db, dave, at.Add(-time.Minute))
	seedReview(t, db, dave, tk.ID, at)

	first, err := svc.Posts(ctx, dave, 1)
	require.NoError(t, err)
	for i := 1; i < len(first.Items); i++ {
		prev, cur := first.Items[i-1], first.Items[i]
		require.False(t, prev.CreatedAt().Before(cur.CreatedAt()), "time must be non-increasing")
		if prev.CreatedAt().Equal(cur.CreatedAt()) {
			require.Greater(t, prev.ItemID(), cur.ItemID(), "ties break by id desc")
		}
	}

	// 重复请求得到完全一致的顺序
	second, err := svc.Posts(ctx, dave, 1)
	require.NoError(t, err)
	require.Equal(t, itemIDs(first.Items), itemIDs(second.Items))
}

func itemIDs(items []FeedItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

// 除末页外每页恰好 page_size 条
func TestFeedPageSizes(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)
	ctx := context.Background()

	dave := seedUser(t, db, "dave")
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedTicket(t, db, dave, base.Add(time.Duration(i)*time.Second))
	}

	p1, err := svc.Posts(ctx, dave, 1)
	require.NoError(t, err)
	require.Len(t, p1.Items, 5)
	p2, err := svc.Posts(ctx, dave, 2)
	require.NoError(t, err)
	require.Len(t, p2.Items, 2)
	require.Equal(t, 2, p2.TotalPages)
}

// Posts 不做社交图谱扩展：只看作者本人
func TestPostsExcludesFollowedContent(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedFollow(t, db, alice, bob)
	seedTicket(t, db, bob, time.Now())
	own := seedTicket(t, db, alice, time.Now().Add(-time.Minute))

	page, err := svc.Posts(ctx, alice, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, own.ID, page.Items[0].Ticket.ID)
}

// 首页：个人流与全站流各取最近 home_size 条
func TestHomeTopSlices(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 5, 3)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// bob 的内容对 alice 不可见（未关注），但进入全站流
	for i := 0; i < 5; i++ {
		seedTicket(t, db, bob, base.Add(time.Duration(i)*time.Minute))
	}
	var aliceIDs []string
	for i := 0; i < 5; i++ {
		aliceIDs = append(aliceIDs, seedTicket(t, db, alice, base.Add(time.Duration(10+i)*time.Minute)).ID)
	}

	home, err := svc.Home(ctx, alice)
	require.NoError(t, err)
	require.Len(t, home.Personal, 3)
	require.Len(t, home.Global, 3)
	require.Equal(t, aliceIDs[4], home.Personal[0].Ticket.ID)
	// alice 的内容最新，全站流前 3 条也都是她的
	for _, it := range home.Global {
		require.Equal(t, alice, it.Ticket.UserID)
	}
}

// P1：返回的每一条都满足可见性谓词
func TestFeedVisibilityPredicateHolds(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestFeedService(db, 50, 3)
	ctx := context.Background()

	users := make([]string, 4)
	for i := range users {
		users[i] = seedUser(t, db, fmt.Sprintf("u%d", i))
	}
	viewer := users[0]
	seedFollow(t, db, viewer, users[1])

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var tickets []*model.Ticket
	for i, u := range users {
		tk := seedTicket(t, db, u, base.Add(time.Duration(i)*time.Minute))
		tickets = append(tickets, tk)
		for j, author := range users {
			seedReview(t, db, author, tk.ID, base.Add(time.Duration(i*10+j)*time.Second))
		}
	}

	followed := map[string]bool{viewer: true, users[1]: true}
	owner := make(map[string]string, len(tickets))
	for _, tk := range tickets {
		owner[tk.ID] = tk.UserID
	}

	page, err := svc.Feed(ctx, viewer, 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	for _, it := range page.Items {
		switch it.Kind {
		case FeedKindTicket:
			require.True(t, followed[it.Ticket.UserID])
		case FeedKindReview:
			ok := followed[it.Review.UserID] || owner[it.Review.TicketID] == viewer
			require.True(t, ok, "review %s violates visibility", it.Review.ID)
		}
	}
}
