package service

import (
	"context"
	"sort"
	"time"

	"github.com/chpancrate/litreview/internal/model"
	"github.com/chpancrate/litreview/internal/repository"
)

type FeedKind string

const (
	FeedKindTicket FeedKind = "ticket"
	FeedKindReview FeedKind = "review"
)

// FeedItem 标签联合：Ticket 或 Review 二选一，不落库，每次请求现算
type FeedItem struct {
	Kind   FeedKind      `json:"kind"`
	Ticket *model.Ticket `json:"ticket,omitempty"`
	Review *model.Review `json:"review,omitempty"`
}

// CreatedAt 排序键的统一取值入口
func (it FeedItem) CreatedAt() time.Time {
	if it.Kind == FeedKindTicket {
		return it.Ticket.CreatedAt
	}
	return it.Review.CreatedAt
}

// ItemID 时间相同时的次级排序键
func (it FeedItem) ItemID() string {
	if it.Kind == FeedKindTicket {
		return it.Ticket.ID
	}
	return it.Review.ID
}

// FeedPage 一页信息流及分页元数据
type FeedPage struct {
	Items      []FeedItem `json:"items"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalItems int        `json:"total_items"`
	TotalPages int        `json:"total_pages"`
	HasNext    bool       `json:"has_next"`
	HasPrev    bool       `json:"has_prev"`
}

// HomeFeed 首页：个人流与全站流各取最近 N 条
type HomeFeed struct {
	Personal []FeedItem `json:"personal"`
	Global   []FeedItem `json:"global"`
}

// feedSource 可见性谓词：返回某视角下可见的 tickets 与 reviews
type feedSource func(ctx context.Context) ([]*model.Ticket, []*model.Review, error)

type FeedService interface {
	// Feed 个人信息流：自己 + 关注的人 + 别人评自己 Ticket 的 Review
	Feed(ctx context.Context, userID string, page int) (*FeedPage, error)
	// Posts 仅自己发布的内容
	Posts(ctx context.Context, userID string, page int) (*FeedPage, error)
	Home(ctx context.Context, userID string) (*HomeFeed, error)
}

type feedService struct {
	ticketRepo repository.TicketRepository
	reviewRepo repository.ReviewRepository
	followRepo repository.FollowRepository
	pageSize   int
	homeSize   int
}

func NewFeedService(ticketRepo repository.TicketRepository, reviewRepo repository.ReviewRepository, followRepo repository.FollowRepository, pageSize, homeSize int) FeedService {
	if pageSize <= 0 {
		pageSize = 5
	}
	if homeSize <= 0 {
		homeSize = 3
	}
	return &feedService{ticketRepo: ticketRepo, reviewRepo: reviewRepo, followRepo: followRepo, pageSize: pageSize, homeSize: homeSize}
}

func (s *feedService) Feed(ctx context.Context, userID string, page int) (*FeedPage, error) {
	return s.pageOf(ctx, s.visibleSource(userID), page)
}

func (s *feedService) Posts(ctx context.Context, userID string, page int) (*FeedPage, error) {
	return s.pageOf(ctx, s.ownSource(userID), page)
}

func (s *feedService) Home(ctx context.Context, userID string) (*HomeFeed, error) {
	tickets, reviews, err := s.visibleSource(userID)(ctx)
	if err != nil {
		return nil, err
	}
	personal := mergeFeed(tickets, reviews)
	if len(personal) > s.homeSize {
		personal = personal[:s.homeSize]
	}

	allTickets, err := s.ticketRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	allReviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	global := mergeFeed(allTickets, allReviews)
	if len(global) > s.homeSize {
		global = global[:s.homeSize]
	}
	return &HomeFeed{Personal: personal, Global: global}, nil
}

// visibleSource 社交图谱视角：作者 ∈ {自己} ∪ 关注集合，
// Review 额外放行"评论对象是自己的 Ticket"
func (s *feedService) visibleSource(userID string) feedSource {
	return func(ctx context.Context) ([]*model.Ticket, []*model.Review, error) {
		followed, err := s.followRepo.ListFollowedIDs(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		authors := append(followed, userID)
		tickets, err := s.ticketRepo.ListByAuthors(ctx, authors)
		if err != nil {
			return nil, nil, err
		}
		reviews, err := s.reviewRepo.ListVisible(ctx, authors, userID)
		if err != nil {
			return nil, nil, err
		}
		return tickets, reviews, nil
	}
}

// ownSource 仅本人视角
func (s *feedService) ownSource(userID string) feedSource {
	return func(ctx context.Context) ([]*model.Ticket, []*model.Review, error) {
		authors := []string{userID}
		tickets, err := s.ticketRepo.ListByAuthors(ctx, authors)
		if err != nil {
			return nil, nil, err
		}
		reviews, err := s.reviewRepo.ListByAuthors(ctx, authors)
		if err != nil {
			return nil, nil, err
		}
		return tickets, reviews, nil
	}
}

func (s *feedService) pageOf(ctx context.Context, src feedSource, page int) (*FeedPage, error) {
	tickets, reviews, err := src(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(mergeFeed(tickets, reviews), page, s.pageSize), nil
}

// mergeFeed 打标签合并后按创建时间倒序排列。
// 时间完全相同的条目按 ID 倒序，保证顺序可重现。
func mergeFeed(tickets []*model.Ticket, reviews []*model.Review) []FeedItem {
	items := make([]FeedItem, 0, len(tickets)+len(reviews))
	for _, t := range tickets {
		items = append(items, FeedItem{Kind: FeedKindTicket, Ticket: t})
	}
	for _, rv := range reviews {
		items = append(items, FeedItem{Kind: FeedKindReview, Review: rv})
	}
	sort.Slice(items, func(i, j int) bool {
		ti, tj := items[i].CreatedAt(), items[j].CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].ItemID() > items[j].ItemID()
	})
	return items
}

// paginate 越界页码收敛到边界而不是报错；空集返回 1 页 0 条
func paginate(items []FeedItem, page, size int) *FeedPage {
	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return &FeedPage{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
