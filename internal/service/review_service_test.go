package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chpancrate/litreview/internal/repository"
)

func newTestReviewService(db *gorm.DB) ReviewService {
	return NewReviewService(db, repository.NewReviewRepository(db), repository.NewTicketRepository(db))
}

func TestReviewCreateRequiresTicket(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestReviewService(db)
	ctx := context.Background()

	eve := seedUser(t, db, "eve")
	_, err := svc.Create(ctx, eve, "missing-ticket", ReviewInput{Rating: 3, Headline: "h"})
	require.ErrorIs(t, err, ErrNotFound)

	frank := seedUser(t, db, "frank")
	tk := seedTicket(t, db, frank, testTime())

	rv, err := svc.Create(ctx, eve, tk.ID, ReviewInput{Rating: 5, Headline: "great", Body: "loved it"})
	require.NoError(t, err)
	require.Equal(t, tk.ID, rv.TicketID)
	require.Equal(t, eve, rv.UserID)
}

func TestReviewOwnership(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestReviewService(db)
	ctx := context.Background()

	eve := seedUser(t, db, "eve")
	mallory := seedUser(t, db, "mallory")
	frank := seedUser(t, db, "frank")
	tk := seedTicket(t, db, frank, testTime())

	rv, err := svc.Create(ctx, eve, tk.ID, ReviewInput{Rating: 2, Headline: "meh"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, mallory, rv.ID, ReviewInput{Rating: 5, Headline: "hacked"})
	require.ErrorIs(t, err, ErrNotOwner)
	require.ErrorIs(t, svc.Delete(ctx, mallory, rv.ID), ErrNotOwner)

	updated, err := svc.Update(ctx, eve, rv.ID, ReviewInput{Rating: 3, Headline: "ok actually"})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Rating)

	require.NoError(t, svc.Delete(ctx, eve, rv.ID))
	require.ErrorIs(t, svc.Delete(ctx, eve, rv.ID), ErrNotFound)
}

// 自发自评：同一事务内创建 Ticket 和 Review
func TestCreateReviewWithTicket(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestReviewService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	tk, rv, err := svc.CreateWithTicket(ctx, alice,
		TicketInput{Title: "Solaris"},
		ReviewInput{Rating: 4, Headline: "strange and good"},
	)
	require.NoError(t, err)
	require.Equal(t, alice, tk.UserID)
	require.Equal(t, alice, rv.UserID)
	require.Equal(t, tk.ID, rv.TicketID)

	got, err := svc.Get(ctx, rv.ID)
	require.NoError(t, err)
	require.Equal(t, tk.ID, got.TicketID)
}

// 原始数据模型未限制同一用户重复评论同一 Ticket，沿用
func TestDuplicateReviewPerTicketAllowed(t *testing.T) {
	db := setupFeedDB(t)
	svc := newTestReviewService(db)
	ctx := context.Background()

	eve := seedUser(t, db, "eve")
	frank := seedUser(t, db, "frank")
	tk := seedTicket(t, db, frank, testTime())

	_, err := svc.Create(ctx, eve, tk.ID, ReviewInput{Rating: 1, Headline: "first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, eve, tk.ID, ReviewInput{Rating: 5, Headline: "changed my mind"})
	require.NoError(t, err)
}
