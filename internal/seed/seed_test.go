package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
	"github.com/pribylovaa/go-zen-koans/internal/threads"
	"github.com/pribylovaa/go-zen-koans/mocks"
)

var base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRun_CreatesEverythingInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ms := mocks.NewMockSeeder(ctrl)

	var koans []models.Koan
	var comments []models.Comment

	ms.EXPECT().CreateKoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, k models.Koan) (*models.Koan, error) {
			koans = append(koans, k)
			return &k, nil
		}).Times(5)
	ms.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			comments = append(comments, c)
			return &c, nil
		}).Times(9)

	res, err := Run(context.Background(), ms, base)
	require.NoError(t, err)
	require.Equal(t, Result{Koans: 5, Comments: 9}, res)

	require.Equal(t, Koans(), koans)
	for i, c := range comments {
		require.Equal(t, base.Add(time.Duration(i)*time.Second), c.Date)
	}
}

func TestRun_AlreadySeeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ms := mocks.NewMockSeeder(ctrl)

	ms.EXPECT().CreateKoan(gomock.Any(), gomock.Any()).Return(nil, storage.ErrConflict)

	res, err := Run(context.Background(), ms, base)
	require.NoError(t, err)
	require.True(t, res.Skipped)
}

func TestRun_Errors(t *testing.T) {
	errDB := errors.New("db down")

	t.Run("conflict mid-way", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ms := mocks.NewMockSeeder(ctrl)

		gomock.InOrder(
			ms.EXPECT().CreateKoan(gomock.Any(), gomock.Any()).Return(&models.Koan{}, nil),
			ms.EXPECT().CreateKoan(gomock.Any(), gomock.Any()).Return(nil, storage.ErrConflict),
		)

		res, err := Run(context.Background(), ms, base)
		require.ErrorIs(t, err, storage.ErrConflict)
		require.Equal(t, 1, res.Koans)
		require.False(t, res.Skipped)
	})

	t.Run("comment failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ms := mocks.NewMockSeeder(ctrl)

		ms.EXPECT().CreateKoan(gomock.Any(), gomock.Any()).Return(&models.Koan{}, nil).Times(5)
		ms.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Return(nil, errDB)

		res, err := Run(context.Background(), ms, base)
		require.ErrorIs(t, err, errDB)
		require.Equal(t, 5, res.Koans)
		require.Zero(t, res.Comments)
	})
}

// Данные согласованы с построителем веток: предусловия выполняются,
// а единственная межкоановая ссылка собирается как сирота.
func TestData_BuildsThreads(t *testing.T) {
	byKoan := map[string][]models.Comment{}
	for i, c := range Comments() {
		c.Date = base.Add(time.Duration(i) * time.Second)
		byKoan[c.KoanID] = append(byKoan[c.KoanID], c)
	}

	ids := map[string]bool{}
	for _, k := range Koans() {
		ids[k.ID] = true
	}
	for koanID := range byKoan {
		require.True(t, ids[koanID], "unknown koan %q", koanID)
	}

	want := map[string]struct {
		roots   int
		orphans int
	}{
		koanMu:     {1, 0},
		koanFlag:   {1, 0},
		koanYunmen: {1, 0},
		koanCup:    {2, 1},
		koanWood:   {1, 0},
	}

	for _, k := range Koans() {
		k := k
		kwc, st, err := threads.AssembleWithStats(&k, byKoan[k.ID])
		require.NoError(t, err)
		require.Equal(t, want[k.ID].roots, len(kwc.Comments), k.ID)
		require.Equal(t, want[k.ID].orphans, st.Orphans, k.ID)
	}

	mu := byKoan[koanMu]
	kwc, err := threads.Assemble(&Koans()[0], mu)
	require.NoError(t, err)
	require.Len(t, kwc.Comments[0].Replies, 2)
	require.Equal(t, "comment-2", kwc.Comments[0].Replies[0].ID)
	require.Equal(t, "comment-3", kwc.Comments[0].Replies[1].ID)
}
