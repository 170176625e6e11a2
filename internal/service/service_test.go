package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/producer"
	pmock "github.com/Decentr-net/resume/internal/producer/mock"
	"github.com/Decentr-net/resume/internal/storage"
	"github.com/Decentr-net/resume/internal/storage/mock"
)

var ctx = context.Background()
var errTest = errors.New("test")
var testNow = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*service, *mock.MockIndexStorage, *pmock.MockProducer) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	is := mock.NewMockIndexStorage(ctrl)
	p := pmock.NewMockProducer(ctrl)

	s := New(is, p).(*service)
	s.now = func() time.Time { return testNow }

	is.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(storage.IndexStorage) error) error {
		return f(is)
	}).AnyTimes()

	return s, is, p
}

func TestReward(t *testing.T) {
	tt := []struct {
		views  uint64
		reward uint64
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{19, 1},
		{20, 2},
		{105, 10},
	}

	for _, tc := range tt {
		assert.Equal(t, tc.reward, Reward(tc.views), tc.views)
	}
}

func TestService_GetProfile(t *testing.T) {
	s, is, _ := newTestService(t)

	expected := &entities.Profile{
		Wallet:   "abc",
		Nickname: "Neo",
		Frame:    entities.FrameGold,
	}

	is.EXPECT().GetProfile(ctx, "abc").Return(expected, nil)

	p, err := s.GetProfile(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, expected, p)
}

func TestService_GetProfile_NotFound(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().GetProfile(ctx, "xyz").Return(nil, storage.ErrNotFound)

	_, err := s.GetProfile(ctx, "xyz")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetProfile(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetProfile_Error(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().GetProfile(ctx, "abc").Return(nil, errTest)

	_, err := s.GetProfile(ctx, "abc")
	require.ErrorIs(t, err, errTest)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestService_SaveProfile(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().SetProfile(ctx, &storage.SetProfileParams{
		Wallet:       "abc",
		Nickname:     "Neo",
		AvatarID:     "nft1",
		SelectedNFTs: []string{"nft1", "nft2"},
		Frame:        entities.FrameGold,
		UpdatedAt:    testNow,
	}).Return(nil)

	require.NoError(t, s.SaveProfile(ctx, &SaveProfileParams{
		Wallet:       "abc",
		Nickname:     "Neo",
		AvatarID:     "nft1",
		SelectedNFTs: []string{"nft1", "nft2"},
		Frame:        entities.FrameGold,
	}))
}

func TestService_SaveProfile_InvalidInput(t *testing.T) {
	s, _, _ := newTestService(t)

	require.ErrorIs(t, s.SaveProfile(ctx, &SaveProfileParams{Nickname: "Neo"}), ErrInvalidInput)
	require.ErrorIs(t, s.SaveProfile(ctx, nil), ErrInvalidInput)
}

func TestService_SaveProfile_Error(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().SetProfile(ctx, gomock.Any()).Return(errTest)

	require.ErrorIs(t, s.SaveProfile(ctx, &SaveProfileParams{Wallet: "abc"}), errTest)
}

func TestService_RecordView(t *testing.T) {
	s, is, p := newTestService(t)

	since := testNow.Add(-ViewWindow)

	gomock.InOrder(
		is.EXPECT().LockView(ctx, "abc", "viewer").Return(nil),
		is.EXPECT().HasViewSince(ctx, "abc", "viewer", since).Return(false, nil),
		is.EXPECT().CreateView(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, v *entities.View) error {
			assert.NotEmpty(t, v.ID)
			assert.Equal(t, "abc", v.ProfileWallet)
			assert.Equal(t, "viewer", v.ViewerWallet)
			assert.Equal(t, testNow, v.Timestamp)
			return nil
		}),
		is.EXPECT().LockProfile(ctx, "abc").Return(nil),
		is.EXPECT().CountViews(ctx, "abc", since).Return(uint64(10), nil),
		is.EXPECT().SetProfileReward(ctx, "abc", uint64(1)).Return(nil),
	)

	p.EXPECT().Produce(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *producer.ViewMessage) error {
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "abc", m.ProfileWallet)
		assert.Equal(t, "viewer", m.ViewerWallet)
		assert.EqualValues(t, 10, m.RecentViews)
		assert.EqualValues(t, 1, m.Reward)
		return nil
	})

	res, err := s.RecordView(ctx, "abc", "viewer")
	require.NoError(t, err)
	assert.Equal(t, &entities.ViewResult{
		Recorded:    true,
		Reward:      1,
		RecentViews: 10,
	}, res)
}

func TestService_RecordView_Duplicate(t *testing.T) {
	s, is, _ := newTestService(t)

	since := testNow.Add(-ViewWindow)

	is.EXPECT().LockView(ctx, "abc", "viewer").Return(nil)
	is.EXPECT().HasViewSince(ctx, "abc", "viewer", since).Return(true, nil)
	is.EXPECT().CountViews(ctx, "abc", since).Return(uint64(9), nil)

	res, err := s.RecordView(ctx, "abc", "viewer")
	require.NoError(t, err)
	assert.Equal(t, &entities.ViewResult{
		Recorded:    false,
		Reward:      0,
		RecentViews: 9,
	}, res)
}

func TestService_RecordView_DistinctViewers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	is := mock.NewMockIndexStorage(ctrl)
	s := New(is, nil).(*service)
	s.now = func() time.Time { return testNow }

	var views []*entities.View

	is.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(storage.IndexStorage) error) error {
		return f(is)
	}).AnyTimes()
	is.EXPECT().LockView(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	is.EXPECT().HasViewSince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, profile, viewer string, since time.Time) (bool, error) {
			for _, v := range views {
				if v.ProfileWallet == profile && v.ViewerWallet == viewer && !v.Timestamp.Before(since) {
					return true, nil
				}
			}
			return false, nil
		}).AnyTimes()
	is.EXPECT().CreateView(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *entities.View) error {
		views = append(views, v)
		return nil
	}).AnyTimes()
	is.EXPECT().LockProfile(gomock.Any(), "abc").Return(nil).AnyTimes()
	is.EXPECT().CountViews(gomock.Any(), "abc", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, since time.Time) (uint64, error) {
			var n uint64
			for _, v := range views {
				if !v.Timestamp.Before(since) {
					n++
				}
			}
			return n, nil
		}).AnyTimes()
	is.EXPECT().SetProfileReward(gomock.Any(), "abc", gomock.Any()).Return(nil).AnyTimes()

	for i := 1; i <= 9; i++ {
		res, err := s.RecordView(ctx, "abc", fmt.Sprintf("viewer%d", i))
		require.NoError(t, err)
		require.EqualValues(t, i, res.RecentViews)
		require.EqualValues(t, 0, res.Reward)
	}

	res, err := s.RecordView(ctx, "abc", "viewer10")
	require.NoError(t, err)
	assert.EqualValues(t, 10, res.RecentViews)
	assert.EqualValues(t, 1, res.Reward)

	again, err := s.RecordView(ctx, "abc", "viewer10")
	require.NoError(t, err)
	assert.False(t, again.Recorded)
	assert.Equal(t, res.RecentViews, again.RecentViews)
	assert.Equal(t, res.Reward, again.Reward)
	assert.Len(t, views, 10)

	// the first viewer is counted again after the window
	s.now = func() time.Time { return testNow.Add(ViewWindow + time.Second) }
	res, err = s.RecordView(ctx, "abc", "viewer1")
	require.NoError(t, err)
	assert.True(t, res.Recorded)
	assert.EqualValues(t, 1, res.RecentViews)
}

func TestService_RecordView_InvalidInput(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.RecordView(ctx, "", "viewer")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.RecordView(ctx, "abc", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RecordView_ProducerError(t *testing.T) {
	s, is, p := newTestService(t)

	is.EXPECT().LockView(ctx, "abc", "viewer").Return(nil)
	is.EXPECT().HasViewSince(ctx, "abc", "viewer", gomock.Any()).Return(false, nil)
	is.EXPECT().CreateView(ctx, gomock.Any()).Return(nil)
	is.EXPECT().LockProfile(ctx, "abc").Return(nil)
	is.EXPECT().CountViews(ctx, "abc", gomock.Any()).Return(uint64(1), nil)
	is.EXPECT().SetProfileReward(ctx, "abc", uint64(0)).Return(nil)
	p.EXPECT().Produce(ctx, gomock.Any()).Return(errTest)

	res, err := s.RecordView(ctx, "abc", "viewer")
	require.NoError(t, err)
	assert.True(t, res.Recorded)
}

func TestService_RecordView_StorageError(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().LockView(ctx, "abc", "viewer").Return(nil)
	is.EXPECT().HasViewSince(ctx, "abc", "viewer", gomock.Any()).Return(false, nil)
	is.EXPECT().CreateView(ctx, gomock.Any()).Return(errTest)

	_, err := s.RecordView(ctx, "abc", "viewer")
	require.ErrorIs(t, err, errTest)
}

func TestService_RecordView_LockProfileError(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().LockView(ctx, "abc", "viewer").Return(nil)
	is.EXPECT().HasViewSince(ctx, "abc", "viewer", gomock.Any()).Return(false, nil)
	is.EXPECT().CreateView(ctx, gomock.Any()).Return(nil)
	is.EXPECT().LockProfile(ctx, "abc").Return(errTest)

	_, err := s.RecordView(ctx, "abc", "viewer")
	require.ErrorIs(t, err, errTest)
}

func TestService_GetViewStats(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().CountViews(ctx, "abc", time.Time{}).Return(uint64(42), nil)
	is.EXPECT().CountViews(ctx, "abc", testNow.Add(-ViewWindow)).Return(uint64(25), nil)

	stats, err := s.GetViewStats(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, &entities.ViewStats{
		TotalViews:  42,
		RecentViews: 25,
		Reward:      2,
	}, stats)

	_, err = s.GetViewStats(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetViewStats_Error(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().CountViews(ctx, "abc", time.Time{}).Return(uint64(0), errTest)

	_, err := s.GetViewStats(ctx, "abc")
	require.ErrorIs(t, err, errTest)
}

func TestService_GetRewards(t *testing.T) {
	s, is, _ := newTestService(t)

	is.EXPECT().CountViews(ctx, "abc", time.Time{}).Return(uint64(60), nil)

	r, err := s.GetRewards(ctx, "abc")
	require.NoError(t, err)
	require.EqualValues(t, 60, r.TotalViews)
	require.Len(t, r.Milestones, 4)

	achieved := make([]bool, len(r.Milestones))
	for i, v := range r.Milestones {
		achieved[i] = v.Achieved
	}
	assert.Equal(t, []bool{true, true, false, false}, achieved)

	_, err = s.GetRewards(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMilestones(t *testing.T) {
	m := GetMilestones(500)
	for _, v := range m {
		assert.True(t, v.Achieved, v.Name)
	}

	m = GetMilestones(9)
	for _, v := range m {
		assert.False(t, v.Achieved, v.Name)
	}

	// catalogue itself stays untouched
	for _, v := range milestones {
		assert.False(t, v.Achieved)
	}
}
