package server

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	apitest "github.com/Decentr-net/go-api/test"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/service"
	"github.com/Decentr-net/resume/internal/service/mock"
)

const testWallet = "So11111111111111111111111111111111111111112"
const testViewer = "11111111111111111111111111111111"

var errSkip = errors.New("fictive error")
var errTest = errors.New("test error")

func TestServer_GetProfileHandler(t *testing.T) {
	tt := []struct {
		name    string
		uri     string
		profile *entities.Profile
		err     error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name: "success",
			uri:  "api/profile?wallet=" + testWallet,
			profile: &entities.Profile{
				Wallet:        testWallet,
				Nickname:      "neo",
				AvatarID:      "nft1",
				SelectedNFTs:  []string{"nft1", "nft2"},
				Frame:         entities.FrameGold,
				CurrentReward: 3,
				UpdatedAt:     time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
			},
			rcode: http.StatusOK,
			rdata: `{"wallet":"` + testWallet + `","nickname":"neo","avatarId":"nft1","selectedNFTs":["nft1","nft2"],"frame":"gold","currentReward":3,"updatedAt":"2021-06-01T12:00:00Z"}`,
		},
		{
			name: "empty selected nfts",
			uri:  "api/profile?wallet=" + testWallet,
			profile: &entities.Profile{
				Wallet:    testWallet,
				Frame:     entities.Frame("custom"),
				UpdatedAt: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
			},
			rcode: http.StatusOK,
			rdata: `{"wallet":"` + testWallet + `","nickname":"","avatarId":"","selectedNFTs":[],"frame":"custom","currentReward":0,"updatedAt":"2021-06-01T12:00:00Z"}`,
		},
		{
			name:  "missing wallet",
			uri:   "api/profile",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"Missing wallet"}`,
		},
		{
			name:  "not found",
			uri:   "api/profile?wallet=" + testWallet,
			err:   service.ErrNotFound,
			rcode: http.StatusNotFound,
			rdata: `{"error":"Profile not found"}`,
		},
		{
			name:  "internal error",
			uri:   "api/profile?wallet=" + testWallet,
			err:   errTest,
			rcode: http.StatusInternalServerError,
			rdata: `{"error":"internal error"}`,
			rlog:  "failed to get profile: test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, tc.uri, nil)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().GetProfile(gomock.Any(), testWallet).Return(tc.profile, tc.err)
			}

			router := chi.NewRouter()
			s := server{s: srv}
			router.Get("/api/profile", s.getProfileHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_SaveProfileHandler(t *testing.T) {
	tt := []struct {
		name   string
		body   string
		params *service.SaveProfileParams
		err    error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name: "success",
			body: `{"wallet":"w1","nickname":"neo","avatarId":"nft1","selectedNFTs":["nft1"],"frame":"rainbow"}`,
			params: &service.SaveProfileParams{
				Wallet:       "w1",
				Nickname:     "neo",
				AvatarID:     "nft1",
				SelectedNFTs: []string{"nft1"},
				Frame:        entities.FrameRainbow,
			},
			rcode: http.StatusOK,
			rdata: `{"message":"Profile saved"}`,
		},
		{
			name:   "only wallet",
			body:   `{"wallet":"w1"}`,
			params: &service.SaveProfileParams{Wallet: "w1"},
			rcode:  http.StatusOK,
			rdata:  `{"message":"Profile saved"}`,
		},
		{
			name:  "missing wallet",
			body:  `{"nickname":"neo"}`,
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"Missing wallet"}`,
		},
		{
			name:  "invalid json",
			body:  `some data`,
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"request is invalid: invalid character 's' looking for beginning of value"}`,
		},
		{
			name:   "internal error",
			body:   `{"wallet":"w1"}`,
			params: &service.SaveProfileParams{Wallet: "w1"},
			err:    errTest,
			rcode:  http.StatusInternalServerError,
			rdata:  `{"error":"internal error"}`,
			rlog:   "failed to save profile: test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodPost, "api/profile", []byte(tc.body))

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().SaveProfile(gomock.Any(), tc.params).Return(tc.err)
			}

			router := chi.NewRouter()
			s := server{s: srv}
			router.Post("/api/profile", s.saveProfileHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_RecordViewHandler(t *testing.T) {
	tt := []struct {
		name string
		uri  string
		res  *entities.ViewResult
		err  error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name:  "recorded",
			uri:   "api/profile/views?wallet=" + testWallet + "&viewerWallet=" + testViewer,
			res:   &entities.ViewResult{Recorded: true, Reward: 1, RecentViews: 10},
			rcode: http.StatusOK,
			rdata: `{"message":"View recorded","currentReward":1,"recentViews":10}`,
		},
		{
			name:  "already counted",
			uri:   "api/profile/views?wallet=" + testWallet + "&viewerWallet=" + testViewer,
			res:   &entities.ViewResult{Recorded: false, Reward: 0, RecentViews: 9},
			rcode: http.StatusOK,
			rdata: `{"message":"View already counted","currentReward":0,"recentViews":9}`,
		},
		{
			name:  "missing viewer",
			uri:   "api/profile/views?wallet=" + testWallet,
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"Missing wallet or viewer wallet"}`,
		},
		{
			name:  "missing wallet",
			uri:   "api/profile/views?viewerWallet=" + testViewer,
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"Missing wallet or viewer wallet"}`,
		},
		{
			name:  "internal error",
			uri:   "api/profile/views?wallet=" + testWallet + "&viewerWallet=" + testViewer,
			err:   errTest,
			rcode: http.StatusInternalServerError,
			rdata: `{"error":"internal error"}`,
			rlog:  "failed to record view: test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodPost, tc.uri, nil)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().RecordView(gomock.Any(), testWallet, testViewer).Return(tc.res, tc.err)
			}

			router := chi.NewRouter()
			s := server{s: srv}
			router.Post("/api/profile/views", s.recordViewHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_GetViewStatsHandler(t *testing.T) {
	tt := []struct {
		name  string
		uri   string
		stats *entities.ViewStats
		err   error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name:  "success",
			uri:   "api/profile/views?wallet=" + testWallet,
			stats: &entities.ViewStats{TotalViews: 25, RecentViews: 12, Reward: 1},
			rcode: http.StatusOK,
			rdata: `{"totalViews":25,"recentViews":12,"currentReward":1}`,
		},
		{
			name:  "no views",
			uri:   "api/profile/views?wallet=" + testWallet,
			stats: &entities.ViewStats{},
			rcode: http.StatusOK,
			rdata: `{"totalViews":0,"recentViews":0,"currentReward":0}`,
		},
		{
			name:  "missing wallet",
			uri:   "api/profile/views",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"Missing wallet"}`,
		},
		{
			name:  "internal error",
			uri:   "api/profile/views?wallet=" + testWallet,
			err:   errTest,
			rcode: http.StatusInternalServerError,
			rdata: `{"error":"internal error"}`,
			rlog:  "failed to get view stats: test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, tc.uri, nil)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().GetViewStats(gomock.Any(), testWallet).Return(tc.stats, tc.err)
			}

			router := chi.NewRouter()
			s := server{s: srv}
			router.Get("/api/profile/views", s.getViewStatsHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_GetRewardsHandler(t *testing.T) {
	tt := []struct {
		name    string
		uri     string
		rewards *entities.Rewards
		err     error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name: "success",
			uri:  "api/profile/rewards?wallet=" + testWallet,
			rewards: &entities.Rewards{
				TotalViews: 12,
				Milestones: []entities.Milestone{
					{ID: "1", Name: "Newcomer", Description: "d1", ViewsRequired: 10, Achieved: true},
					{ID: "2", Name: "Popular", Description: "d2", ViewsRequired: 50},
				},
			},
			rcode: http.StatusOK,
			rdata: `{"totalViews":12,"milestones":[` +
				`{"id":"1","name":"Newcomer","description":"d1","viewsRequired":10,"achieved":true},` +
				`{"id":"2","name":"Popular","description":"d2","viewsRequired":50,"achieved":false}]}`,
		},
		{
			name:  "missing wallet",
			uri:   "api/profile/rewards",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"Missing wallet"}`,
		},
		{
			name:  "internal error",
			uri:   "api/profile/rewards?wallet=" + testWallet,
			err:   errTest,
			rcode: http.StatusInternalServerError,
			rdata: `{"error":"internal error"}`,
			rlog:  "failed to get rewards: test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, tc.uri, nil)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().GetRewards(gomock.Any(), testWallet).Return(tc.rewards, tc.err)
			}

			router := chi.NewRouter()
			s := server{s: srv}
			router.Get("/api/profile/rewards", s.getRewardsHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}
