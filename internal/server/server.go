// Package server Resume
//
// The Resume is a keeper of wallets' public profiles. It counts profiles' views and rewards owners for them.
//
//     Schemes: https
//     BasePath: /api
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	goapi "github.com/Decentr-net/go-api"

	"github.com/Decentr-net/resume/internal/avatar"
	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/indexer"
	"github.com/Decentr-net/resume/internal/service"
	"github.com/Decentr-net/resume/internal/throttler"
	"github.com/Decentr-net/resume/pkg/api"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

// Options ...
type Options struct {
	MaxBodySize    int64
	RequestTimeout time.Duration

	// Indexer enables NFTs routes.
	Indexer indexer.Indexer
	// Renderer enables avatar route.
	Renderer avatar.Renderer
	// NFTsThrottler limits NFTs requests per client.
	NFTsThrottler throttler.Throttler
}

type server struct {
	s  service.Service
	ix indexer.Indexer
	av avatar.Renderer

	nftsThrottler throttler.Throttler
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, opts Options) {
	r.Use(
		goapi.FileServerMiddleware("/docs", "static"),
		goapi.LoggerMiddleware,
		goapi.RequestIDMiddleware,
		middleware.StripSlashes,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}),
		goapi.RecovererMiddleware,
		goapi.TimeoutMiddleware(opts.RequestTimeout),
		goapi.BodyLimiterMiddleware(opts.MaxBodySize),
	)

	srv := server{
		s:             s,
		ix:            opts.Indexer,
		av:            opts.Renderer,
		nftsThrottler: opts.NFTsThrottler,
	}

	if srv.nftsThrottler == nil {
		srv.nftsThrottler = throttler.New(0)
	}

	r.Get("/api/profile", srv.getProfileHandler)
	r.Post("/api/profile", srv.saveProfileHandler)
	r.Get("/api/profile/views", srv.getViewStatsHandler)
	r.Post("/api/profile/views", srv.recordViewHandler)
	r.Get("/api/profile/rewards", srv.getRewardsHandler)

	if srv.ix != nil {
		r.Get("/api/nfts", srv.listNFTsHandler)
	}

	if srv.av != nil {
		r.Get("/api/profile/avatar", srv.getAvatarHandler)
	}
}

func toAPIProfile(p *entities.Profile) api.Profile {
	nfts := p.SelectedNFTs
	if nfts == nil {
		nfts = []string{}
	}

	return api.Profile{
		Wallet:        p.Wallet,
		Nickname:      p.Nickname,
		AvatarID:      p.AvatarID,
		SelectedNFTs:  nfts,
		Frame:         string(p.Frame),
		CurrentReward: p.CurrentReward,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toAPIMilestones(m []entities.Milestone) []api.Milestone {
	out := make([]api.Milestone, len(m))
	for i, v := range m {
		out[i] = api.Milestone{
			ID:            v.ID,
			Name:          v.Name,
			Description:   v.Description,
			ViewsRequired: v.ViewsRequired,
			Achieved:      v.Achieved,
		}
	}
	return out
}

func toAPINFTs(n []entities.NFT) []api.NFT {
	out := make([]api.NFT, len(n))
	for i, v := range n {
		out[i] = api.NFT{
			ID:    v.ID,
			Name:  v.Name,
			Image: v.Image,
		}
	}
	return out
}
