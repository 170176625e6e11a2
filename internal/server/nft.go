package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomasen/realip"

	goapi "github.com/Decentr-net/go-api"

	"github.com/Decentr-net/resume/internal/avatar"
	"github.com/Decentr-net/resume/internal/indexer"
	"github.com/Decentr-net/resume/pkg/api"
)

// listNFTsHandler returns NFTs owned by wallet.
func (s *server) listNFTsHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /nfts NFT ListNFTs
	//
	// Returns NFTs owned by wallet
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: wallet
	//   description: owner's wallet
	//   in: query
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: owned NFTs
	//     schema:
	//       "$ref": "#/definitions/NFTsResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '429':
	//     description: too many requests
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		goapi.WriteError(w, http.StatusBadRequest, "Missing wallet")
		return
	}

	ip := realip.FromRequest(r)
	if s.nftsThrottler.Throttle(ip) {
		goapi.WriteError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}

	nfts, err := s.ix.ListNFTs(r.Context(), wallet)
	if err != nil {
		if errors.Is(err, indexer.ErrInvalidOwner) {
			goapi.WriteError(w, http.StatusBadRequest, "Invalid wallet")
			return
		}
		goapi.WriteInternalErrorf(r.Context(), w, "failed to list nfts: %s", err.Error())
		return
	}
	s.nftsThrottler.Reset(ip)

	goapi.WriteOK(w, http.StatusOK, api.NFTsResponse{NFTs: toAPINFTs(nfts)})
}

// getAvatarHandler returns profile's avatar with frame.
func (s *server) getAvatarHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profile/avatar Profile GetAvatar
	//
	// Returns profile's avatar with frame
	//
	// ---
	// produces:
	// - image/png
	// parameters:
	// - name: wallet
	//   description: profile's wallet
	//   in: query
	//   required: true
	//   type: string
	// - name: size
	//   description: avatar's side in pixels
	//   in: query
	//   required: false
	//   type: integer
	//   minimum: 64
	//   maximum: 1024
	//   default: 256
	// responses:
	//   '200':
	//     description: png image
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: avatar not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		goapi.WriteError(w, http.StatusBadRequest, "Missing wallet")
		return
	}

	var size int
	if v := r.URL.Query().Get("size"); v != "" {
		var err error
		if size, err = strconv.Atoi(v); err != nil {
			goapi.WriteError(w, http.StatusBadRequest, "Invalid size")
			return
		}
	}

	data, err := s.av.Render(r.Context(), wallet, size)
	if err != nil {
		switch {
		case errors.Is(err, avatar.ErrInvalidSize):
			goapi.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, avatar.ErrNotFound):
			goapi.WriteError(w, http.StatusNotFound, "Avatar not found")
		default:
			goapi.WriteInternalErrorf(r.Context(), w, "failed to render avatar: %s", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data) // nolint:gosec,errcheck
}
