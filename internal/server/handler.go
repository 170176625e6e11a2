package server

import (
	"encoding/json"
	"errors"
	"net/http"

	goapi "github.com/Decentr-net/go-api"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/service"
	"github.com/Decentr-net/resume/pkg/api"
)

// getProfileHandler returns profile by wallet.
func (s *server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profile Profile GetProfile
	//
	// Returns profile
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: wallet
	//   description: profile's wallet
	//   in: query
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: profile
	//     schema:
	//       "$ref": "#/definitions/Profile"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: profile not found
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

	p, err := s.s.GetProfile(r.Context(), wallet)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			goapi.WriteError(w, http.StatusNotFound, "Profile not found")
			return
		}
		goapi.WriteInternalErrorf(r.Context(), w, "failed to get profile: %s", err.Error())
		return
	}

	goapi.WriteOK(w, http.StatusOK, toAPIProfile(p))
}

// saveProfileHandler creates or overwrites profile.
func (s *server) saveProfileHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /profile Profile SaveProfile
	//
	// Creates or overwrites profile
	//
	// ---
	// produces:
	// - application/json
	// consumes:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/SaveProfileRequest"
	// responses:
	//   '200':
	//     description: profile was saved
	//     schema:
	//       "$ref": "#/definitions/MessageResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	var req api.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		goapi.WriteErrorf(w, http.StatusBadRequest, "request is invalid: %s", err.Error())
		return
	}

	if req.Wallet == "" {
		goapi.WriteError(w, http.StatusBadRequest, "Missing wallet")
		return
	}

	if err := s.s.SaveProfile(r.Context(), &service.SaveProfileParams{
		Wallet:       req.Wallet,
		Nickname:     req.Nickname,
		AvatarID:     req.AvatarID,
		SelectedNFTs: req.SelectedNFTs,
		Frame:        entities.Frame(req.Frame),
	}); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			goapi.WriteError(w, http.StatusBadRequest, "Missing wallet")
			return
		}
		goapi.WriteInternalErrorf(r.Context(), w, "failed to save profile: %s", err.Error())
		return
	}

	goapi.WriteOK(w, http.StatusOK, api.MessageResponse{Message: "Profile saved"})
}

// recordViewHandler counts viewer's visit of profile.
func (s *server) recordViewHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /profile/views Views RecordView
	//
	// Records profile's view. Viewer is counted once per 24 hours.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: wallet
	//   description: profile's wallet
	//   in: query
	//   required: true
	//   type: string
	// - name: viewerWallet
	//   description: viewer's wallet
	//   in: query
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: view was processed
	//     schema:
	//       "$ref": "#/definitions/RecordViewResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	wallet, viewer := r.URL.Query().Get("wallet"), r.URL.Query().Get("viewerWallet")
	if wallet == "" || viewer == "" {
		goapi.WriteError(w, http.StatusBadRequest, "Missing wallet or viewer wallet")
		return
	}

	res, err := s.s.RecordView(r.Context(), wallet, viewer)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			goapi.WriteError(w, http.StatusBadRequest, "Missing wallet or viewer wallet")
			return
		}
		goapi.WriteInternalErrorf(r.Context(), w, "failed to record view: %s", err.Error())
		return
	}

	message := "View recorded"
	if !res.Recorded {
		message = "View already counted"
	}

	goapi.WriteOK(w, http.StatusOK, api.RecordViewResponse{
		Message:       message,
		CurrentReward: res.Reward,
		RecentViews:   res.RecentViews,
	})
}

// getViewStatsHandler returns profile's views statistics.
func (s *server) getViewStatsHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profile/views Views GetViewStats
	//
	// Returns profile's views statistics
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: wallet
	//   description: profile's wallet
	//   in: query
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: views statistics
	//     schema:
	//       "$ref": "#/definitions/ViewStatsResponse"
	//   '400':
	//     description: bad request
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

	stats, err := s.s.GetViewStats(r.Context(), wallet)
	if err != nil {
		goapi.WriteInternalErrorf(r.Context(), w, "failed to get view stats: %s", err.Error())
		return
	}

	goapi.WriteOK(w, http.StatusOK, api.ViewStatsResponse{
		TotalViews:    stats.TotalViews,
		RecentViews:   stats.RecentViews,
		CurrentReward: stats.Reward,
	})
}

// getRewardsHandler returns profile's milestones.
func (s *server) getRewardsHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profile/rewards Views GetRewards
	//
	// Returns milestones catalogue with profile's progress
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: wallet
	//   description: profile's wallet
	//   in: query
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: rewards
	//     schema:
	//       "$ref": "#/definitions/RewardsResponse"
	//   '400':
	//     description: bad request
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

	rewards, err := s.s.GetRewards(r.Context(), wallet)
	if err != nil {
		goapi.WriteInternalErrorf(r.Context(), w, "failed to get rewards: %s", err.Error())
		return
	}

	goapi.WriteOK(w, http.StatusOK, api.RewardsResponse{
		TotalViews: rewards.TotalViews,
		Milestones: toAPIMilestones(rewards.Milestones),
	})
}
