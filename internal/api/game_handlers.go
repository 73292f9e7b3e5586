package api

import (
	"encoding/json/v2"
	"net/http"

	errs "github.com/steamwatch/steamwatch-server/internal/errors"
	"github.com/steamwatch/steamwatch-server/internal/http/response"
)

// addGameRequest is the body of POST /games.
type addGameRequest struct {
	AppID     int64   `json:"appid" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required"`
	TinyImage *string `json:"tiny_image"`
}

// trackGameRequest is the body of POST /games/track.
type trackGameRequest struct {
	AppID int64 `json:"appid" validate:"required,gt=0"`
}

// handleListGames returns all tracked games ordered by name.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"games": games}, s.logger)
}

// handleGetGame fetches one game's current price from the storefront and
// upserts its name. No snapshot is recorded on this path.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	appID := appIDQuery(r)
	if appID == 0 {
		response.BadRequest(w, "Missing or invalid appid", s.logger)
		return
	}

	result, err := s.tracker.LookupGame(r.Context(), appID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(w, "App not found on Steam", s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"appid":            result.AppID,
		"name":             result.Name,
		"price_cents":      result.PriceCents,
		"currency":         result.Currency,
		"discount_percent": result.DiscountPercent,
	}, s.logger)
}

// handleGetHistory returns a game's snapshot history, newest first.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	appID := appIDParam(r)
	if appID == 0 {
		response.BadRequest(w, "Missing or invalid appid", s.logger)
		return
	}

	history, err := s.store.SnapshotHistory(r.Context(), appID, historyLimit(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"appid":   appID,
		"history": history,
	}, s.logger)
}

// handleTrackGame syncs one game by appid and returns the normalized result.
func (s *Server) handleTrackGame(w http.ResponseWriter, r *http.Request) {
	var req trackGameRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.tracker.SyncGame(r.Context(), req.AppID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(w, "App not found on Steam", s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"game": result}, s.logger)
}

// handleAddGame adds a game from manual entry and immediately syncs its
// price. The response reflects the upserted row, not the sync result.
func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var req addGameRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	game, err := s.store.UpsertGameWithThumbnail(r.Context(), req.AppID, req.Name, req.TinyImage)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	// Record an initial snapshot right away. A storefront miss or fetch
	// failure still leaves the game tracked for the next cycle.
	if _, err := s.tracker.SyncGame(r.Context(), req.AppID); err != nil && !errs.Is(err, errs.ErrNotFound) {
		s.logger.Warn("initial sync after add failed", "appid", req.AppID, "error", err)
	}

	response.Success(w, map[string]any{"game": game}, s.logger)
}

// handleDeleteGame removes a game and cascades its history and alerts.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	appID := appIDParam(r)
	if appID == 0 {
		response.BadRequest(w, "Invalid appid", s.logger)
		return
	}

	if err := s.store.DeleteGame(r.Context(), appID); err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(w, "Game not found", s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"removed": appID}, s.logger)
}

// handleListGamesLatest returns every game joined with its newest snapshot.
func (s *Server) handleListGamesLatest(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGamesWithLatestPrice(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"games": games}, s.logger)
}

// handleRunCycle runs one full tracking cycle now.
func (s *Server) handleRunCycle(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.RunCycle(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"tracked_games": stats.TrackedGames,
		"inserted":      stats.Inserted,
		"alerted":       stats.Alerted,
	}, s.logger)
}

// handleSteamSearch proxies a free-text search to the storefront.
func (s *Server) handleSteamSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.search.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		s.logger.Error("steam search failed", "error", err)
		response.InternalError(w, "steam search failed", s.logger)
		return
	}

	response.Success(w, map[string]any{"games": results}, s.logger)
}
