package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"leaguemanager/league"
	"leaguemanager/middleware"
	"leaguemanager/models"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type LeagueHandler struct {
	svc *league.Service
	log *logrus.Logger
}

func NewLeagueHandler(svc *league.Service, log *logrus.Logger) *LeagueHandler {
	return &LeagueHandler{
		svc: svc,
		log: log,
	}
}

// MyTeam returns the authenticated user's team, 404 when they own none.
func (h *LeagueHandler) MyTeam(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	team, err := h.svc.TeamByOwner(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTeamResponse(team))
}

func (h *LeagueHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	teams, err := h.svc.Teams(r.Context(), league.TeamFilters{
		Country: r.URL.Query().Get("country"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]teamResponse, len(teams))
	for i := range teams {
		resp[i] = newTeamResponse(&teams[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *LeagueHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uintParam(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.svc.TeamByID(r.Context(), teamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTeamResponse(team))
}

type teamUpdateRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

func (h *LeagueHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uintParam(w, r, "teamID")
	if !ok {
		return
	}

	var req teamUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	team, err := h.svc.UpdateTeam(r.Context(), teamID, league.TeamUpdate{
		Name:    req.Name,
		Country: req.Country,
	}, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTeamResponse(team))
}

func (h *LeagueHandler) TeamPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uintParam(w, r, "teamID")
	if !ok {
		return
	}

	players, err := h.svc.TeamPlayers(r.Context(), teamID, h.playerFilters(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondPlayers(w, players)
}

func (h *LeagueHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.Players(r.Context(), h.playerFilters(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondPlayers(w, players)
}

func (h *LeagueHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := uintParam(w, r, "playerID")
	if !ok {
		return
	}

	player, err := h.svc.PlayerByID(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newPlayerResponse(player))
}

type playerUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Country   *string `json:"country"`
}

func (h *LeagueHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := uintParam(w, r, "playerID")
	if !ok {
		return
	}

	var req playerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	player, err := h.svc.UpdatePlayer(r.Context(), playerID, league.PlayerUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
	}, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newPlayerResponse(player))
}

func (h *LeagueHandler) playerFilters(r *http.Request) league.PlayerFilters {
	limit, offset := pagination(r)
	return league.PlayerFilters{
		Position: r.URL.Query().Get("position"),
		Country:  r.URL.Query().Get("country"),
		SortBy:   r.URL.Query().Get("sort_by"),
		Limit:    limit,
		Offset:   offset,
	}
}

func respondPlayers(w http.ResponseWriter, players []models.Player) {
	resp := make([]playerResponse, len(players))
	for i := range players {
		resp[i] = newPlayerResponse(&players[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// uintParam parses a numeric chi URL parameter, writing a 400 itself
// when the value is not a positive integer.
func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondDetail(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func pagination(r *http.Request) (limit, offset int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
