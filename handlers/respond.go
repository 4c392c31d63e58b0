package handlers

import (
	"encoding/json"
	"net/http"

	"leaguemanager/apperrors"
	"leaguemanager/models"

	"github.com/shopspring/decimal"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondError maps structured error kinds onto HTTP statuses. Errors
// without a kind are internal.
func respondError(w http.ResponseWriter, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		respondDetail(w, http.StatusNotFound, err.Error())
	case apperrors.KindForbidden:
		respondDetail(w, http.StatusForbidden, err.Error())
	case apperrors.KindConflict:
		respondDetail(w, http.StatusConflict, err.Error())
	case apperrors.KindInvalidArgument:
		respondDetail(w, http.StatusBadRequest, err.Error())
	default:
		respondDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

type ownerResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type teamResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Country string          `json:"country"`
	Budget  decimal.Decimal `json:"budget"`
	Value   decimal.Decimal `json:"value"`
	Owner   *ownerResponse  `json:"owner,omitempty"`
}

type playerResponse struct {
	ID        uint            `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Age       int             `json:"age"`
	Position  string          `json:"position"`
	Country   string          `json:"country"`
	Value     decimal.Decimal `json:"value"`
	Team      uint            `json:"team"`
	TeamName  string          `json:"team_name,omitempty"`
}

type transferResponse struct {
	ID              uint            `json:"id"`
	Player          *uint           `json:"player"`
	PlayerFirstName string          `json:"player_first_name,omitempty"`
	PlayerLastName  string          `json:"player_last_name,omitempty"`
	Seller          *uint           `json:"seller"`
	SellerName      string          `json:"seller_name,omitempty"`
	Buyer           *uint           `json:"buyer,omitempty"`
	BuyerName       string          `json:"buyer_name,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
}

func newTeamResponse(team *models.Team) teamResponse {
	resp := teamResponse{
		ID:      team.ID,
		Name:    team.Name,
		Country: team.Country,
		Budget:  team.Budget,
		Value:   team.Value(),
	}
	if team.Owner != nil {
		resp.Owner = &ownerResponse{
			ID:        team.Owner.ID,
			Email:     team.Owner.Email,
			FirstName: team.Owner.FirstName,
			LastName:  team.Owner.LastName,
		}
	}
	return resp
}

func newPlayerResponse(player *models.Player) playerResponse {
	resp := playerResponse{
		ID:        player.ID,
		FirstName: player.FirstName,
		LastName:  player.LastName,
		Age:       player.Age,
		Position:  string(player.Position),
		Country:   player.Country,
		Value:     player.Value,
		Team:      player.TeamID,
	}
	if player.Team != nil {
		resp.TeamName = player.Team.Name
	}
	return resp
}

func newTransferResponse(transfer *models.Transfer) transferResponse {
	resp := transferResponse{
		ID:     transfer.ID,
		Player: transfer.PlayerID,
		Seller: transfer.SellerID,
		Buyer:  transfer.BuyerID,
		Price:  transfer.Price,
		Status: string(transfer.Status),
	}
	if transfer.Player != nil {
		resp.PlayerFirstName = transfer.Player.FirstName
		resp.PlayerLastName = transfer.Player.LastName
	}
	if transfer.Seller != nil {
		resp.SellerName = transfer.Seller.Name
	}
	if transfer.Buyer != nil {
		resp.BuyerName = transfer.Buyer.Name
	}
	return resp
}
