package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"leaguemanager/league"
	"leaguemanager/middleware"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type MarketHandler struct {
	svc *league.Service
	log *logrus.Logger
}

func NewMarketHandler(svc *league.Service, log *logrus.Logger) *MarketHandler {
	return &MarketHandler{
		svc: svc,
		log: log,
	}
}

// ListMarket returns the active (pending) transfer listings.
func (h *MarketHandler) ListMarket(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := league.TransferFilters{
		Position: r.URL.Query().Get("position"),
		SortBy:   r.URL.Query().Get("sort_by"),
		Limit:    limit,
		Offset:   offset,
	}
	if v, err := strconv.ParseUint(r.URL.Query().Get("seller"), 10, 32); err == nil {
		filters.SellerID = uint(v)
	}
	if v, err := strconv.ParseUint(r.URL.Query().Get("player"), 10, 32); err == nil {
		filters.PlayerID = uint(v)
	}

	transfers, err := h.svc.ActiveListings(r.Context(), filters)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]transferResponse, len(transfers))
	for i := range transfers {
		resp[i] = newTransferResponse(&transfers[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

type createListingRequest struct {
	Price decimal.Decimal `json:"price"`
}

// CreateListing puts the identified player on the transfer market.
func (h *MarketHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	playerID, ok := uintParam(w, r, "playerID")
	if !ok {
		return
	}

	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	transfer, err := h.svc.CreateListing(r.Context(), playerID, req.Price, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTransferResponse(transfer))
}

// BuyPlayer completes the player's pending transfer for the caller.
func (h *MarketHandler) BuyPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := uintParam(w, r, "playerID")
	if !ok {
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	transfer, err := h.svc.BuyPlayer(r.Context(), playerID, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTransferResponse(transfer))
}

// BuyTransfer completes the identified transfer for the caller.
func (h *MarketHandler) BuyTransfer(w http.ResponseWriter, r *http.Request) {
	transferID, ok := uintParam(w, r, "transferID")
	if !ok {
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	transfer, err := h.svc.BuyTransfer(r.Context(), transferID, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTransferResponse(transfer))
}
