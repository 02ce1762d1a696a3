package handlers

import (
	"AuctionHouse/internal/service"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BidHandler — ставки.
type BidHandler struct {
	BidService *service.BidService
	Logger     *zap.SugaredLogger
}

func NewBidHandler(bidService *service.BidService, logger *zap.SugaredLogger) *BidHandler {
	return &BidHandler{BidService: bidService, Logger: logger}
}

// PlaceBidRequest — сумма принимается и числом, и строкой.
type PlaceBidRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// PlaceBid делает ставку текущего пользователя на аукцион {id}.
func (h *BidHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	auctionID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	var req PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("PlaceBid: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Amount == nil {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	bid, err := h.BidService.PlaceBid(r.Context(), auctionID, userID, *req.Amount)
	if err != nil {
		writeServiceError(w, h.Logger, "PlaceBid", err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

// ListByAuction — история ставок аукциона по убыванию суммы.
func (h *BidHandler) ListByAuction(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	bids, err := h.BidService.ListBidsOf(r.Context(), auctionID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListBidsOfAuction", err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

// ListCurrent — ставки пользователя {id} на открытые аукционы.
func (h *BidHandler) ListCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	bids, err := h.BidService.ListCurrentBidsOf(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListCurrentBids", err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

// ListWon — выигранные пользователем {id} аукционы.
func (h *BidHandler) ListWon(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	bids, err := h.BidService.ListWonBidsOf(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListWonBids", err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}
