package handlers

import (
	"AuctionHouse/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AuctionHandler — CRUD аукционов и запросы к реестру.
type AuctionHandler struct {
	AuctionService *service.AuctionService
	Logger         *zap.SugaredLogger
}

func NewAuctionHandler(auctionService *service.AuctionService, logger *zap.SugaredLogger) *AuctionHandler {
	return &AuctionHandler{AuctionService: auctionService, Logger: logger}
}

type CreateAuctionRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	EndedAt       time.Time       `json:"ended_at"`
	Image         *string         `json:"image,omitempty"`
}

// UpdateAuctionRequest — все поля опциональны.
type UpdateAuctionRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	StartingPrice *decimal.Decimal `json:"starting_price,omitempty"`
	EndedAt       *time.Time       `json:"ended_at,omitempty"`
	Image         *string          `json:"image,omitempty"`
}

// Create создаёт аукцион текущего пользователя.
func (h *AuctionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req CreateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("CreateAuction: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	a, err := h.AuctionService.Create(r.Context(), userID, service.NewAuction{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		EndedAt:       req.EndedAt,
		Image:         req.Image,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "CreateAuction", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": a.ID})
}

// Update правит аукцион владельца.
func (h *AuctionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	var req UpdateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("UpdateAuction: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	a, err := h.AuctionService.Update(r.Context(), userID, id, service.AuctionUpdate{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		EndedAt:       req.EndedAt,
		Image:         req.Image,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "UpdateAuction", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Delete удаляет аукцион владельца.
func (h *AuctionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	if err := h.AuctionService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, "DeleteAuction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get возвращает аукцион со ставками.
func (h *AuctionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	a, err := h.AuctionService.GetWithBids(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "GetAuction", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListOpen — открытые аукционы.
func (h *AuctionHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	list, err := h.AuctionService.ListOpen(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "ListOpenAuctions", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListByOwner — аукционы пользователя {id}.
func (h *AuctionHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	list, err := h.AuctionService.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListAuctionsByOwner", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// IsOpen — принимает ли аукцион ставки.
func (h *AuctionHandler) IsOpen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	open, err := h.AuctionService.IsOpenByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "IsAuctionOpen", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"open": open})
}

// IsOwner — является ли текущий пользователь владельцем аукциона.
func (h *AuctionHandler) IsOwner(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid auction id", http.StatusBadRequest)
		return
	}
	owner, err := h.AuctionService.IsOwner(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.Logger, "IsAuctionOwner", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"owner": owner})
}
