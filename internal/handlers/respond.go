package handlers

import (
	"AuctionHouse/internal/middleware"
	"AuctionHouse/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RejectionDTO — тело ответа при отказе в ставке.
type RejectionDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const errRequestTimeout = "request timed out, please retry"

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
// Текст неожиданных ошибок хранилища клиенту не отдаётся.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var rej *service.RejectionError
	switch {
	case errors.As(err, &rej):
		status := http.StatusBadRequest
		switch rej {
		case service.ErrAuctionNotFound:
			status = http.StatusNotFound
		case service.ErrSelfBid:
			status = http.StatusForbidden
		}
		writeJSON(w, status, RejectionDTO{Code: rej.Code, Message: rej.Message})
	case errors.Is(err, service.ErrBidConflict):
		w.Header().Set("Retry-After", "1")
		http.Error(w, service.ErrBidConflict.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warnw(op+": request timed out", "error", err)
		w.Header().Set("Retry-After", "1")
		http.Error(w, errRequestTimeout, http.StatusServiceUnavailable)
	case errors.Is(err, service.ErrInvalidAuction), errors.Is(err, service.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrAuctionEnded), errors.Is(err, service.ErrAuctionFrozen), errors.Is(err, service.ErrLoginTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Errorw(op+": service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// pathID читает числовой {name} из пути.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireUser возвращает id авторизованного пользователя или отвечает 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}
