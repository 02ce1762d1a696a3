package handlers

import (
	"AuctionHouse/internal/config"
	"AuctionHouse/internal/middleware"
	"AuctionHouse/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	auctionService *service.AuctionService,
	bidService *service.BidService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	if config.AuthTTL > 0 {
		middleware.TokenTTL = config.AuthTTL
	}

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithTimeout(config.RequestTimeout))
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	auctionHandler := NewAuctionHandler(auctionService, logger)
	bidHandler := NewBidHandler(bidService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/me", userHandler.Me)

	// Auction routes
	r.Route("/api/auctions", func(r chi.Router) {
		r.Get("/", auctionHandler.ListOpen)
		r.Post("/", auctionHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", auctionHandler.Get)
			r.Patch("/", auctionHandler.Update)
			r.Delete("/", auctionHandler.Delete)
			r.Get("/open", auctionHandler.IsOpen)
			r.Get("/owner", auctionHandler.IsOwner)

			r.Post("/bids", bidHandler.PlaceBid)
			r.Get("/bids", bidHandler.ListByAuction)
		})
	})

	// Per-user listings
	r.Get("/api/users/{id}/auctions", auctionHandler.ListByOwner)
	r.Get("/api/users/{id}/bids", bidHandler.ListCurrent)
	r.Get("/api/users/{id}/bids/won", bidHandler.ListWon)

	return &Handler{Router: r}
}
