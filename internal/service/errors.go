package service

import "errors"

// RejectionError — отказ в ставке по одному из бизнес-правил.
// Code стабилен для клиентов, Message показывается пользователю как есть.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

// Причины отказа в порядке проверки.
var (
	ErrAuctionNotFound    = &RejectionError{Code: "auction_not_found", Message: "Auction not found."}
	ErrAuctionClosed      = &RejectionError{Code: "auction_closed", Message: "You cannot place a bid on an auction that has already ended."}
	ErrSelfBid            = &RejectionError{Code: "self_bid_forbidden", Message: "You can't bid on your own auction."}
	ErrConsecutiveBid     = &RejectionError{Code: "consecutive_bid_forbidden", Message: "You cannot place two consecutive bids on the same auction."}
	ErrBelowStartingPrice = &RejectionError{Code: "below_starting_price", Message: "Your bid must be higher than the starting price."}
	ErrBelowHighestBid    = &RejectionError{Code: "below_highest_bid", Message: "Your bid must be higher than the current highest bid."}
)

var (
	// ErrBidConflict — транзакция не прошла из-за таймаута или конкурентной ставки; её можно повторить.
	ErrBidConflict = errors.New("bid could not be committed, please retry")
	// ErrInvalidAmount — сумма не помещается в numeric(12,2): больше максимума или точнее копеек.
	ErrInvalidAmount = errors.New("invalid amount")

	ErrInvalidAuction = errors.New("invalid auction")
	ErrNotOwner       = errors.New("you can only modify your own auctions")
	ErrAuctionEnded   = errors.New("auction has already ended")
	ErrAuctionFrozen  = errors.New("starting price and closing time cannot change once bidding has started")

	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUserNotFound       = errors.New("user not found")
)
