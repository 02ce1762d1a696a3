package commands

import (
	"AuctionHouse/internal/cli/api"
	"AuctionHouse/internal/config"
	"AuctionHouse/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrRetry — сервер не смог зафиксировать ставку, её можно отправить ещё раз.
var ErrRetry = errors.New("bid was not committed, try again")

type bidCmd struct{}

func (bidCmd) Name() string        { return "bid" }
func (bidCmd) Description() string { return "Place a bid on an auction" }
func (bidCmd) Usage() string       { return "bid <auction-id> <amount>" }

func (bidCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	auctionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || auctionID <= 0 {
		return ErrUsage
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	token, err := authService(cfg).Token()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/auctions/%d/bids", auctionID)
	resp, body, err := api.PostJSON(ctx, api.Endpoint(cfg.ServerURL, path), map[string]any{"amount": amount}, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusCreated:
		var b model.Bid
		if err := json.Unmarshal(body, &b); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(Out, "Bid #%d accepted: %s, you are the highest bidder\n", b.ID, b.Amount.StringFixed(2))
		return nil
	case http.StatusServiceUnavailable:
		return ErrRetry
	case http.StatusUnauthorized:
		return errors.New("session expired, run `login` again")
	default:
		return fmt.Errorf("rejected: %s", api.ErrorMessage(body))
	}
}

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show bids of an auction, highest first" }
func (historyCmd) Usage() string       { return "history <auction-id>" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	auctionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || auctionID <= 0 {
		return ErrUsage
	}
	bids, err := fetchBids(ctx, cfg, fmt.Sprintf("/api/auctions/%d/bids", auctionID))
	if err != nil {
		return err
	}
	if len(bids) == 0 {
		fmt.Fprintln(Out, "No bids yet")
		return nil
	}
	for _, b := range bids {
		who := fmt.Sprintf("user %d", b.UserID)
		if b.User != nil {
			if name := strings.TrimSpace(b.User.FirstName + " " + b.User.LastName); name != "" {
				who = name
			}
		}
		fmt.Fprintf(Out, "- %10s  %-8s %s\n", b.Amount.StringFixed(2), b.Status, who)
	}
	return nil
}

type myBidsCmd struct{}

func (myBidsCmd) Name() string        { return "my-bids" }
func (myBidsCmd) Description() string { return "Show my bids on open auctions" }
func (myBidsCmd) Usage() string       { return "my-bids" }

func (myBidsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return listOwnBids(ctx, cfg, args, "/api/users/%d/bids", "No bids on open auctions")
}

type wonCmd struct{}

func (wonCmd) Name() string        { return "won" }
func (wonCmd) Description() string { return "Show auctions I won" }
func (wonCmd) Usage() string       { return "won" }

func (wonCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return listOwnBids(ctx, cfg, args, "/api/users/%d/bids/won", "No won auctions yet")
}

func listOwnBids(ctx context.Context, cfg *config.Config, args []string, pathFmt, empty string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	me, err := authService(cfg).CurrentUser()
	if err != nil {
		return err
	}
	bids, err := fetchBids(ctx, cfg, fmt.Sprintf(pathFmt, me.ID))
	if err != nil {
		return err
	}
	if len(bids) == 0 {
		fmt.Fprintln(Out, empty)
		return nil
	}
	for _, b := range bids {
		title := fmt.Sprintf("auction #%d", b.AuctionID)
		if b.Auction != nil {
			title = fmt.Sprintf("#%d %s", b.AuctionID, b.Auction.Title)
		}
		fmt.Fprintf(Out, "- %s  %s  %s\n", title, b.Amount.StringFixed(2), b.Status)
	}
	return nil
}

func fetchBids(ctx context.Context, cfg *config.Config, path string) ([]model.Bid, error) {
	resp, body, err := api.GetJSON(ctx, api.Endpoint(cfg.ServerURL, path), "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
	var bids []model.Bid
	if err := json.Unmarshal(body, &bids); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return bids, nil
}

func init() {
	RegisterCmd(bidCmd{})
	RegisterCmd(historyCmd{})
	RegisterCmd(myBidsCmd{})
	RegisterCmd(wonCmd{})
}
