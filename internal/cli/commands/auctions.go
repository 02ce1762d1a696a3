package commands

import (
	"AuctionHouse/internal/cli/api"
	"AuctionHouse/internal/config"
	"AuctionHouse/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type auctionsCmd struct{}

func (auctionsCmd) Name() string        { return "auctions" }
func (auctionsCmd) Description() string { return "List open auctions" }
func (auctionsCmd) Usage() string       { return "auctions" }

func (auctionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := api.GetJSON(ctx, api.Endpoint(cfg.ServerURL, "/api/auctions"), "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
	var list []model.Auction
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No open auctions")
		return nil
	}
	for _, a := range list {
		fmt.Fprintf(Out, "- #%d  %s  from %s  ends %s\n",
			a.ID, a.Title, a.StartingPrice.StringFixed(2), a.EndedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

type auctionNewCmd struct{}

func (auctionNewCmd) Name() string        { return "auction-new" }
func (auctionNewCmd) Description() string { return "Create an auction closing after <duration>" }
func (auctionNewCmd) Usage() string {
	return "auction-new <title> <starting-price> <duration> [description]"
}

func (auctionNewCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid starting price %q", args[1])
	}
	d, err := time.ParseDuration(args[2])
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid duration %q, use e.g. 90m or 48h", args[2])
	}
	token, err := authService(cfg).Token()
	if err != nil {
		return err
	}

	payload := map[string]any{
		"title":          args[0],
		"description":    strings.Join(args[3:], " "),
		"starting_price": price,
		"ended_at":       time.Now().Add(d).UTC(),
	}
	resp, body, err := api.PostJSON(ctx, api.Endpoint(cfg.ServerURL, "/api/auctions"), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Auction #%d created\n", created.ID)
	return nil
}

func init() {
	RegisterCmd(auctionsCmd{})
	RegisterCmd(auctionNewCmd{})
}
