package commands

import (
	"AuctionHouse/internal/cli/api"
	"AuctionHouse/internal/config"
	"AuctionHouse/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show who is logged in" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := authService(cfg).Token()
	if err != nil {
		return err
	}
	resp, body, err := api.GetJSON(ctx, api.Endpoint(cfg.ServerURL, "/api/user/me"), token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
	var u model.User
	if err := json.Unmarshal(body, &u); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s (id %d)\n", u.Login, u.ID)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
