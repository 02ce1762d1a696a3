package commands

import (
	"AuctionHouse/internal/cli/service"
	"AuctionHouse/internal/config"
	"context"
	"fmt"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and log in" }
func (registerCmd) Usage() string       { return "register <login> <password> [first-name] [last-name]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrUsage
	}
	in := service.Registration{Login: args[0], Password: args[1]}
	if len(args) > 2 {
		in.FirstName = args[2]
	}
	if len(args) > 3 {
		in.LastName = args[3]
	}
	u, err := authService(cfg).Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s (id %d)\n", u.Login, u.ID)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
