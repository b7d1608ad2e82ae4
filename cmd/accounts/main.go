// Command accounts lists the brokerage accounts visible to the token,
// falling back to sandbox accounts when the token has no live access. With
// no sandbox account present one is opened, so a fresh token is usable
// immediately.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"range-trading-bot/internal/broker/tinkoff"
	"range-trading-bot/internal/types"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	token := os.Getenv("TINKOFF_TOKEN")
	if token == "" {
		log.Fatal("TINKOFF_TOKEN is not set")
	}

	ctx := context.Background()
	client := tinkoff.New(tinkoff.Params{Token: token})

	accounts, err := client.GetAccounts(ctx)
	if types.IsUnauthenticated(err) {
		fmt.Println("No live access for this token, listing sandbox accounts.")
		accounts, err = sandboxAccounts(ctx, client)
	}
	if err != nil {
		log.Fatal(err)
	}

	for _, a := range accounts {
		fmt.Printf("%s\t%s\t%s\n", a.ID, a.Type, a.Name)
	}
}

func sandboxAccounts(ctx context.Context, client *tinkoff.Client) ([]types.Account, error) {
	accounts, err := client.GetSandboxAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	id, err := client.OpenSandboxAccount(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Println("Opened a new sandbox account:", id)
	return client.GetSandboxAccounts(ctx)
}
