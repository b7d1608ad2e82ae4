// Command sandbox-payin tops up a sandbox account with roubles. Pass the
// account id and whole-rouble amount; with no account id a new sandbox
// account is opened first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"range-trading-bot/internal/broker/tinkoff"
	"range-trading-bot/internal/types"

	"github.com/joho/godotenv"
)

func main() {
	accountID := flag.String("account", "", "sandbox account id (opens a new one when empty)")
	amount := flag.Int64("amount", 100000, "pay-in amount in whole roubles")
	flag.Parse()

	_ = godotenv.Load()
	token := os.Getenv("TINKOFF_TOKEN")
	if token == "" {
		log.Fatal("TINKOFF_TOKEN is not set")
	}

	ctx := context.Background()
	client := tinkoff.New(tinkoff.Params{Token: token, Sandbox: true})

	id := *accountID
	if id == "" {
		var err error
		id, err = client.OpenSandboxAccount(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Opened a new sandbox account:", id)
	}

	money := types.MoneyValue{Currency: "rub", Units: *amount}
	if err := client.SandboxPayIn(ctx, id, money); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Paid %d rub into %s\n", *amount, id)
}
