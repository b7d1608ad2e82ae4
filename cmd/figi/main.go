// Command figi resolves instrument tickers to FIGI identifiers for the
// config's instruments list.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"range-trading-bot/internal/broker/tinkoff"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: figi TICKER [TICKER...]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	token := os.Getenv("TINKOFF_TOKEN")
	if token == "" {
		log.Fatal("TINKOFF_TOKEN is not set")
	}

	ctx := context.Background()
	client := tinkoff.New(tinkoff.Params{Token: token})

	for _, ticker := range os.Args[1:] {
		ins, err := client.FindInstrument(ctx, ticker)
		if err != nil {
			fmt.Printf("%s\tnot found: %v\n", ticker, err)
			continue
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", ins.Ticker, ins.Figi, ins.Kind, ins.Name)
	}
}
