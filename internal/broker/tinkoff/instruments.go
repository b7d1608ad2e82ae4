package tinkoff

import (
	"context"
	"strings"

	"range-trading-bot/internal/types"
)

// instrumentKinds are the instrument listing methods scanned during a
// ticker lookup.
var instrumentKinds = []string{"Shares", "Bonds", "Etfs", "Currencies", "Futures"}

// FindInstrument resolves a ticker to its instrument reference by scanning
// the instrument listings. Returns a NOT_FOUND request error when no
// instrument carries the ticker.
func (c *Client) FindInstrument(ctx context.Context, ticker string) (types.Instrument, error) {
	req := struct {
		InstrumentStatus string `json:"instrumentStatus"`
	}{InstrumentStatus: "INSTRUMENT_STATUS_BASE"}

	for _, kind := range instrumentKinds {
		var resp struct {
			Instruments []struct {
				Figi   string `json:"figi"`
				Ticker string `json:"ticker"`
				Name   string `json:"name"`
			} `json:"instruments"`
		}
		if err := c.post(ctx, svcInstruments, kind, req, &resp); err != nil {
			return types.Instrument{}, err
		}
		for _, in := range resp.Instruments {
			if strings.EqualFold(in.Ticker, ticker) {
				return types.Instrument{
					Figi:   in.Figi,
					Ticker: in.Ticker,
					Name:   in.Name,
					Kind:   strings.ToLower(kind),
				}, nil
			}
		}
	}
	return types.Instrument{}, &types.RequestError{
		Code:    types.CodeNotFound,
		Message: "no instrument with ticker " + ticker,
	}
}
