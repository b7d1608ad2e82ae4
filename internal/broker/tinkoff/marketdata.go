package tinkoff

import (
	"context"
	"time"

	"range-trading-bot/internal/types"
)

const candleInterval1Min = "CANDLE_INTERVAL_1_MIN"

// For one-minute granularity the gateway serves at most one day of candles
// per request, so the look-back window is paged in day-sized chunks.
const maxCandlePage = 24 * time.Hour

func (c *Client) GetTradingStatus(ctx context.Context, figi string) (types.TradingStatus, error) {
	req := struct {
		InstrumentID string `json:"instrumentId"`
	}{InstrumentID: figi}
	var resp struct {
		MarketOrderAvailableFlag bool `json:"marketOrderAvailableFlag"`
		APITradeAvailableFlag    bool `json:"apiTradeAvailableFlag"`
	}
	if err := c.post(ctx, svcMarketData, "GetTradingStatus", req, &resp); err != nil {
		return types.TradingStatus{}, err
	}
	return types.TradingStatus{
		MarketOrderAvailable: resp.MarketOrderAvailableFlag,
		APITradeAvailable:    resp.APITradeAvailableFlag,
	}, nil
}

func (c *Client) GetLastPrice(ctx context.Context, figi string) (types.Quotation, error) {
	req := struct {
		InstrumentID []string `json:"instrumentId"`
	}{InstrumentID: []string{figi}}
	var resp struct {
		LastPrices []struct {
			Figi  string        `json:"figi"`
			Price quotationJSON `json:"price"`
			Time  timestampJSON `json:"time"`
		} `json:"lastPrices"`
	}
	if err := c.post(ctx, svcMarketData, "GetLastPrices", req, &resp); err != nil {
		return types.Quotation{}, err
	}
	if len(resp.LastPrices) == 0 {
		return types.Quotation{}, &types.RequestError{
			Code:    types.CodeNotFound,
			Message: "no last price for " + figi,
		}
	}
	return resp.LastPrices[len(resp.LastPrices)-1].Price.toQuotation(), nil
}

func (c *Client) GetCandles(ctx context.Context, figi string, from, to time.Time) ([]types.Candle, error) {
	var out []types.Candle
	for start := from; start.Before(to); start = start.Add(maxCandlePage) {
		end := start.Add(maxCandlePage)
		if end.After(to) {
			end = to
		}
		page, err := c.getCandlePage(ctx, figi, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
	}
	return out, nil
}

func (c *Client) getCandlePage(ctx context.Context, figi string, from, to time.Time) ([]types.Candle, error) {
	req := struct {
		InstrumentID string `json:"instrumentId"`
		From         string `json:"from"`
		To           string `json:"to"`
		Interval     string `json:"interval"`
	}{
		InstrumentID: figi,
		From:         from.UTC().Format(time.RFC3339),
		To:           to.UTC().Format(time.RFC3339),
		Interval:     candleInterval1Min,
	}
	var resp struct {
		Candles []struct {
			Open       quotationJSON `json:"open"`
			High       quotationJSON `json:"high"`
			Low        quotationJSON `json:"low"`
			Close      quotationJSON `json:"close"`
			Volume     int64String   `json:"volume"`
			Time       timestampJSON `json:"time"`
			IsComplete bool          `json:"isComplete"`
		} `json:"candles"`
	}
	if err := c.post(ctx, svcMarketData, "GetCandles", req, &resp); err != nil {
		return nil, err
	}

	out := make([]types.Candle, 0, len(resp.Candles))
	for _, cd := range resp.Candles {
		out = append(out, types.Candle{
			Ts:       cd.Time.Time,
			Open:     cd.Open.toQuotation(),
			High:     cd.High.toQuotation(),
			Low:      cd.Low.toQuotation(),
			Close:    cd.Close.toQuotation(),
			Volume:   int64(cd.Volume),
			Complete: cd.IsComplete,
		})
	}
	return out, nil
}
