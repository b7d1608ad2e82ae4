package tinkoff

import (
	"context"

	"range-trading-bot/internal/types"
)

func (c *Client) GetPortfolio(ctx context.Context, accountID string) ([]types.Position, error) {
	req := struct {
		AccountID string `json:"accountId"`
	}{AccountID: accountID}
	var resp struct {
		Positions []struct {
			Figi                 string        `json:"figi"`
			QuantityLots         quotationJSON `json:"quantityLots"`
			AveragePositionPrice moneyJSON     `json:"averagePositionPrice"`
		} `json:"positions"`
	}

	service, method := svcOperations, "GetPortfolio"
	if c.p.Sandbox {
		service, method = svcSandbox, "GetSandboxPortfolio"
	}
	if err := c.post(ctx, service, method, req, &resp); err != nil {
		return nil, err
	}

	out := make([]types.Position, 0, len(resp.Positions))
	for _, p := range resp.Positions {
		out = append(out, types.Position{
			Figi:         p.Figi,
			QuantityLots: p.QuantityLots.toQuotation(),
			AveragePrice: p.AveragePositionPrice.toMoney(),
		})
	}
	return out, nil
}
