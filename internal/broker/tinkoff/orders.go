package tinkoff

import (
	"context"

	"range-trading-bot/internal/types"
)

const orderTypeMarket = "ORDER_TYPE_MARKET"

func (c *Client) GetOpenOrders(ctx context.Context, accountID string) ([]types.OrderRef, error) {
	req := struct {
		AccountID string `json:"accountId"`
	}{AccountID: accountID}
	var resp struct {
		Orders []struct {
			OrderID               string `json:"orderId"`
			Figi                  string `json:"figi"`
			Direction             string `json:"direction"`
			ExecutionReportStatus string `json:"executionReportStatus"`
		} `json:"orders"`
	}
	method := "GetOrders"
	if c.p.Sandbox {
		method = "GetSandboxOrders"
	}
	if err := c.post(ctx, c.orderService(), method, req, &resp); err != nil {
		return nil, err
	}

	out := make([]types.OrderRef, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		out = append(out, types.OrderRef{
			OrderID:   o.OrderID,
			Figi:      o.Figi,
			Direction: types.Direction(o.Direction),
			Status:    types.OrderStatus(o.ExecutionReportStatus),
		})
	}
	return out, nil
}

func (c *Client) PostOrder(ctx context.Context, intent types.OrderIntent) (types.PostOrderResult, error) {
	req := struct {
		InstrumentID string      `json:"instrumentId"`
		Quantity     int64String `json:"quantity"`
		Direction    string      `json:"direction"`
		AccountID    string      `json:"accountId"`
		OrderType    string      `json:"orderType"`
		OrderID      string      `json:"orderId"`
	}{
		InstrumentID: intent.Figi,
		Quantity:     int64String(intent.Quantity),
		Direction:    string(intent.Direction),
		AccountID:    intent.AccountID,
		OrderType:    orderTypeMarket,
		OrderID:      intent.OrderID,
	}
	var resp struct {
		OrderID               string `json:"orderId"`
		ExecutionReportStatus string `json:"executionReportStatus"`
	}
	method := "PostOrder"
	if c.p.Sandbox {
		method = "PostSandboxOrder"
	}
	if err := c.post(ctx, c.orderService(), method, req, &resp); err != nil {
		return types.PostOrderResult{}, err
	}
	return types.PostOrderResult{
		OrderID: resp.OrderID,
		Status:  types.OrderStatus(resp.ExecutionReportStatus),
	}, nil
}

func (c *Client) GetOrderState(ctx context.Context, accountID, orderID string) (types.OrderState, error) {
	req := struct {
		AccountID string `json:"accountId"`
		OrderID   string `json:"orderId"`
	}{AccountID: accountID, OrderID: orderID}
	var resp struct {
		OrderID               string      `json:"orderId"`
		Figi                  string      `json:"figi"`
		Direction             string      `json:"direction"`
		ExecutionReportStatus string      `json:"executionReportStatus"`
		LotsRequested         int64String `json:"lotsRequested"`
		TotalOrderAmount      moneyJSON   `json:"totalOrderAmount"`
	}
	method := "GetOrderState"
	if c.p.Sandbox {
		method = "GetSandboxOrderState"
	}
	if err := c.post(ctx, c.orderService(), method, req, &resp); err != nil {
		return types.OrderState{}, err
	}
	return types.OrderState{
		OrderID:       resp.OrderID,
		Figi:          resp.Figi,
		Direction:     types.Direction(resp.Direction),
		Status:        types.OrderStatus(resp.ExecutionReportStatus),
		LotsRequested: int64(resp.LotsRequested),
		TotalAmount:   resp.TotalOrderAmount.toMoney(),
	}, nil
}
