package tinkoff

import (
	"context"

	"range-trading-bot/internal/types"
)

type accountsResponse struct {
	Accounts []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"accounts"`
}

func (r accountsResponse) toAccounts() []types.Account {
	out := make([]types.Account, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		out = append(out, types.Account{ID: a.ID, Name: a.Name, Type: a.Type})
	}
	return out
}

// GetAccounts lists live brokerage accounts.
func (c *Client) GetAccounts(ctx context.Context) ([]types.Account, error) {
	var resp accountsResponse
	if err := c.post(ctx, svcUsers, "GetAccounts", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.toAccounts(), nil
}

// GetSandboxAccounts lists sandbox accounts.
func (c *Client) GetSandboxAccounts(ctx context.Context) ([]types.Account, error) {
	var resp accountsResponse
	if err := c.post(ctx, svcSandbox, "GetSandboxAccounts", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.toAccounts(), nil
}

// OpenSandboxAccount opens a fresh sandbox account and returns its id.
func (c *Client) OpenSandboxAccount(ctx context.Context) (string, error) {
	var resp struct {
		AccountID string `json:"accountId"`
	}
	if err := c.post(ctx, svcSandbox, "OpenSandboxAccount", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.AccountID, nil
}

// SandboxPayIn credits a sandbox account.
func (c *Client) SandboxPayIn(ctx context.Context, accountID string, amount types.MoneyValue) error {
	req := struct {
		AccountID string    `json:"accountId"`
		Amount    moneyJSON `json:"amount"`
	}{AccountID: accountID, Amount: moneyFromTypes(amount)}
	var resp struct {
		Balance moneyJSON `json:"balance"`
	}
	return c.post(ctx, svcSandbox, "SandboxPayIn", req, &resp)
}
