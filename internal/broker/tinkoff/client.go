// Package tinkoff implements the broker boundary against the T-Invest
// public REST gateway. Sandbox mode reroutes account-scoped calls to the
// sandbox services per request, the same way live and sandbox accounts are
// separated server-side.
package tinkoff

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"range-trading-bot/internal/interfaces"
)

const (
	defaultBaseURL = "https://invest-public-api.tinkoff.ru/rest"
	servicePrefix  = "tinkoff.public.invest.api.contract.v1."

	svcMarketData  = "MarketDataService"
	svcOrders      = "OrdersService"
	svcOperations  = "OperationsService"
	svcUsers       = "UsersService"
	svcSandbox     = "SandboxService"
	svcInstruments = "InstrumentsService"
)

type Params struct {
	Token   string
	Sandbox bool
	AppName string
	// BaseURL overrides the production gateway, used by tests.
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	p    Params
	http *resty.Client
}

var _ interfaces.Broker = (*Client)(nil)

func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = defaultBaseURL
	}
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
	if p.AppName == "" {
		p.AppName = "range-trading-bot"
	}

	http := resty.New().
		SetBaseURL(p.BaseURL).
		SetTimeout(p.Timeout).
		SetAuthToken(p.Token).
		SetHeader("x-app-name", p.AppName)

	return &Client{p: p, http: http}
}

// post performs one gateway call. Every method of every service is an HTTP
// POST of a JSON body to <base>/<package>.<Service>/<Method>.
func (c *Client) post(ctx context.Context, service, method string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(&apiError{}).
		Post(fmt.Sprintf("/%s%s/%s", servicePrefix, service, method))
	if err != nil {
		return wrapTransportError(err)
	}
	if resp.IsError() {
		return classifyResponse(resp)
	}
	return nil
}

// orderService returns the service handling order calls for the configured
// contour.
func (c *Client) orderService() string {
	if c.p.Sandbox {
		return svcSandbox
	}
	return svcOrders
}
