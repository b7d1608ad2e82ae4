package types

import "time"

// Quotation is the broker's fixed-point number: integer units plus a
// fractional part scaled to one billionth.
type Quotation struct {
	Units int64
	Nano  int32
}

// MoneyValue is a Quotation with a currency attached.
type MoneyValue struct {
	Currency string
	Units    int64
	Nano     int32
}

func (m MoneyValue) Quotation() Quotation {
	return Quotation{Units: m.Units, Nano: m.Nano}
}

type Direction string

const (
	DirectionBuy  Direction = "ORDER_DIRECTION_BUY"
	DirectionSell Direction = "ORDER_DIRECTION_SELL"
)

// OrderStatus mirrors the broker's execution report statuses.
type OrderStatus string

const (
	StatusUnspecified   OrderStatus = "EXECUTION_REPORT_STATUS_UNSPECIFIED"
	StatusNew           OrderStatus = "EXECUTION_REPORT_STATUS_NEW"
	StatusPartiallyFill OrderStatus = "EXECUTION_REPORT_STATUS_PARTIALLYFILL"
	StatusFill          OrderStatus = "EXECUTION_REPORT_STATUS_FILL"
	StatusRejected      OrderStatus = "EXECUTION_REPORT_STATUS_REJECTED"
	StatusCancelled     OrderStatus = "EXECUTION_REPORT_STATUS_CANCELLED"
)

// Terminal reports whether no further status transition can occur.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusFill, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// TradingStatus is the per-instrument market availability snapshot.
type TradingStatus struct {
	MarketOrderAvailable bool
	APITradeAvailable    bool
}

type Candle struct {
	Ts       time.Time
	Open     Quotation
	High     Quotation
	Low      Quotation
	Close    Quotation
	Volume   int64
	Complete bool
}

// Position is the held quantity of one instrument under an account.
type Position struct {
	Figi         string
	QuantityLots Quotation
	AveragePrice MoneyValue
}

// OrderRef identifies an open order as returned by the orders listing.
type OrderRef struct {
	OrderID   string
	Figi      string
	Direction Direction
	Status    OrderStatus
}

// OrderIntent is a single market-order submission. OrderID is the
// caller-generated idempotency token; it must be fresh per submission.
type OrderIntent struct {
	Figi      string
	AccountID string
	Direction Direction
	Quantity  int64
	OrderID   string
}

type PostOrderResult struct {
	OrderID string
	Status  OrderStatus
}

// OrderState is a point-in-time view of a submitted order.
type OrderState struct {
	OrderID       string
	Figi          string
	Direction     Direction
	Status        OrderStatus
	LotsRequested int64
	TotalAmount   MoneyValue
}

// OrderRecord is the persisted outcome of an order.
type OrderRecord struct {
	OrderID   string
	Figi      string
	Direction Direction
	Price     float64
	Quantity  int64
	Status    OrderStatus
}

// Account is a brokerage account as reported by the users service.
type Account struct {
	ID   string
	Name string
	Type string
}

// Instrument is the minimal instrument reference used for FIGI lookup.
type Instrument struct {
	Figi   string
	Ticker string
	Name   string
	Kind   string
}
