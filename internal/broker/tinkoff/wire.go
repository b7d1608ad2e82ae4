package tinkoff

import (
	"bytes"
	"strconv"
	"time"

	"range-trading-bot/internal/types"
)

// int64String is an int64 that marshals as a decimal string, matching the
// protojson encoding the gateway uses for 64-bit integers. Unquoted numbers
// are accepted on decode.
type int64String int64

func (v int64String) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatInt(int64(v), 10) + `"`), nil
}

func (v *int64String) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*v = int64String(n)
	return nil
}

type quotationJSON struct {
	Units int64String `json:"units"`
	Nano  int32       `json:"nano"`
}

func (q quotationJSON) toQuotation() types.Quotation {
	return types.Quotation{Units: int64(q.Units), Nano: q.Nano}
}

type moneyJSON struct {
	Currency string      `json:"currency"`
	Units    int64String `json:"units"`
	Nano     int32       `json:"nano"`
}

func (m moneyJSON) toMoney() types.MoneyValue {
	return types.MoneyValue{Currency: m.Currency, Units: int64(m.Units), Nano: m.Nano}
}

func moneyFromTypes(m types.MoneyValue) moneyJSON {
	return moneyJSON{Currency: m.Currency, Units: int64String(m.Units), Nano: m.Nano}
}

// timestampJSON parses the gateway's RFC3339 timestamps, tolerating the
// empty string for unset fields.
type timestampJSON struct {
	time.Time
}

func (t *timestampJSON) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
