package quotation

import (
	"math"
	"testing"

	"range-trading-bot/internal/types"
)

func TestToFloat(t *testing.T) {
	cases := []struct {
		units int64
		nano  int32
		want  float64
	}{
		{0, 0, 0.0},
		{100, 0, 100.0},
		{100, 500000000, 100.5},
		{0, 250000000, 0.25},
		{-5, -500000000, -5.5},
		{1, 1, 1.000000001},
	}
	for _, c := range cases {
		got := ToFloat(types.Quotation{Units: c.units, Nano: c.nano})
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ToFloat(%d, %d) = %v, want %v", c.units, c.nano, got, c.want)
		}
	}
}

func TestMoneyToFloat(t *testing.T) {
	m := types.MoneyValue{Currency: "rub", Units: 250, Nano: 750000000}
	if got := MoneyToFloat(m); math.Abs(got-250.75) > 1e-9 {
		t.Errorf("MoneyToFloat = %v, want 250.75", got)
	}
}

func TestLots(t *testing.T) {
	if got := Lots(types.Quotation{Units: 3, Nano: 0}); got != 3 {
		t.Errorf("Lots(3.0) = %d, want 3", got)
	}
	if got := Lots(types.Quotation{Units: 0, Nano: 0}); got != 0 {
		t.Errorf("Lots(0) = %d, want 0", got)
	}
}
