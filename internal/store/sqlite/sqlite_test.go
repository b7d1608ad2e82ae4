package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"range-trading-bot/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndUpdateOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := types.OrderRecord{
		OrderID:   "order-1",
		Figi:      "BBG004730N88",
		Direction: types.DirectionBuy,
		Price:     250.5,
		Quantity:  2,
		Status:    types.StatusNew,
	}
	if err := s.CreateOrderRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetOrderRecord(ctx, "order-1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("record not found after create")
	}
	if got.Status != types.StatusNew {
		t.Errorf("status = %s, want %s", got.Status, types.StatusNew)
	}

	if err := s.UpdateOrderStatus(ctx, "order-1", types.StatusFill); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetOrderRecord(ctx, "order-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != types.StatusFill {
		t.Errorf("status after update = %s, want %s", got.Status, types.StatusFill)
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := types.OrderRecord{
		OrderID:   "order-1",
		Figi:      "BBG004730N88",
		Direction: types.DirectionSell,
		Price:     100,
		Quantity:  1,
		Status:    types.StatusNew,
	}
	if err := s.CreateOrderRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateOrderStatus(ctx, "order-1", types.StatusFill); err != nil {
		t.Fatal(err)
	}

	// A second create must not resurrect the pre-terminal status.
	if err := s.CreateOrderRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetOrderRecord(ctx, "order-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != types.StatusFill {
		t.Errorf("status = %s, want %s after duplicate create", got.Status, types.StatusFill)
	}

	// Re-applying the same terminal status is safe.
	if err := s.UpdateOrderStatus(ctx, "order-1", types.StatusFill); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateMissingOrderIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.UpdateOrderStatus(context.Background(), "absent", types.StatusCancelled); err != nil {
		t.Fatalf("updating a missing record should not error, got %v", err)
	}
}

func TestGetMissingOrder(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetOrderRecord(context.Background(), "absent")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil record, got %+v", got)
	}
}

func TestConcurrentWriters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec := types.OrderRecord{
				OrderID:   "order-" + string(rune('a'+n)),
				Figi:      "BBG004730N88",
				Direction: types.DirectionBuy,
				Price:     100,
				Quantity:  1,
				Status:    types.StatusNew,
			}
			if err := s.CreateOrderRecord(ctx, rec); err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if err := s.UpdateOrderStatus(ctx, rec.OrderID, types.StatusFill); err != nil {
				t.Errorf("update: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.GetOrderRecord(ctx, "order-a")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Status != types.StatusFill {
		t.Errorf("concurrent writes lost: %+v", got)
	}
}
