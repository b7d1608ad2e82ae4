package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"range-trading-bot/internal/types"
)

// scriptedBroker serves a fixed sequence of order-state poll results.
type scriptedBroker struct {
	mu    sync.Mutex
	polls []pollResult
	calls int
}

type pollResult struct {
	state types.OrderState
	err   error
}

func (b *scriptedBroker) GetOrderState(ctx context.Context, accountID, orderID string) (types.OrderState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.calls >= len(b.polls) {
		b.calls++
		return types.OrderState{}, &types.RequestError{Code: types.CodeInternal, Message: "script exhausted"}
	}
	r := b.polls[b.calls]
	b.calls++
	return r.state, r.err
}

func (b *scriptedBroker) pollCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *scriptedBroker) GetTradingStatus(ctx context.Context, figi string) (types.TradingStatus, error) {
	return types.TradingStatus{}, nil
}
func (b *scriptedBroker) GetLastPrice(ctx context.Context, figi string) (types.Quotation, error) {
	return types.Quotation{}, nil
}
func (b *scriptedBroker) GetPortfolio(ctx context.Context, accountID string) ([]types.Position, error) {
	return nil, nil
}
func (b *scriptedBroker) GetOpenOrders(ctx context.Context, accountID string) ([]types.OrderRef, error) {
	return nil, nil
}
func (b *scriptedBroker) GetCandles(ctx context.Context, figi string, from, to time.Time) ([]types.Candle, error) {
	return nil, nil
}
func (b *scriptedBroker) PostOrder(ctx context.Context, intent types.OrderIntent) (types.PostOrderResult, error) {
	return types.PostOrderResult{}, nil
}

// memStore records store calls in memory.
type memStore struct {
	mu      sync.Mutex
	records map[string]types.OrderRecord
	creates int
	updates int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]types.OrderRecord{}}
}

func (s *memStore) CreateOrderRecord(ctx context.Context, rec types.OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if _, ok := s.records[rec.OrderID]; !ok {
		s.records[rec.OrderID] = rec
	}
	return nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, orderID string, status types.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	rec := s.records[orderID]
	rec.Status = status
	s.records[orderID] = rec
	return nil
}

func (s *memStore) get(orderID string) (types.OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[orderID]
	return rec, ok
}

func stateWith(status types.OrderStatus) types.OrderState {
	return types.OrderState{
		OrderID:       "order-1",
		Figi:          "BBG004730N88",
		Direction:     types.DirectionBuy,
		Status:        status,
		LotsRequested: 2,
		TotalAmount:   types.MoneyValue{Currency: "rub", Units: 500, Nano: 0},
	}
}

func TestTrackUntilFilled(t *testing.T) {
	brk := &scriptedBroker{polls: []pollResult{
		{state: stateWith(types.StatusNew)},
		{state: stateWith(types.StatusNew)},
		{state: stateWith(types.StatusFill)},
	}}
	store := newMemStore()
	trk := NewWithInterval(brk, store, time.Millisecond)

	trk.Track(context.Background(), "acc-1", "order-1")

	if got := brk.pollCount(); got != 3 {
		t.Errorf("polls = %d, want 3 (no polls after first terminal observation)", got)
	}
	rec, ok := store.get("order-1")
	if !ok {
		t.Fatal("record was not created")
	}
	if rec.Status != types.StatusFill {
		t.Errorf("final status = %s, want %s", rec.Status, types.StatusFill)
	}
	if rec.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", rec.Quantity)
	}
	if rec.Price != 500 {
		t.Errorf("price = %v, want 500", rec.Price)
	}
	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
}

func TestTrackTerminalOnFirstPoll(t *testing.T) {
	brk := &scriptedBroker{polls: []pollResult{
		{state: stateWith(types.StatusRejected)},
	}}
	store := newMemStore()
	trk := NewWithInterval(brk, store, time.Millisecond)

	trk.Track(context.Background(), "acc-1", "order-1")

	if got := brk.pollCount(); got != 1 {
		t.Errorf("polls = %d, want 1", got)
	}
	rec, ok := store.get("order-1")
	if !ok {
		t.Fatal("record was not created")
	}
	if rec.Status != types.StatusRejected {
		t.Errorf("final status = %s, want %s", rec.Status, types.StatusRejected)
	}
}

func TestTrackAbandonsOnNotFound(t *testing.T) {
	brk := &scriptedBroker{polls: []pollResult{
		{err: &types.RequestError{Code: types.CodeNotFound, Message: "no such order"}},
	}}
	store := newMemStore()
	trk := NewWithInterval(brk, store, time.Millisecond)

	trk.Track(context.Background(), "acc-1", "order-1")

	if got := brk.pollCount(); got != 1 {
		t.Errorf("polls = %d, want 1 (not-found must not be retried)", got)
	}
	if _, ok := store.get("order-1"); ok {
		t.Error("no record should be created when tracking is abandoned before a successful poll")
	}
}

func TestTrackAbandonsOnUnauthenticated(t *testing.T) {
	brk := &scriptedBroker{polls: []pollResult{
		{err: &types.RequestError{Code: types.CodeUnauthenticated, Message: "bad token"}},
	}}
	store := newMemStore()
	trk := NewWithInterval(brk, store, time.Millisecond)

	trk.Track(context.Background(), "acc-1", "order-1")

	if store.creates != 0 || store.updates != 0 {
		t.Error("store must not be touched after an unauthenticated poll")
	}
}

func TestTrackRetriesTransientErrors(t *testing.T) {
	brk := &scriptedBroker{polls: []pollResult{
		{err: &types.RequestError{Code: types.CodeUnavailable, Message: "gateway down"}},
		{state: stateWith(types.StatusNew)},
		{err: &types.RequestError{Code: types.CodeResourceExhausted, Message: "rate limited"}},
		{state: stateWith(types.StatusCancelled)},
	}}
	store := newMemStore()
	trk := NewWithInterval(brk, store, time.Millisecond)

	trk.Track(context.Background(), "acc-1", "order-1")

	rec, ok := store.get("order-1")
	if !ok {
		t.Fatal("record should be created on the first successful poll")
	}
	if rec.Status != types.StatusCancelled {
		t.Errorf("final status = %s, want %s", rec.Status, types.StatusCancelled)
	}
}

func TestTrackStopsOnContextCancel(t *testing.T) {
	brk := &scriptedBroker{polls: []pollResult{
		{state: stateWith(types.StatusNew)},
		{state: stateWith(types.StatusNew)},
	}}
	store := newMemStore()
	trk := NewWithInterval(brk, store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		trk.Track(ctx, "acc-1", "order-1")
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop after context cancellation")
	}

	// Abandonment is non-corrupting: the record keeps its last known status.
	rec, ok := store.get("order-1")
	if !ok {
		t.Fatal("record should exist from the first poll")
	}
	if rec.Status != types.StatusNew {
		t.Errorf("status = %s, want %s", rec.Status, types.StatusNew)
	}
}
