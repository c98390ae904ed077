package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/session"
	"github.com/astralisweb/astralis-client/internal/types"
)

type fakeRemote struct {
	items       map[int64]types.CartItem
	userID      uuid.UUID
	failWrites  bool
	redirectURL string
	checkoutErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{items: make(map[int64]types.CartItem), userID: uuid.New()}
}

func (f *fakeRemote) ListCartItems(ctx context.Context, userID uuid.UUID) ([]types.CartItem, error) {
	out := make([]types.CartItem, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeRemote) CreateCartItem(ctx context.Context, in astralis.CartItemCreate) error {
	if f.failWrites {
		return errors.New("write refused")
	}
	it, ok := f.items[in.ProductID]
	if ok {
		it.Quantity += in.Quantity
	} else {
		it = types.CartItem{UserID: f.userID, ProductID: in.ProductID, Quantity: in.Quantity}
	}
	f.items[in.ProductID] = it
	return nil
}

func (f *fakeRemote) UpdateCartItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	if f.failWrites {
		return errors.New("write refused")
	}
	it := f.items[productID]
	it.Quantity = quantity
	f.items[productID] = it
	return nil
}

func (f *fakeRemote) DeleteCartItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	if f.failWrites {
		return errors.New("write refused")
	}
	delete(f.items, productID)
	return nil
}

func (f *fakeRemote) ClearCartItems(ctx context.Context, userID uuid.UUID) error {
	if f.failWrites {
		return errors.New("write refused")
	}
	f.items = make(map[int64]types.CartItem)
	return nil
}

func (f *fakeRemote) CreatePaymentSession(ctx context.Context, lines []types.CartLine) (string, error) {
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.redirectURL, nil
}

type fakeLocal struct {
	blobs map[string][]byte
}

func newFakeLocal() *fakeLocal { return &fakeLocal{blobs: make(map[string][]byte)} }

func (f *fakeLocal) Get(key string) ([]byte, bool) {
	raw, ok := f.blobs[key]
	return raw, ok
}

func (f *fakeLocal) Put(key string, value []byte) error {
	f.blobs[key] = value
	return nil
}

func (f *fakeLocal) Delete(key string) error {
	delete(f.blobs, key)
	return nil
}

type fakeSessions struct {
	state session.State
}

func (f *fakeSessions) Current() session.State { return f.state }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func anonService(t *testing.T) (*Service, *fakeRemote, *fakeLocal) {
	t.Helper()
	remote := newFakeRemote()
	local := newFakeLocal()
	svc := NewService(testLogger(t), remote, local, &fakeSessions{})
	return svc, remote, local
}

func authedService(t *testing.T) (*Service, *fakeRemote, *fakeLocal) {
	t.Helper()
	remote := newFakeRemote()
	local := newFakeLocal()
	sessions := &fakeSessions{state: session.State{
		Authenticated: true,
		User:          &types.User{ID: remote.userID},
	}}
	svc := NewService(testLogger(t), remote, local, sessions)
	return svc, remote, local
}

func TestAddToCart_AnonymousMergesDuplicateProduct(t *testing.T) {
	svc, _, _ := anonService(t)
	ctx := context.Background()
	product := types.Product{ID: 42, Name: "Refractor", Price: 9.99}

	if err := svc.AddToCart(ctx, product, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddToCart(ctx, product, 1); err != nil {
		t.Fatalf("add again: %v", err)
	}

	lines := svc.Snapshot()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].ProductID != 42 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
	if lines[0].UnitPrice != 9.99 {
		t.Fatalf("expected unit price 9.99, got %v", lines[0].UnitPrice)
	}
}

func TestAddToCart_QuantityFloorIsOne(t *testing.T) {
	svc, _, _ := anonService(t)
	if err := svc.AddToCart(context.Background(), types.Product{ID: 1}, 0); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines := svc.Snapshot()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected single line at quantity 1, got %+v", lines)
	}
}

func TestAddToCart_AnonymousPersistsBlob(t *testing.T) {
	svc, _, local := anonService(t)
	if err := svc.AddToCart(context.Background(), types.Product{ID: 7, Name: "Star chart"}, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	raw, ok := local.Get(StorageKey)
	if !ok {
		t.Fatalf("expected %q blob to exist", StorageKey)
	}
	var lines []types.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		t.Fatalf("blob not valid json: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("unexpected persisted lines: %+v", lines)
	}
}

func TestDecreaseQuantity_AtOneRemovesLine(t *testing.T) {
	svc, _, _ := anonService(t)
	ctx := context.Background()
	if err := svc.AddToCart(ctx, types.Product{ID: 5}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.DecreaseQuantity(ctx, svc.Snapshot()[0]); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if lines := svc.Snapshot(); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestDecreaseQuantity_AboveOneDecrements(t *testing.T) {
	svc, _, _ := anonService(t)
	ctx := context.Background()
	if err := svc.AddToCart(ctx, types.Product{ID: 5}, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.DecreaseQuantity(ctx, svc.Snapshot()[0]); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	lines := svc.Snapshot()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %+v", lines)
	}
}

func TestClearCart_AnonymousRemovesStorageKey(t *testing.T) {
	svc, _, local := anonService(t)
	ctx := context.Background()
	if err := svc.AddToCart(ctx, types.Product{ID: 9}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := local.Get(StorageKey); ok {
		t.Fatalf("expected %q to be deleted, not emptied", StorageKey)
	}
	if lines := svc.Snapshot(); len(lines) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", lines)
	}
}

func TestLoadCart_CorruptBlobDegradesToEmpty(t *testing.T) {
	svc, _, local := anonService(t)
	if err := local.Put(StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc.LoadCart(context.Background())
	if lines := svc.Snapshot(); len(lines) != 0 {
		t.Fatalf("expected empty cart from corrupt blob, got %+v", lines)
	}
}

func TestAddToCart_AuthenticatedGoesThroughServer(t *testing.T) {
	svc, remote, local := authedService(t)
	ctx := context.Background()
	if err := svc.AddToCart(ctx, types.Product{ID: 42, Price: 9.99}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := remote.items[42].Quantity; got != 2 {
		t.Fatalf("expected server quantity 2, got %d", got)
	}
	if _, ok := local.Get(StorageKey); ok {
		t.Fatalf("authenticated add must not touch local storage")
	}
}

func TestAddToCart_AuthenticatedWriteFailurePropagates(t *testing.T) {
	svc, remote, _ := authedService(t)
	remote.failWrites = true
	if err := svc.AddToCart(context.Background(), types.Product{ID: 1}, 1); err == nil {
		t.Fatalf("expected write error to propagate")
	}
}

func TestClearCart_AuthenticatedEmptiesServerCart(t *testing.T) {
	svc, remote, _ := authedService(t)
	ctx := context.Background()
	if err := svc.AddToCart(ctx, types.Product{ID: 3}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(remote.items) != 0 {
		t.Fatalf("expected server cart emptied, got %+v", remote.items)
	}
	if lines := svc.Snapshot(); len(lines) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", lines)
	}
}

func TestCheckout_EmptyCartReturnsEmptyURL(t *testing.T) {
	svc, remote, _ := anonService(t)
	remote.redirectURL = "https://pay.example/session"
	if got := svc.Checkout(context.Background()); got != "" {
		t.Fatalf("expected empty redirect for empty cart, got %q", got)
	}
}

func TestCheckout_FailureReturnsEmptyURLNotError(t *testing.T) {
	svc, remote, _ := anonService(t)
	ctx := context.Background()
	if err := svc.AddToCart(ctx, types.Product{ID: 42, Price: 9.99}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	remote.checkoutErr = errors.New("provider down")
	if got := svc.Checkout(ctx); got != "" {
		t.Fatalf("expected empty redirect on failure, got %q", got)
	}
}

func TestCheckout_ReturnsProviderRedirect(t *testing.T) {
	svc, remote, _ := anonService(t)
	ctx := context.Background()
	remote.redirectURL = "https://pay.example/session"
	if err := svc.AddToCart(ctx, types.Product{ID: 42, Price: 9.99}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := svc.Checkout(ctx); got != "https://pay.example/session" {
		t.Fatalf("unexpected redirect: %q", got)
	}
}

func TestSubscribe_NotifiesOnReplaceAndStopsAfterUnsubscribe(t *testing.T) {
	svc, _, _ := anonService(t)
	ctx := context.Background()

	var calls int
	unsubscribe := svc.Subscribe(func(lines []types.CartLine) { calls++ })

	if err := svc.AddToCart(ctx, types.Product{ID: 1}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if calls == 0 {
		t.Fatalf("expected subscriber to be notified")
	}

	seen := calls
	unsubscribe()
	if err := svc.AddToCart(ctx, types.Product{ID: 2}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if calls != seen {
		t.Fatalf("expected no notifications after unsubscribe")
	}
}
