// Package cart presents one cart regardless of authentication state. An
// authenticated session is backed by the server cart keyed by user id; an
// anonymous session is backed by a single JSON blob in local storage.
//
// Known gap carried over from the shipped behavior: there is no
// anonymous-to-account merge on login. When a session appears the local
// blob is simply abandoned and the server cart takes over.
//
// Error policy: read paths degrade to an empty cart and never surface an
// error; write paths propagate so the caller can show a message and keep
// its prior state. Operations are expected to be serialized by the caller;
// the mutex only keeps snapshots consistent.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/session"
	"github.com/astralisweb/astralis-client/internal/types"
)

// StorageKey is the fixed local-storage key for the anonymous cart blob.
const StorageKey = "astralis_cart"

// RemoteCart is the slice of the remote API the service talks to.
type RemoteCart interface {
	ListCartItems(ctx context.Context, userID uuid.UUID) ([]types.CartItem, error)
	CreateCartItem(ctx context.Context, in astralis.CartItemCreate) error
	UpdateCartItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error
	DeleteCartItem(ctx context.Context, userID uuid.UUID, productID int64) error
	ClearCartItems(ctx context.Context, userID uuid.UUID) error
	CreatePaymentSession(ctx context.Context, lines []types.CartLine) (string, error)
}

// LocalStore is the persisted key/value surface for the anonymous cart.
type LocalStore interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Sessions exposes the current identity.
type Sessions interface {
	Current() session.State
}

type Service struct {
	log      *logger.Logger
	remote   RemoteCart
	local    LocalStore
	sessions Sessions

	mu     sync.RWMutex
	lines  []types.CartLine
	subs   map[int]func([]types.CartLine)
	nextID int
}

func NewService(log *logger.Logger, remote RemoteCart, local LocalStore, sessions Sessions) *Service {
	return &Service{
		log:      log.With("service", "CartService"),
		remote:   remote,
		local:    local,
		sessions: sessions,
		subs:     make(map[int]func([]types.CartLine)),
	}
}

// Snapshot returns a copy of the current line list.
func (s *Service) Snapshot() []types.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subscribe registers a listener invoked with the new line list after every
// snapshot replacement. The returned func removes the listener.
func (s *Service) Subscribe(fn func([]types.CartLine)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// LoadCart replaces the in-memory cart from the authoritative backend and
// notifies subscribers. Failures on this path degrade to an empty cart.
func (s *Service) LoadCart(ctx context.Context) {
	st := s.sessions.Current()
	if st.Authenticated && st.User != nil {
		items, err := s.remote.ListCartItems(ctx, st.User.ID)
		if err != nil {
			s.log.Debug("Server cart unavailable, showing empty cart", "error", err)
			s.replace(nil)
			return
		}
		lines := make([]types.CartLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, it.Line())
		}
		s.replace(lines)
		return
	}
	s.replace(s.readLocal())
}

// AddToCart adds quantity of product to the cart. Quantities below 1 are
// treated as 1. An existing line for the same product absorbs the addition.
func (s *Service) AddToCart(ctx context.Context, product types.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	st := s.sessions.Current()
	if st.Authenticated && st.User != nil {
		if err := s.remote.CreateCartItem(ctx, astralis.CartItemCreate{ProductID: product.ID, Quantity: quantity}); err != nil {
			return err
		}
		s.LoadCart(ctx)
		return nil
	}

	lines := s.readLocal()
	merged := false
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, types.CartLine{
			ProductID:  product.ID,
			Quantity:   quantity,
			UnitPrice:  product.Price,
			Label:      product.Name,
			PictureURL: product.PictureURL,
		})
	}
	if err := s.writeLocal(lines); err != nil {
		return err
	}
	s.LoadCart(ctx)
	return nil
}

func (s *Service) IncreaseQuantity(ctx context.Context, line types.CartLine) error {
	st := s.sessions.Current()
	if st.Authenticated && st.User != nil {
		if err := s.remote.UpdateCartItem(ctx, st.User.ID, line.ProductID, line.Quantity+1); err != nil {
			return err
		}
		s.LoadCart(ctx)
		return nil
	}

	lines := s.readLocal()
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity++
			break
		}
	}
	if err := s.writeLocal(lines); err != nil {
		return err
	}
	s.LoadCart(ctx)
	return nil
}

// DecreaseQuantity decrements the line. A line at quantity 1 is deleted
// rather than decremented to zero.
func (s *Service) DecreaseQuantity(ctx context.Context, line types.CartLine) error {
	st := s.sessions.Current()
	if st.Authenticated && st.User != nil {
		var err error
		if line.Quantity <= 1 {
			err = s.remote.DeleteCartItem(ctx, st.User.ID, line.ProductID)
		} else {
			err = s.remote.UpdateCartItem(ctx, st.User.ID, line.ProductID, line.Quantity-1)
		}
		if err != nil {
			return err
		}
		s.LoadCart(ctx)
		return nil
	}

	lines := s.readLocal()
	for i := range lines {
		if lines[i].ProductID != line.ProductID {
			continue
		}
		if lines[i].Quantity <= 1 {
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity--
		}
		break
	}
	if err := s.writeLocal(lines); err != nil {
		return err
	}
	s.LoadCart(ctx)
	return nil
}

func (s *Service) RemoveFromCart(ctx context.Context, line types.CartLine) error {
	st := s.sessions.Current()
	if st.Authenticated && st.User != nil {
		if err := s.remote.DeleteCartItem(ctx, st.User.ID, line.ProductID); err != nil {
			return err
		}
		s.LoadCart(ctx)
		return nil
	}

	lines := s.readLocal()
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	if err := s.writeLocal(lines); err != nil {
		return err
	}
	s.LoadCart(ctx)
	return nil
}

// ClearCart empties the cart. The anonymous branch removes the storage key
// entirely rather than persisting an empty list.
func (s *Service) ClearCart(ctx context.Context) error {
	st := s.sessions.Current()
	if st.Authenticated && st.User != nil {
		if err := s.remote.ClearCartItems(ctx, st.User.ID); err != nil {
			return err
		}
		s.LoadCart(ctx)
		return nil
	}

	if err := s.local.Delete(StorageKey); err != nil {
		return err
	}
	s.replace(nil)
	return nil
}

// Checkout posts the current line list to the payment-session endpoint and
// returns the provider redirect URL. Any failure is logged and reported as
// an empty URL; checkout never propagates an error.
func (s *Service) Checkout(ctx context.Context) string {
	lines := s.Snapshot()
	if len(lines) == 0 {
		return ""
	}
	redirect, err := s.remote.CreatePaymentSession(ctx, lines)
	if err != nil {
		s.log.Error("Checkout unavailable", "error", err)
		return ""
	}
	return redirect
}

func (s *Service) readLocal() []types.CartLine {
	raw, ok := s.local.Get(StorageKey)
	if !ok {
		return nil
	}
	var lines []types.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Warn("Corrupt local cart blob, starting empty", "error", err)
		return nil
	}
	return lines
}

func (s *Service) writeLocal(lines []types.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.local.Put(StorageKey, raw)
}

func (s *Service) replace(lines []types.CartLine) {
	s.mu.Lock()
	s.lines = lines
	listeners := make([]func([]types.CartLine), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	snapshot := make([]types.CartLine, len(lines))
	copy(snapshot, lines)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}
