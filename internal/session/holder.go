// Package session holds the current identity derived from the remote
// session probe. The holder is explicit state passed to constructors, not an
// ambient global: everything that needs to know who is logged in takes a
// *Holder.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
)

type State struct {
	Authenticated bool
	User          *types.User
	// ExpiresAt is best-effort, peeked from the session token when one is
	// readable. Zero when unknown.
	ExpiresAt time.Time
}

// AccountAPI is the slice of the remote API the holder needs.
type AccountAPI interface {
	WhoAmI(ctx context.Context) (*types.User, error)
	Login(ctx context.Context, creds astralis.Credentials) error
	Register(ctx context.Context, req astralis.RegisterRequest) error
	Logout(ctx context.Context) error
}

// TokenSource exposes the raw session cookie value for claim peeking.
type TokenSource interface {
	SessionToken() string
}

type Holder struct {
	log    *logger.Logger
	api    AccountAPI
	tokens TokenSource

	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewHolder(log *logger.Logger, api AccountAPI, tokens TokenSource) *Holder {
	return &Holder{
		log:    log.With("component", "SessionHolder"),
		api:    api,
		tokens: tokens,
		subs:   make(map[int]func(State)),
	}
}

func (h *Holder) Current() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Subscribe registers a listener invoked after every state change with the
// new snapshot. The returned func removes the listener.
func (h *Holder) Subscribe(fn func(State)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Probe asks the server who the session belongs to. Any failure, 401
// included, resolves to the anonymous state without surfacing an error.
func (h *Holder) Probe(ctx context.Context) {
	u, err := h.api.WhoAmI(ctx)
	if err != nil || u == nil {
		if err != nil {
			h.log.Debug("Session probe resolved anonymous", "error", err)
		}
		h.set(State{})
		return
	}
	h.set(State{Authenticated: true, User: u, ExpiresAt: h.peekExpiry()})
}

// Login posts credentials and re-probes. Write failures propagate.
func (h *Holder) Login(ctx context.Context, email, password string) error {
	if err := h.api.Login(ctx, astralis.Credentials{Email: email, Password: password}); err != nil {
		return err
	}
	h.Probe(ctx)
	return nil
}

// Register creates the account and signs it in. Either write failing
// propagates; the session stays anonymous in that case.
func (h *Holder) Register(ctx context.Context, req astralis.RegisterRequest) error {
	if err := h.api.Register(ctx, req); err != nil {
		return err
	}
	return h.Login(ctx, req.Email, req.Password)
}

// Logout is best-effort on the wire; local state always resets.
func (h *Holder) Logout(ctx context.Context) {
	if err := h.api.Logout(ctx); err != nil {
		h.log.Warn("Logout request failed; clearing local session anyway", "error", err)
	}
	h.set(State{})
}

func (h *Holder) set(s State) {
	h.mu.Lock()
	h.state = s
	listeners := make([]func(State), 0, len(h.subs))
	for _, fn := range h.subs {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}

// peekExpiry decodes the session token without verifying it. The signature
// check is the server's job; this is display metadata only.
func (h *Holder) peekExpiry() time.Time {
	if h.tokens == nil {
		return time.Time{}
	}
	raw := h.tokens.SessionToken()
	if raw == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
