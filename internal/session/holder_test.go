package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
)

type fakeAccountAPI struct {
	user        *types.User
	whoamiErr   error
	loginErr    error
	registerErr error
	logoutErr   error

	loginCalls    int
	registerCalls int
	logoutCalls   int
}

func (f *fakeAccountAPI) WhoAmI(ctx context.Context) (*types.User, error) {
	if f.whoamiErr != nil {
		return nil, f.whoamiErr
	}
	return f.user, nil
}

func (f *fakeAccountAPI) Login(ctx context.Context, creds astralis.Credentials) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeAccountAPI) Register(ctx context.Context, req astralis.RegisterRequest) error {
	f.registerCalls++
	return f.registerErr
}

func (f *fakeAccountAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

type fakeTokens struct {
	token string
}

func (f *fakeTokens) SessionToken() string { return f.token }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestProbe_FailureResolvesAnonymous(t *testing.T) {
	api := &fakeAccountAPI{whoamiErr: errors.New("401")}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	h.Probe(context.Background())

	st := h.Current()
	if st.Authenticated || st.User != nil {
		t.Fatalf("expected anonymous state, got %+v", st)
	}
}

func TestProbe_SuccessSetsAuthenticated(t *testing.T) {
	u := &types.User{ID: uuid.New(), Email: "kepler@astralis.example"}
	api := &fakeAccountAPI{user: u}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	h.Probe(context.Background())

	st := h.Current()
	if !st.Authenticated {
		t.Fatalf("expected authenticated state")
	}
	if st.User == nil || st.User.Email != u.Email {
		t.Fatalf("unexpected user: %+v", st.User)
	}
}

func TestLogin_WriteFailurePropagatesAndStateStaysAnonymous(t *testing.T) {
	api := &fakeAccountAPI{loginErr: errors.New("bad credentials"), whoamiErr: errors.New("401")}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	if err := h.Login(context.Background(), "a@b.c", "nope"); err == nil {
		t.Fatalf("expected login error")
	}
	if st := h.Current(); st.Authenticated {
		t.Fatalf("expected anonymous state after failed login")
	}
}

func TestLogin_SuccessReProbes(t *testing.T) {
	u := &types.User{ID: uuid.New()}
	api := &fakeAccountAPI{user: u}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	if err := h.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if api.loginCalls != 1 {
		t.Fatalf("expected one login call, got %d", api.loginCalls)
	}
	if st := h.Current(); !st.Authenticated {
		t.Fatalf("expected authenticated state after login")
	}
}

func TestRegister_SuccessSignsIn(t *testing.T) {
	u := &types.User{ID: uuid.New()}
	api := &fakeAccountAPI{user: u}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	req := astralis.RegisterRequest{Email: "a@b.c", Password: "pw", FirstName: "Ada", LastName: "L"}
	if err := h.Register(context.Background(), req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if api.registerCalls != 1 || api.loginCalls != 1 {
		t.Fatalf("expected register then login, got %d/%d", api.registerCalls, api.loginCalls)
	}
	if st := h.Current(); !st.Authenticated {
		t.Fatalf("expected authenticated state after register")
	}
}

func TestRegister_FailurePropagatesWithoutLogin(t *testing.T) {
	api := &fakeAccountAPI{registerErr: errors.New("email taken")}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	err := h.Register(context.Background(), astralis.RegisterRequest{Email: "a@b.c", Password: "pw"})
	if err == nil {
		t.Fatalf("expected register error")
	}
	if api.loginCalls != 0 {
		t.Fatalf("login must not run after failed register")
	}
	if st := h.Current(); st.Authenticated {
		t.Fatalf("expected anonymous state")
	}
}

func TestLogout_ClearsStateEvenWhenWireFails(t *testing.T) {
	u := &types.User{ID: uuid.New()}
	api := &fakeAccountAPI{user: u}
	h := NewHolder(testLogger(t), api, &fakeTokens{})
	h.Probe(context.Background())

	api.logoutErr = errors.New("network down")
	h.Logout(context.Background())

	if st := h.Current(); st.Authenticated || st.User != nil {
		t.Fatalf("expected anonymous state after logout, got %+v", st)
	}
	if api.logoutCalls != 1 {
		t.Fatalf("expected one logout call, got %d", api.logoutCalls)
	}
}

func TestSubscribe_NotifiedOnEveryChangeUntilUnsubscribed(t *testing.T) {
	api := &fakeAccountAPI{user: &types.User{ID: uuid.New()}}
	h := NewHolder(testLogger(t), api, &fakeTokens{})

	var states []State
	unsubscribe := h.Subscribe(func(s State) { states = append(states, s) })

	h.Probe(context.Background())
	h.Logout(context.Background())
	if len(states) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(states))
	}
	if !states[0].Authenticated || states[1].Authenticated {
		t.Fatalf("unexpected notification sequence: %+v", states)
	}

	unsubscribe()
	h.Probe(context.Background())
	if len(states) != 2 {
		t.Fatalf("expected no notifications after unsubscribe")
	}
}

func TestPeekExpiry_ReadsExpFromUnverifiedToken(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "someone",
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	api := &fakeAccountAPI{user: &types.User{ID: uuid.New()}}
	h := NewHolder(testLogger(t), api, &fakeTokens{token: raw})
	h.Probe(context.Background())

	if got := h.Current().ExpiresAt; !got.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v", exp, got)
	}
}

func TestPeekExpiry_GarbageTokenYieldsZeroTime(t *testing.T) {
	api := &fakeAccountAPI{user: &types.User{ID: uuid.New()}}
	h := NewHolder(testLogger(t), api, &fakeTokens{token: "not-a-jwt"})
	h.Probe(context.Background())

	if got := h.Current().ExpiresAt; !got.IsZero() {
		t.Fatalf("expected zero expiry, got %v", got)
	}
}
