package astralis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testClient(t *testing.T, srv *httptest.Server, maxRetries int) *Client {
	t.Helper()
	c, err := New(testLogger(t), Config{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestResourceList_DecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Products" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Fatalf("expected page=2, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Refractor","price":9.99},{"id":2,"name":"Star chart","price":4.5}]`))
	}))
	defer srv.Close()

	api := NewAPI(testClient(t, srv, 0))
	products, err := api.Products.List(context.Background(), url.Values{"page": {"2"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 || products[0].Name != "Refractor" || products[1].Price != 4.5 {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestResourceGet_404IsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	api := NewAPI(testClient(t, srv, 0))
	_, err := api.Articles.Get(context.Background(), 99)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found sentinel, got %v", err)
	}
}

func TestWriteFailure_ReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("already in cart"))
	}))
	defer srv.Close()

	api := NewAPI(testClient(t, srv, 0))
	err := api.CreateCartItem(context.Background(), CartItemCreate{ProductID: 1, Quantity: 1})
	if err == nil {
		t.Fatalf("expected error")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", httpErr.StatusCode)
	}
	if httpErr.HTTPStatusCode() != http.StatusConflict {
		t.Fatalf("HTTPStatusCode mismatch: %d", httpErr.HTTPStatusCode())
	}
}

func TestGet_RetriesRetryableStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Perseids tonight"}]`))
	}))
	defer srv.Close()

	api := NewAPI(testClient(t, srv, 2))
	events, err := api.Events.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
	if len(events) != 1 {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestWrite_NeverRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := NewAPI(testClient(t, srv, 3))
	if err := api.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly one attempt for a write, got %d", calls)
	}
}

func TestUnauthorized_FiresHookExceptOnWhoAmI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, srv, 0)
	api := NewAPI(c)

	var fired int
	c.SetOnUnauthorized(func() { fired++ })

	if _, err := api.WhoAmI(context.Background()); err == nil {
		t.Fatalf("expected whoami error")
	}
	if fired != 0 {
		t.Fatalf("whoami 401 must not fire the hook")
	}

	if _, err := api.Notifications.List(context.Background(), nil); err == nil {
		t.Fatalf("expected error")
	}
	if fired != 1 {
		t.Fatalf("expected hook to fire once, got %d", fired)
	}
}

func TestSessionToken_ReadsCookieFromJar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/Account/login" {
			http.SetCookie(w, &http.Cookie{Name: "astralis_session", Value: "tok123", Path: "/"})
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, srv, 0)
	api := NewAPI(c)

	if got := c.SessionToken(); got != "" {
		t.Fatalf("expected empty token before login, got %q", got)
	}
	if err := api.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := c.SessionToken(); got != "tok123" {
		t.Fatalf("expected tok123, got %q", got)
	}
}

func TestCreatePaymentSession_ReturnsRedirectURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Payments/create-checkout-session" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"redirect_url":"https://pay.example/s/abc"}`))
	}))
	defer srv.Close()

	api := NewAPI(testClient(t, srv, 0))
	lines := []types.CartLine{{ProductID: 42, Quantity: 2, UnitPrice: 9.99}}
	redirect, err := api.CreatePaymentSession(context.Background(), lines)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if redirect != "https://pay.example/s/abc" {
		t.Fatalf("unexpected redirect %q", redirect)
	}
}
