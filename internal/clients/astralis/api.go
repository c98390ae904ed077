package astralis

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/astralisweb/astralis-client/internal/types"
)

// API bundles the typed resources plus the handful of calls that do not fit
// the plain CRUD shape (session, server cart keyed by user, checkout).
type API struct {
	Client *Client

	CelestialBodies *Resource[types.CelestialBody, int64]
	Planets         *Resource[types.Planet, int64]
	Stars           *Resource[types.Star, int64]
	Comets          *Resource[types.Comet, int64]
	Satellites      *Resource[types.Satellite, int64]
	Galaxies        *Resource[types.Galaxy, int64]
	Quasars         *Resource[types.Quasar, int64]
	PlanetTypes     *Resource[types.PlanetType, int64]
	Products        *Resource[types.Product, int64]
	Orders          *Resource[types.Order, int64]
	Articles        *Resource[types.Article, int64]
	Comments        *Resource[types.Comment, int64]
	Events          *Resource[types.Event, int64]
	Notifications   *Resource[types.Notification, int64]
	Discoveries     *Resource[types.Discovery, int64]
	Users           *Resource[types.User, uuid.UUID]
}

func NewAPI(c *Client) *API {
	return &API{
		Client:          c,
		CelestialBodies: NewResource[types.CelestialBody, int64](c, "CelestialBodies"),
		Planets:         NewResource[types.Planet, int64](c, "Planets"),
		Stars:           NewResource[types.Star, int64](c, "Stars"),
		Comets:          NewResource[types.Comet, int64](c, "Comets"),
		Satellites:      NewResource[types.Satellite, int64](c, "Satellites"),
		Galaxies:        NewResource[types.Galaxy, int64](c, "Galaxies"),
		Quasars:         NewResource[types.Quasar, int64](c, "Quasars"),
		PlanetTypes:     NewResource[types.PlanetType, int64](c, "PlanetTypes"),
		Products:        NewResource[types.Product, int64](c, "Products"),
		Orders:          NewResource[types.Order, int64](c, "Orders"),
		Articles:        NewResource[types.Article, int64](c, "Articles"),
		Comments:        NewResource[types.Comment, int64](c, "Comments"),
		Events:          NewResource[types.Event, int64](c, "Events"),
		Notifications:   NewResource[types.Notification, int64](c, "Notifications"),
		Discoveries:     NewResource[types.Discovery, int64](c, "Discoveries"),
		Users:           NewResource[types.User, uuid.UUID](c, "Users"),
	}
}

// --- session ---

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// WhoAmI probes the ambient session. A 401 here is a read-miss, not an
// application error; callers translate it to the anonymous state.
func (a *API) WhoAmI(ctx context.Context) (*types.User, error) {
	var u types.User
	if err := a.Client.get(ctx, whoamiPath, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *API) Login(ctx context.Context, creds Credentials) error {
	return a.Client.post(ctx, "Account/login", creds, nil)
}

func (a *API) Register(ctx context.Context, req RegisterRequest) error {
	return a.Client.post(ctx, "Account/register", req, nil)
}

func (a *API) Logout(ctx context.Context) error {
	return a.Client.post(ctx, "Account/logout", nil, nil)
}

// --- server cart, keyed by (user_id, product_id) ---

type CartItemCreate struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type cartItemUpdate struct {
	Quantity int `json:"quantity"`
}

func (a *API) ListCartItems(ctx context.Context, userID uuid.UUID) ([]types.CartItem, error) {
	var out []types.CartItem
	q := url.Values{"userId": {userID.String()}}
	if err := a.Client.get(ctx, "CartItems", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) CreateCartItem(ctx context.Context, in CartItemCreate) error {
	return a.Client.post(ctx, "CartItems", in, nil)
}

func (a *API) UpdateCartItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	return a.Client.put(ctx, cartItemPath(userID, productID), cartItemUpdate{Quantity: quantity}, nil)
}

func (a *API) DeleteCartItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	return a.Client.delete(ctx, cartItemPath(userID, productID))
}

func (a *API) ClearCartItems(ctx context.Context, userID uuid.UUID) error {
	return a.Client.delete(ctx, "CartItems/"+url.PathEscape(userID.String()))
}

func cartItemPath(userID uuid.UUID, productID int64) string {
	return fmt.Sprintf("CartItems/%s/%d", url.PathEscape(userID.String()), productID)
}

// --- checkout ---

type checkoutRequest struct {
	Lines []types.CartLine `json:"lines"`
}

type checkoutResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// CreatePaymentSession posts the line list to the payment-session endpoint
// and returns the provider redirect URL.
func (a *API) CreatePaymentSession(ctx context.Context, lines []types.CartLine) (string, error) {
	var out checkoutResponse
	if err := a.Client.post(ctx, "Payments/create-checkout-session", checkoutRequest{Lines: lines}, &out); err != nil {
		return "", err
	}
	return out.RedirectURL, nil
}

// --- notifications ---

func (a *API) MarkNotificationRead(ctx context.Context, id int64) error {
	return a.Client.put(ctx, fmt.Sprintf("Notifications/%d/read", id), nil, nil)
}

// --- moderation ---

type moderationUpdate struct {
	Status string `json:"status"`
}

func (a *API) ModerateDiscovery(ctx context.Context, id int64, status string) error {
	return a.Client.put(ctx, fmt.Sprintf("Discoveries/%d/status", id), moderationUpdate{Status: status}, nil)
}
