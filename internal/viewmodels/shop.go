package viewmodels

import (
	"context"

	"github.com/astralisweb/astralis-client/internal/cart"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

type ShopState struct {
	Loading     bool
	Err         string
	Products    []types.Product
	CartLines   []types.CartLine
	Paging      Paging
	RedirectURL string
}

// ShopViewModel drives the shop screen: the product list plus the cart the
// user is building. Cart mutations go through the reconciliation service;
// the view model mirrors its snapshot via subscription.
type ShopViewModel struct {
	log      *logger.Logger
	products Lister[types.Product]
	cart     *cart.Service
	Store    *store.Store[ShopState]

	unsubscribe func()
}

func NewShopViewModel(log *logger.Logger, products Lister[types.Product], cartService *cart.Service) *ShopViewModel {
	vm := &ShopViewModel{
		log:      log.With("viewmodel", "Shop"),
		products: products,
		cart:     cartService,
		Store:    store.New(ShopState{Paging: Paging{Page: 1, PageSize: DefaultPageSize}}),
	}
	vm.unsubscribe = cartService.Subscribe(func(lines []types.CartLine) {
		vm.Store.Update(func(s ShopState) ShopState {
			s.CartLines = lines
			return s
		})
	})
	return vm
}

func (vm *ShopViewModel) Close() {
	if vm.unsubscribe != nil {
		vm.unsubscribe()
	}
}

func (vm *ShopViewModel) Load(ctx context.Context) {
	st := vm.Store.Update(func(s ShopState) ShopState {
		s.Loading = true
		s.Err = ""
		return s
	})

	products, err := vm.products.List(ctx, st.Paging.query())
	vm.Store.Update(func(s ShopState) ShopState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Product load failed", "error", err)
			s.Err = ErrGenericMessage
			return s
		}
		s.Products = products
		return s
	})
	vm.cart.LoadCart(ctx)
}

func (vm *ShopViewModel) AddToCart(ctx context.Context, product types.Product, quantity int) {
	if err := vm.cart.AddToCart(ctx, product, quantity); err != nil {
		vm.fail("Add to cart failed", err)
	}
}

func (vm *ShopViewModel) IncreaseQuantity(ctx context.Context, line types.CartLine) {
	if err := vm.cart.IncreaseQuantity(ctx, line); err != nil {
		vm.fail("Increase quantity failed", err)
	}
}

func (vm *ShopViewModel) DecreaseQuantity(ctx context.Context, line types.CartLine) {
	if err := vm.cart.DecreaseQuantity(ctx, line); err != nil {
		vm.fail("Decrease quantity failed", err)
	}
}

func (vm *ShopViewModel) RemoveFromCart(ctx context.Context, line types.CartLine) {
	if err := vm.cart.RemoveFromCart(ctx, line); err != nil {
		vm.fail("Remove from cart failed", err)
	}
}

func (vm *ShopViewModel) ClearCart(ctx context.Context) {
	if err := vm.cart.ClearCart(ctx); err != nil {
		vm.fail("Clear cart failed", err)
	}
}

// Checkout stores the provider redirect URL on success and the generic
// message when the payment session could not be created.
func (vm *ShopViewModel) Checkout(ctx context.Context) {
	redirect := vm.cart.Checkout(ctx)
	vm.Store.Update(func(s ShopState) ShopState {
		if redirect == "" {
			s.Err = "Checkout is currently unavailable."
			return s
		}
		s.Err = ""
		s.RedirectURL = redirect
		return s
	})
}

func (vm *ShopViewModel) fail(msg string, err error) {
	vm.log.Warn(msg, "error", err)
	vm.Store.Update(func(s ShopState) ShopState {
		s.Err = ErrGenericMessage
		return s
	})
}
