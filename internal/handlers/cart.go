package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/cart"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
)

type CartHandler struct {
	log  *logger.Logger
	cart *cart.Service
}

func NewCartHandler(log *logger.Logger, cartService *cart.Service) *CartHandler {
	return &CartHandler{log: log.With("handler", "Cart"), cart: cartService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	h.cart.LoadCart(c.Request.Context())
	RespondOK(c, gin.H{"items": h.cart.Snapshot()})
}

type addToCartRequest struct {
	ProductID  int64   `json:"product_id" binding:"required"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	PictureURL string  `json:"picture_url"`
	Quantity   int     `json:"quantity"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	product := types.Product{
		ID:         req.ProductID,
		Name:       req.Name,
		Price:      req.Price,
		PictureURL: req.PictureURL,
	}
	if err := h.cart.AddToCart(c.Request.Context(), product, req.Quantity); err != nil {
		RespondError(c, http.StatusBadGateway, "cart_write_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": h.cart.Snapshot()})
}

func (h *CartHandler) IncreaseItem(c *gin.Context) {
	h.adjust(c, h.cart.IncreaseQuantity)
}

func (h *CartHandler) DecreaseItem(c *gin.Context) {
	h.adjust(c, h.cart.DecreaseQuantity)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.adjust(c, h.cart.RemoveFromCart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cart.ClearCart(c.Request.Context()); err != nil {
		RespondError(c, http.StatusBadGateway, "cart_write_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": h.cart.Snapshot()})
}

// Checkout responds 200 with the redirect URL, or an empty URL when the
// payment provider is unavailable. The UI treats empty as "try later".
func (h *CartHandler) Checkout(c *gin.Context) {
	redirect := h.cart.Checkout(c.Request.Context())
	RespondOK(c, gin.H{"redirect_url": redirect})
}

func (h *CartHandler) adjust(c *gin.Context, op func(ctx context.Context, line types.CartLine) error) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_product_id", err)
		return
	}
	line, ok := h.findLine(productID)
	if !ok {
		RespondError(c, http.StatusNotFound, "line_not_found", fmt.Errorf("no cart line for product %d", productID))
		return
	}
	if err := op(c.Request.Context(), line); err != nil {
		RespondError(c, http.StatusBadGateway, "cart_write_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": h.cart.Snapshot()})
}

func (h *CartHandler) findLine(productID int64) (types.CartLine, bool) {
	for _, line := range h.cart.Snapshot() {
		if line.ProductID == productID {
			return line, true
		}
	}
	return types.CartLine{}, false
}
