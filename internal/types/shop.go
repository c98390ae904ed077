package types

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	PictureURL  string  `json:"picture_url,omitempty"`
	InStock     bool    `json:"in_stock"`
}

// CartLine is one entry in a cart. At most one line exists per product id
// within a given cart; Quantity is always positive.
type CartLine struct {
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Label      string  `json:"label"`
	PictureURL string  `json:"picture_url,omitempty"`
}

// CartItem is the server-side representation of a line, keyed by
// (user_id, product_id).
type CartItem struct {
	UserID     uuid.UUID `json:"user_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	Label      string    `json:"label"`
	PictureURL string    `json:"picture_url,omitempty"`
}

func (ci CartItem) Line() CartLine {
	return CartLine{
		ProductID:  ci.ProductID,
		Quantity:   ci.Quantity,
		UnitPrice:  ci.UnitPrice,
		Label:      ci.Label,
		PictureURL: ci.PictureURL,
	}
}

type Order struct {
	ID        int64      `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	Status    string     `json:"status"`
}
