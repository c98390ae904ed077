// Package viewmodels holds the per-screen state containers. Each view model
// owns a store.Store with its screen state and exposes command methods that
// await the remote API before replacing the snapshot. Write failures set a
// generic error message and leave the previous data intact; read failures
// degrade to empty collections.
package viewmodels

import (
	"context"
	"net/url"
	"strconv"
)

// ErrGenericMessage is the user-facing fallback shown for failed commands.
const ErrGenericMessage = "Something went wrong. Please try again."

const DefaultPageSize = 20

// Lister is the read surface shared by all paged screens; every
// astralis.Resource satisfies it.
type Lister[T any] interface {
	List(ctx context.Context, query url.Values) ([]T, error)
}

// Paging is the shared pagination block embedded in screen states.
type Paging struct {
	Page     int
	PageSize int
}

func (p Paging) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	return q
}
