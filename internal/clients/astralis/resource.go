package astralis

import (
	"context"
	"fmt"
	"net/url"
)

// Resource is a generic typed wrapper over one REST controller. It replaces
// the older one-class-per-endpoint sprawl: every catalog and content
// resource is an instance of this type parameterized by DTO and id.
type Resource[T any, ID comparable] struct {
	c    *Client
	path string
}

func NewResource[T any, ID comparable](c *Client, path string) *Resource[T, ID] {
	return &Resource[T, ID]{c: c, path: path}
}

func (r *Resource[T, ID]) List(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.c.get(ctx, r.path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, ID]) Get(ctx context.Context, id ID) (*T, error) {
	var out T
	if err := r.c.get(ctx, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, ID]) Create(ctx context.Context, in any) (*T, error) {
	var out T
	if err := r.c.post(ctx, r.path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, ID]) Update(ctx context.Context, id ID, in any) error {
	return r.c.put(ctx, r.itemPath(id), in, nil)
}

func (r *Resource[T, ID]) Delete(ctx context.Context, id ID) error {
	return r.c.delete(ctx, r.itemPath(id))
}

func (r *Resource[T, ID]) itemPath(id ID) string {
	return r.path + "/" + url.PathEscape(fmt.Sprint(id))
}
