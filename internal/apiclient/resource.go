package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// resource carries the five calls every CRUD collection of the API has.
type resource[T any] struct {
	c    *Client
	base string
}

func (r resource[T]) List(ctx context.Context) (Envelope[[]T], error) {
	return call[[]T](ctx, r.c, http.MethodGet, r.base, r.base, nil)
}

func (r resource[T]) Get(ctx context.Context, id int64) (Envelope[T], error) {
	return call[T](ctx, r.c, http.MethodGet, r.base+"/:id", idPath(r.base, id), nil)
}

func (r resource[T]) Create(ctx context.Context, v T) (Envelope[T], error) {
	return call[T](ctx, r.c, http.MethodPost, r.base, r.base, v)
}

func (r resource[T]) Update(ctx context.Context, id int64, v T) (Envelope[T], error) {
	return call[T](ctx, r.c, http.MethodPut, r.base+"/:id", idPath(r.base, id), v)
}

func (r resource[T]) Delete(ctx context.Context, id int64) (Envelope[json.RawMessage], error) {
	return call[json.RawMessage](ctx, r.c, http.MethodDelete, r.base+"/:id", idPath(r.base, id), nil)
}
