package services

import (
	"context"
	"fmt"
	"net/url"
)

// resource is a REST collection at path answering the usual list, get,
// create, update and delete calls.
type resource[T any] struct {
	b    Backend
	path string
}

func (r resource[T]) item(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r resource[T]) list(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.b.Get(ctx, r.path, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r resource[T]) get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.b.Get(ctx, r.item(id), nil, &out)
	return out, err
}

// save creates body when id is zero and patches the item otherwise.
func (r resource[T]) save(ctx context.Context, id int64, body any) (T, error) {
	var out T
	if id == 0 {
		return out, r.b.Post(ctx, r.path, body, &out)
	}
	return out, r.b.Patch(ctx, r.item(id), body, &out)
}

func (r resource[T]) delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid id %d", id)
	}
	return r.b.Delete(ctx, r.item(id))
}
