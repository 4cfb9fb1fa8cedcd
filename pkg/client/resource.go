package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// Resource is a typed CRUD view over one backend collection.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource binds T to the collection at path, e.g. "/certifications".
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: "/" + strings.Trim(path, "/")}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

// Sub returns the nested collection under one parent entity,
// e.g. /companies/{id}/certifications.
func Sub[T any](c *Client, parent, id, child string) *Resource[T] {
	return NewResource[T](c, strings.Trim(parent, "/")+"/"+url.PathEscape(id)+"/"+strings.Trim(child, "/"))
}

// List fetches one page of the collection.
func (r *Resource[T]) List(ctx context.Context, params url.Values) (pagination.PageResult[T], error) {
	body, err := r.c.Get(ctx, r.path, params)
	if err != nil {
		return pagination.PageResult[T]{}, err
	}
	page, err := decodePage[T](body)
	if err != nil {
		return pagination.PageResult[T]{}, &Error{Kind: KindServer, Err: err}
	}
	return page, nil
}

// Find fetches one entity by id. A reply without data is reported as not found.
func (r *Resource[T]) Find(ctx context.Context, id string) (*T, error) {
	body, err := r.c.Get(ctx, r.item(id), nil)
	if err != nil {
		return nil, err
	}
	return r.entity(body)
}

// FindPath fetches one entity from an arbitrary sub-path of the collection,
// e.g. "slug/about-us".
func (r *Resource[T]) FindPath(ctx context.Context, sub string) (*T, error) {
	body, err := r.c.Get(ctx, r.path+"/"+strings.Trim(sub, "/"), nil)
	if err != nil {
		return nil, err
	}
	return r.entity(body)
}

// Create posts a new entity and returns the stored version.
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	raw, err := r.c.Post(ctx, r.path, body)
	if err != nil {
		return nil, err
	}
	return r.stored(raw)
}

// Update replaces the entity with id and returns the stored version.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	raw, err := r.c.Put(ctx, r.item(id), body)
	if err != nil {
		return nil, err
	}
	return r.stored(raw)
}

// Delete removes the entity with id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, r.item(id))
}

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource[T]) entity(body []byte) (*T, error) {
	v, err := decodeEntity[T](body)
	if err != nil {
		return nil, &Error{Kind: KindServer, Err: err}
	}
	if v == nil {
		return nil, &Error{Kind: KindNotFound, Message: "not found"}
	}
	return v, nil
}

// stored tolerates write replies that carry no entity.
func (r *Resource[T]) stored(body []byte) (*T, error) {
	v, err := decodeEntity[T](body)
	if err != nil {
		return nil, &Error{Kind: KindServer, Err: err}
	}
	if v == nil {
		v = new(T)
	}
	return v, nil
}
