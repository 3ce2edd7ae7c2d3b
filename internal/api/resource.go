package api

import (
	"context"
	"net/url"
)

// Resource is the verb surface the typed services consume. *Client is the
// production implementation; tests swap in function-field fakes.
//
//go:generate mockgen -source=resource.go -destination=mock/resource_mock.go -package=mock
type Resource interface {
	List(ctx context.Context, resource string, filter url.Values, out any) error
	Create(ctx context.Context, resource string, payload, out any) error
	Update(ctx context.Context, resource, id string, patch, out any) error
	Remove(ctx context.Context, resource, id string) error
	Post(ctx context.Context, path string, payload, out any) error
}

var _ Resource = (*Client)(nil)
