package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"hostel-client/internal/metrics"
	"hostel-client/internal/shared/apperror"
)

// Client is the one place HTTP happens. It owns no cache: after a successful
// mutation the caller re-lists, which matches the submit-then-refetch flow of
// every screen this replaces.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	sf      singleflight.Group
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger.Named("api.client") }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		logger:  zap.L().Named("api.client"),
		metrics: metrics.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listResult struct {
	raw json.RawMessage
	err error
}

// List fetches and normalizes a record list. Concurrent identical calls are
// collapsed into one request. On SHAPE_ERROR out is set to an empty slice and
// the error is still returned, so callers can warn without crashing.
func (c *Client) List(ctx context.Context, resource string, filter url.Values, out any) error {
	key := resource + "?" + filter.Encode()

	// Failures travel inside listResult so every deduplicated caller sees
	// the same outcome; the outer error is always nil.
	v, _, shared := c.sf.Do(key, func() (any, error) {
		raw, err := c.fetchList(ctx, resource, filter)
		return listResult{raw: raw, err: err}, nil
	})
	if shared {
		c.logger.Debug("list request deduplicated", zap.String("key", key))
	}

	res := v.(listResult)
	if res.err != nil {
		if apperror.HasCode(res.err, apperror.CodeShape) {
			setEmptySlice(out)
		}
		return res.err
	}
	if err := json.Unmarshal(res.raw, out); err != nil {
		setEmptySlice(out)
		return apperror.Wrap(err, apperror.CodeShape, "Unexpected record shape for "+resource, 0)
	}
	return nil
}

func (c *Client) fetchList(ctx context.Context, resource string, filter url.Values) (json.RawMessage, error) {
	spec := specFor(resource)
	path := resource
	if len(filter) == 0 && spec.listAllPath != "" {
		path = spec.listAllPath
	}

	body, err := c.do(ctx, http.MethodGet, path, filter, nil, resource, "list")
	if err != nil {
		return nil, err
	}

	raw, err := normalizeList(resource, body)
	if err != nil {
		c.logger.Warn("list response did not match any known shape",
			zap.String("resource", resource),
			zap.Int("body_bytes", len(body)),
		)
		c.count(resource, "list", "shape_error")
		return nil, err
	}
	return raw, nil
}

// Create posts a new record. It is never retried automatically: a duplicate
// submission is worse than a surfaced failure, and the Idempotency-Key header
// lets the backend dedupe a manual resubmit.
func (c *Client) Create(ctx context.Context, resource string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPost, resource, nil, payload, resource, "create")
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Update patches one record, using PUT or PATCH per the resource table.
func (c *Client) Update(ctx context.Context, resource, id string, patch, out any) error {
	method := specFor(resource).updateMethod
	body, err := c.do(ctx, method, resource+"/"+id, nil, patch, resource, "update")
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Remove deletes one record. 404 maps to NOT_FOUND (the record vanished).
func (c *Client) Remove(ctx context.Context, resource, id string) error {
	_, err := c.do(ctx, http.MethodDelete, resource+"/"+id, nil, nil, resource, "remove")
	return err
}

// Post issues a raw POST against a non-resource path (the auth endpoints).
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPost, strings.TrimLeft(path, "/"), nil, payload, path, "post")
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, resource, verb string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.Network(err)
	}

	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeValidation, "Could not encode request body", 0)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apperror.Network(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.count(resource, verb, "network_error")
		return nil, apperror.Network(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.count(resource, verb, "network_error")
		return nil, apperror.Network(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		mapped := mapStatusError(res.StatusCode, body)
		c.count(resource, verb, strings.ToLower(errCode(mapped)))
		c.logger.Warn("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
		)
		return nil, mapped
	}

	c.count(resource, verb, "success")
	return body, nil
}

func (c *Client) count(resource, verb, outcome string) {
	c.metrics.Requests.WithLabelValues(resource, verb, outcome).Inc()
}

func decodeInto(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperror.Wrap(err, apperror.CodeShape, "Unexpected response body", 0)
	}
	return nil
}

func setEmptySlice(out any) {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Slice {
		return
	}
	elem.Set(reflect.MakeSlice(elem.Type(), 0, 0))
}
