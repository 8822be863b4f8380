package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Request describes a single API call before it is built into an Outgoing.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    any
}

type Client struct {
	baseURL         string
	transport       Transport
	token           string
	requestIDKey    any
	defaultHeaders  map[string]string
	maxResponseSize int64 // 0 means no limit
	limiter         *rate.Limiter
	clock           clock.Clock
	logger          zerolog.Logger
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		transport:    NewHTTPTransport(nil),
		token:        "",
		requestIDKey: nil,
		defaultHeaders: map[string]string{
			HeaderContentType: ContentTypeJSON,
			HeaderAccept:      ContentTypeJSON,
		},
		maxResponseSize: 0,
		limiter:         nil,
		clock:           clock.NewClock(),
		logger:          log.Logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Get(
	ctx context.Context,
	path string,
	response any,
	opts ...RequestOption,
) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Headers: nil, Body: nil}, response, opts...)
}

func (c *Client) Post(
	ctx context.Context,
	path string,
	body any,
	response any,
	opts ...RequestOption,
) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Headers: nil, Body: body}, response, opts...)
}

func (c *Client) Delete(
	ctx context.Context,
	path string,
	response any,
	opts ...RequestOption,
) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Headers: nil, Body: nil}, response, opts...)
}

// Do executes req and translates the response into response.
func (c *Client) Do(
	ctx context.Context,
	req *Request,
	response any,
	opts ...RequestOption,
) error {
	cfg := c.buildRequestConfig(ctx, opts...)

	resp, err := c.execute(ctx, req, cfg)
	if err != nil {
		return err
	}

	return translate(resp, response, cfg.requestID, c.maxResponseSize)
}

// Execute sends req and returns the raw response whatever its status code.
// Only WithRetry changes that: 429 responses are then waited out and resent.
func (c *Client) Execute(ctx context.Context, req *Request, opts ...RequestOption) (Response, error) {
	return c.execute(ctx, req, c.buildRequestConfig(ctx, opts...))
}

func (c *Client) execute(ctx context.Context, req *Request, cfg *requestConfig) (Response, error) {
	out, err := c.buildOutgoing(req, cfg)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", out.Method).
		Str("url", out.URL).
		Str("request_id", cfg.requestID).
		Msg("Sending request")

	return c.sendWithRetry(ctx, out, cfg)
}

func (c *Client) buildRequestConfig(ctx context.Context, opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers:   make(map[string]string),
		timeout:   0,
		requestID: "",
		retry:     nil,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.requestID == "" {
		cfg.requestID = c.extractRequestID(ctx)
	}

	return cfg
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func (c *Client) buildOutgoing(req *Request, cfg *requestConfig) (*Outgoing, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}

	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		body = encoded
	}

	header := make(http.Header)

	for k, v := range c.defaultHeaders {
		header.Set(k, v)
	}

	if c.token != "" {
		header.Set(HeaderAuthorization, "Bearer "+c.token)
	}

	for k, v := range req.Headers {
		header.Set(k, v)
	}

	for k, v := range cfg.headers {
		header.Set(k, v)
	}

	if cfg.requestID != "" {
		header.Set(HeaderXRequestID, cfg.requestID)
	}

	return &Outgoing{
		Method: req.Method,
		URL:    c.buildURL(req.Path),
		Header: header,
		Body:   body,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
