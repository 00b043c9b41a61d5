package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

const maxBodyBytes = 4 << 20

// API is the set of business API operations the front end consumes.
type API interface {
	Recommendations(ctx context.Context, kind models.RecommendationType, query string) ([]models.Business, error)
	PopularBusinesses(ctx context.Context) ([]models.Business, error)
	Businesses(ctx context.Context, page, limit int) (*models.BusinessPage, error)
	Rate(ctx context.Context, rating models.Rating) (string, error)
	Chat(ctx context.Context, message string) (*models.ChatReply, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
}

// LoginResult carries the upstream reply and the session cookies it set.
type LoginResult struct {
	Message string         `json:"message"`
	UserID  string         `json:"user_id"`
	Cookies []*http.Cookie `json:"-"`
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// Client talks to the business API over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*rawResponse]
	popular    singleflight.Group
	logger     *zap.Logger
}

// New builds a client from the upstream configuration. Requests are traced
// with otelhttp and guarded by a circuit breaker.
func New(cfg config.UpstreamConfig, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:    "business-api",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Client errors are answers, not outages.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c, nil
}

func (c *Client) Recommendations(ctx context.Context, kind models.RecommendationType, query string) ([]models.Business, error) {
	params := url.Values{}
	params.Set(string(kind), query)
	var out []models.Business
	if err := c.getJSON(ctx, "/api/recomendaciones", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PopularBusinesses coalesces concurrent calls into one upstream request.
// The shared request outlives any single caller and carries no visitor
// session; each caller stops waiting when its own ctx ends.
func (c *Client) PopularBusinesses(ctx context.Context) ([]models.Business, error) {
	ch := c.popular.DoChan("popular", func() (interface{}, error) {
		shared := withoutSession(context.WithoutCancel(ctx))
		var out []models.Business
		if err := c.getJSON(shared, "/api/popular_businesses", nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		list := res.Val.([]models.Business)
		// Callers must not share the backing array.
		return append([]models.Business(nil), list...), nil
	}
}

func (c *Client) Businesses(ctx context.Context, page, limit int) (*models.BusinessPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	var out models.BusinessPage
	if err := c.getJSON(ctx, "/api/todos_los_negocios", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Rate(ctx context.Context, rating models.Rating) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if _, err := c.postJSON(ctx, "/api/valorar", rating, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Chat(ctx context.Context, message string) (*models.ChatReply, error) {
	var out models.ChatReply
	if _, err := c.postJSON(ctx, "/api/chatbot", map[string]string{"message": message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	resp, err := c.postJSON(ctx, "/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	out.Cookies = (&http.Response{Header: resp.header}).Cookies()
	return &out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	var out map[string]any
	_, err := c.postJSON(ctx, "/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	resp, err := c.do(req, path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) (*rawResponse, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(path).String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req, path)
	if err != nil {
		return nil, err
	}
	return resp, decode(resp, out)
}

func (c *Client) do(req *http.Request, endpoint string) (*rawResponse, error) {
	req.Header.Set("Accept", "application/json")
	for _, cookie := range sessionFrom(req.Context()) {
		req.AddCookie(cookie)
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*rawResponse, error) {
		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
		}
		raw := &rawResponse{status: httpResp.StatusCode, header: httpResp.Header, body: body}
		if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
			return raw, &APIError{Status: httpResp.StatusCode, Message: errorMessage(body)}
		}
		return raw, nil
	})

	m := metrics.Get()
	m.UpstreamRequestDuration.Record(req.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("endpoint", endpoint)))
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", ErrTransport, err)
		}
		metrics.Inc(req.Context(), m.UpstreamErrorsTotal, "endpoint", endpoint)
		c.logger.Warn("Upstream call failed",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func decode(resp *rawResponse, out any) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformed)
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// errorMessage extracts {"error": ...} or {"message": ...} from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
