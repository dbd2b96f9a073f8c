// Package gateway is the HTTP client for the payment provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/iho/splitledger/internal/domain"
)

var tracer = otel.Tracer("github.com/iho/splitledger/internal/adapter/gateway")

// AuthHeader carries the provider API key.
const AuthHeader = "access_token"

// Config holds provider connection settings.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
}

// Observer receives per-call outcomes.
type Observer interface {
	ObserveProvider(operation, outcome string, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveProvider(string, string, time.Duration) {}

// Client implements usecase.RemoteGateway over the provider's REST API.
type Client struct {
	httpClient *http.Client
	cfg        Config
	cb         *gobreaker.CircuitBreaker
	observer   Observer
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithCircuitBreaker replaces the default breaker.
func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.cb = cb }
}

// NewClient creates a provider client from explicit configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		cb:         NewCircuitBreaker("provider", zerolog.Nop()),
		observer:   nopObserver{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCircuitBreaker trips after at least 5 requests with a 60% failure ratio.
// Not-found answers count as successes. State changes are logged as warnings.
func NewCircuitBreaker(name string, logger zerolog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrAccountNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// StatusError is a non-2xx provider response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ListPayments implements usecase.RemoteGateway.
func (c *Client) ListPayments(ctx context.Context, r domain.DateRange, limit int) (*domain.PaymentPage, error) {
	ctx, span := tracer.Start(ctx, "Client.ListPayments")
	defer span.End()

	q := url.Values{}
	q.Set("limit", strconv.Itoa(domain.ValidatePageLimit(limit)))
	q.Set("offset", "0")
	if s := r.StartDate(); s != "" {
		q.Set("dateCreated[ge]", s)
	}
	if e := r.EndDate(); e != "" {
		q.Set("dateCreated[le]", e)
	}
	span.SetAttributes(attribute.String("provider.query", q.Encode()))

	var body paymentListResponse
	if err := c.call(ctx, "list_payments", http.MethodGet, "/payments?"+q.Encode(), nil, &body, c.cfg.MaxRetries); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	page := &domain.PaymentPage{
		Data:    make([]domain.ProviderPayment, 0, len(body.Data)),
		HasMore: body.HasMore,
	}
	for _, p := range body.Data {
		payment, err := p.toDomain()
		if err != nil {
			c.logger.Warn().Err(err).Str("payment_id", p.ID).Msg("skipping malformed provider payment")
			continue
		}
		page.Data = append(page.Data, payment)
	}
	span.SetAttributes(attribute.Int("provider.payments", len(page.Data)), attribute.Bool("provider.has_more", page.HasMore))

	return page, nil
}

// GetAccount implements usecase.RemoteGateway.
func (c *Client) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Client.GetAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", id))

	var body accountResponse
	err := c.call(ctx, "get_account", http.MethodGet, "/accounts/"+url.PathEscape(id), nil, &body, c.cfg.MaxRetries)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	return &domain.Account{
		ID:       body.ID,
		Name:     body.Name,
		Email:    body.Email,
		CpfCnpj:  body.CpfCnpj,
		WalletID: body.WalletID,
	}, nil
}

// CreatePayment implements usecase.RemoteGateway. It is never retried.
func (c *Client) CreatePayment(ctx context.Context, req *domain.PaymentRequest) (*domain.ProviderPayment, error) {
	ctx, span := tracer.Start(ctx, "Client.CreatePayment")
	defer span.End()
	span.SetAttributes(attribute.String("payment.external_reference", req.ExternalReference))

	var body paymentDTO
	if err := c.call(ctx, "create_payment", http.MethodPost, "/payments", newPaymentRequest(req), &body, 0); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	payment, err := body.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: create payment: %w", domain.ErrRemoteGatewayUnavailable, err)
	}
	span.SetAttributes(attribute.String("payment.id", payment.ID))

	return &payment, nil
}

// call runs one request behind the breaker with bounded retries and decodes the JSON body into out.
func (c *Client) call(ctx context.Context, operation, method, path string, in, out any, maxRetries int) error {
	start := time.Now()

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
	}

	_, err := c.cb.Execute(func() (any, error) {
		b := backoff.WithContext(
			backoff.WithMaxRetries(c.newBackOff(), uint64(maxRetries)),
			ctx,
		)
		attempt := 0
		return nil, backoff.Retry(func() error {
			attempt++
			err := c.do(ctx, method, path, payload, out)
			if err == nil {
				return nil
			}

			var (
				se   *StatusError
				perm *backoff.PermanentError
			)
			if errors.As(err, &perm) {
				return err
			}
			if errors.Is(err, domain.ErrAccountNotFound) || (errors.As(err, &se) && !se.retryable()) {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}

			c.logger.Warn().Err(err).Str("operation", operation).Int("attempt", attempt).Msg("provider call failed")
			return err
		}, b)
	})

	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAccountNotFound):
		outcome = "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "circuit_open"
	default:
		outcome = "error"
	}
	c.observer.ObserveProvider(operation, outcome, time.Since(start))

	if err == nil || errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrRemoteGatewayUnavailable, operation, err)
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialBackoff
	b.MaxInterval = 10 * c.cfg.InitialBackoff
	b.MaxElapsedTime = 0
	return b
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(AuthHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/accounts/") {
		return domain.ErrAccountNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode provider response: %w", err))
	}
	return nil
}
