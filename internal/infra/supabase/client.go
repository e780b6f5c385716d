// Package supabase provides the persistent data backend for the finance
// tracker, speaking to Supabase's PostgREST API.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/infra/observability"
	"github.com/meu-financeiro/core-api/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to Supabase PostgREST.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	cfg            resilience.Config
	metrics        *observability.Metrics
	logger         *zap.Logger
}

// NewClient creates a Supabase client.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceRoleKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		cfg:            cfg,
		metrics:        metrics,
		logger:         logger,
	}
}

// doRequest executes an authenticated request to Supabase PostgREST.
func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		c.logger.Error("supabase: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("supabase: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// execute runs fn behind the circuit breaker with retries.
func (c *Client) execute(ctx context.Context, service string, fn func() error) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, fn)
	})
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return notFound
		}
		if c.metrics != nil {
			c.metrics.IncrStoreError(service)
		}
		return &domain.ErrExternalService{Service: service, Err: err}
	}
	return nil
}

// ============================================================
// Generic row helpers. Domain structs carry snake_case JSON tags
// matching the table columns, so they double as row types.
// ============================================================

func selectRows[T any](ctx context.Context, c *Client, service, path string) ([]T, error) {
	var rows []T
	err := c.execute(ctx, service, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			rows = []T{}
			return nil
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode %s rows: %w", service, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func selectOne[T any](ctx context.Context, c *Client, service, resource, id, path string) (*T, error) {
	rows, err := selectRows[T](ctx, c, service, path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: resource, ID: id}
	}
	return &rows[0], nil
}

func insertRows[T any](ctx context.Context, c *Client, service, table string, payload any) ([]T, error) {
	var rows []T
	err := c.execute(ctx, service, func() error {
		body, err := c.doPost(ctx, table, payload)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode inserted %s rows: %w", service, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func insertOne[T any](ctx context.Context, c *Client, service, table string, row *T) (*T, error) {
	rows, err := insertRows[T](ctx, c, service, table, row)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.ErrExternalService{
			Service: service,
			Err:     fmt.Errorf("insert into %s returned no representation", table),
		}
	}
	return &rows[0], nil
}

func (c *Client) patchRows(ctx context.Context, service, path string, data map[string]any) error {
	return c.execute(ctx, service, func() error {
		return c.doPatch(ctx, path, data)
	})
}

func (c *Client) deleteRows(ctx context.Context, service, path string) error {
	return c.execute(ctx, service, func() error {
		return c.doDelete(ctx, path)
	})
}
