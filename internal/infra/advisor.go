package infra

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/config"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
)

// PriceAdvisor exposes the external price-analysis operations used by the
// application.
type PriceAdvisor interface {
	Analizar(ctx context.Context, payload dto.AnalisisPayload) (*dto.AnalisisAdvisorResponse, error)
}

// AdvisorClient is a resty-backed implementation of PriceAdvisor. Calls run
// through a circuit breaker: when the advisor is down, requests fast-fail
// instead of piling up on the timeout.
type AdvisorClient struct {
	httpClient *resty.Client
	cb         *CircuitBreaker
}

func NewAdvisorClient(cfg *config.Config) *AdvisorClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.PriceAdvisorURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Duration(cfg.PriceAdvisorTimeoutSeconds) * time.Second)

	return &AdvisorClient{
		httpClient: restyClient,
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// CircuitState reports the breaker state for the health endpoint.
func (c *AdvisorClient) CircuitState() string {
	return c.cb.State().String()
}

// Analizar POSTs the per-batch price histories and returns the suggested
// prices. Any non-2xx status or transport error counts as a breaker failure.
func (c *AdvisorClient) Analizar(ctx context.Context, payload dto.AnalisisPayload) (*dto.AnalisisAdvisorResponse, error) {
	result := new(dto.AnalisisAdvisorResponse)

	err := c.cb.Execute(func() error {
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(payload).
			SetResult(result).
			Post("/analyze")
		if err != nil {
			return fmt.Errorf("advisor unreachable: %w", err)
		}
		if resp.StatusCode() >= http.StatusBadRequest {
			return fmt.Errorf("advisor returned %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
