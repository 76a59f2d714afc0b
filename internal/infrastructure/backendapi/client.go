// Package backendapi is the REST client for the POS backend this service
// consumes: the grouped key/value settings store and the outlet records.
package backendapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/config"
	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// SettingEntry is one row of the backend settings store. Value is declared
// loosely because the backend stores everything as JSON and tags the intended
// type per key.
type SettingEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Type  string `json:"type"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend api error: %s", e.Status)
	}
	return fmt.Sprintf("backend api error: %s: %s", e.Status, e.Body)
}

// Client talks to the POS backend over HTTPS with a bearer token.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	if cfg.Token != "" {
		httpClient.SetAuthScheme("Bearer")
		httpClient.SetAuthToken(cfg.Token)
	}

	return &Client{
		http:   httpClient,
		logger: logger.Named("backendapi"),
	}
}

type settingsResponse struct {
	Data map[string][]SettingEntry `json:"data"`
}

// FetchSettings retrieves the grouped settings payload. Group names are not
// meaningful to the caller; the resolver flattens them and partitions entries
// by key-name membership instead.
func (c *Client) FetchSettings(ctx context.Context) (map[string][]SettingEntry, error) {
	var body settingsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/settings")
	if err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Status: resp.Status(), Body: string(resp.Body())}
	}
	return body.Data, nil
}

type outletResponse struct {
	Data *entity.Outlet `json:"data"`
}

// FetchOutlet retrieves one outlet record by id. A 404 is returned as an
// APIError; the settings resolver treats any error here as "no outlet".
func (c *Client) FetchOutlet(ctx context.Context, id string) (*entity.Outlet, error) {
	if id == "" {
		return nil, fmt.Errorf("outlet id is empty")
	}

	var body outletResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		SetPathParam("id", id).
		Get("/outlets/{id}")
	if err != nil {
		return nil, fmt.Errorf("fetch outlet %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Status: resp.Status(), Body: string(resp.Body())}
	}
	return body.Data, nil
}
