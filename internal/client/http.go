package client

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

	"github.com/erazemk/partstock/internal/model"
)

// DefaultTimeout bounds a single table request.
const DefaultTimeout = 10 * time.Second

// HTTP talks to the table service over its JSON API.
type HTTP struct {
	BaseURL string
	Key     string
	Client  *http.Client
}

// NewHTTP returns a client for the table service at baseURL.
func NewHTTP(baseURL, key string) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing table url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("table url must be http or https, got %q", baseURL)
	}
	return &HTTP{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Key:     key,
		Client:  &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// ListAll returns every part, ordered by name.
func (c *HTTP) ListAll(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	if err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &parts); err != nil {
		return nil, storeErr("listing parts", err)
	}
	if parts == nil {
		parts = []model.Part{}
	}
	return parts, nil
}

// Insert creates a part.
func (c *HTTP) Insert(ctx context.Context, p model.NewPart) error {
	return storeErr("inserting part", c.do(ctx, http.MethodPost, "/api/inventory", p, nil))
}

// Update applies a partial update to the part with the given id.
func (c *HTTP) Update(ctx context.Context, id int64, patch model.Patch) error {
	return storeErr("updating part", c.do(ctx, http.MethodPatch, partPath(id), patch, nil))
}

// Remove deletes the part with the given id.
func (c *HTTP) Remove(ctx context.Context, id int64) error {
	return storeErr("removing part", c.do(ctx, http.MethodDelete, partPath(id), nil, nil))
}

func partPath(id int64) string {
	return "/api/inventory/" + strconv.FormatInt(id, 10)
}

func (c *HTTP) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Key != "" {
		req.Header.Set("Authorization", "Bearer "+c.Key)
	}

	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, payload.Error)
	}
	return errors.New(resp.Status)
}
