package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"immolist/server/internal/models"
	"immolist/server/internal/normalize"
)

// Client fetches the upstream catalog feed and normalizes its payloads.
type Client struct {
	baseURL    string
	client     *http.Client
	logger     *logrus.Logger
	normalizer *normalize.Normalizer
}

func NewClient(baseURL string, timeout time.Duration, normalizer *normalize.Normalizer, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
		normalizer: normalizer,
	}
}

// FetchListings retrieves and normalizes the full listing collection.
func (c *Client) FetchListings(ctx context.Context) ([]models.Listing, error) {
	raw, err := c.fetch(ctx, "/products")
	if err != nil {
		return nil, err
	}
	return c.normalizer.Records(raw), nil
}

// FetchCategories retrieves and normalizes the category collection.
func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	raw, err := c.fetch(ctx, "/categories")
	if err != nil {
		return nil, err
	}
	return c.normalizer.Categories(raw), nil
}

// fetch performs one GET and decodes the body as a JSON array of objects.
// Shape deviations inside each object are the normalizer's problem, not ours.
func (c *Client) fetch(ctx context.Context, path string) ([]map[string]interface{}, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", url, err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", url, err)
	}

	c.logger.WithFields(logrus.Fields{
		"url":   url,
		"count": len(records),
	}).Debug("Fetched catalog feed")

	return records, nil
}
