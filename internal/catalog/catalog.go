package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/models"
)

const DefaultTimeout = 10 * time.Second

// Client queries the upstream book catalog. The catalog is an opaque
// collaborator returning volume records; only the fields the service
// consumes are decoded.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     interfaces.Logger
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger interfaces.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// volume mirrors the upstream response shape.
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		Description string   `json:"description"`
		ImageLinks  struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
		InfoLink string `json:"infoLink"`
	} `json:"volumeInfo"`
}

type searchResponse struct {
	Items []volume `json:"items"`
}

// Search runs a free-text query against the catalog and maps the results
// onto Book records. Thumbnail URLs get the zoom=1 parameter downgraded to
// zoom=0 before the books are returned or stored.
func (c *Client) Search(ctx context.Context, query string) ([]models.Book, error) {
	reqURL := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	books := make([]models.Book, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		books = append(books, models.Book{
			BookID:      item.ID,
			Title:       item.VolumeInfo.Title,
			Authors:     item.VolumeInfo.Authors,
			Description: item.VolumeInfo.Description,
			Image:       strings.Replace(item.VolumeInfo.ImageLinks.Thumbnail, "zoom=1", "zoom=0", 1),
			Link:        item.VolumeInfo.InfoLink,
		})
	}

	c.logger.Debug("Catalog search completed", "query", query, "results", len(books))
	return books, nil
}
