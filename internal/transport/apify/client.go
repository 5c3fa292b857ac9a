// Package apify calls a managed scraping actor through the Apify REST API
// and maps dataset items to property listings.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/domain"
)

// Client runs a scraping actor synchronously and returns its dataset items.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	actorID    string
	logger     *zap.Logger
}

// Config holds the scraping API settings.
type Config struct {
	APIToken string
	BaseURL  string
	ActorID  string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// runInput is the actor input for property detail scraping.
type runInput struct {
	URLs             []string   `json:"urls"`
	MaxRetriesPerURL int        `json:"max_retries_per_url"`
	Proxy            proxyInput `json:"proxy"`
}

type proxyInput struct {
	UseApifyProxy     bool     `json:"useApifyProxy"`
	ApifyProxyGroups  []string `json:"apifyProxyGroups"`
	ApifyProxyCountry string   `json:"apifyProxyCountry"`
}

// datasetItem is one scraped record as the actor emits it. The actor is not
// consistent about field names, so several aliases are read per field.
type datasetItem struct {
	URL                 string   `json:"url"`
	Title               string   `json:"title"`
	PropertyName        string   `json:"propertyName"`
	Price               string   `json:"price"`
	Location            string   `json:"location"`
	Locality            string   `json:"locality"`
	PropertyType        string   `json:"propertyType"`
	Bedrooms            string   `json:"bedrooms"`
	BHKType             string   `json:"bhkType"`
	Bathrooms           string   `json:"bathrooms"`
	Area                string   `json:"area"`
	CarpetArea          string   `json:"carpetArea"`
	Amenities           []string `json:"amenities"`
	Description         string   `json:"description"`
	PropertyDescription string   `json:"propertyDescription"`
	Builder             string   `json:"builder"`
	BuilderName         string   `json:"builderName"`
	LocalityInfo        string   `json:"localityInfo"`
	AboutLocality       string   `json:"aboutLocality"`
}

// NewClient creates a scraping API client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute // sync actor runs are slow
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.apify.com"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      cfg.APIToken,
		actorID:    cfg.ActorID,
		logger:     cfg.Logger,
	}
}

// ScrapeListings runs the actor against the given detail-page URLs and
// waits for the dataset. Errors are wrapped with domain.ErrScraperProvider.
func (c *Client) ScrapeListings(ctx context.Context, urls []string) ([]domain.Listing, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	input := runInput{
		URLs:             urls,
		MaxRetriesPerURL: 2,
		Proxy: proxyInput{
			UseApifyProxy:     true,
			ApifyProxyGroups:  []string{"RESIDENTIAL"},
			ApifyProxyCountry: "IN",
		},
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal run input: %w", err)
	}

	// The path segment form of an actor ID uses ~ instead of /.
	actorPath := strings.ReplaceAll(c.actorID, "/", "~")
	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(actorPath), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("starting actor run", zap.Int("urls", len(urls)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("actor run failed: %w: %v", domain.ErrScraperProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("actor run returned %d: %s: %w",
			resp.StatusCode, string(snippet), domain.ErrScraperProvider)
	}

	var items []datasetItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode dataset: %w: %v", domain.ErrScraperProvider, err)
	}

	listings := make([]domain.Listing, 0, len(items))
	now := time.Now().UTC()
	for _, item := range items {
		listings = append(listings, item.toListing(now))
	}

	c.logger.Info("actor run finished", zap.Int("listings", len(listings)))

	return listings, nil
}

func (it *datasetItem) toListing(scrapedAt time.Time) domain.Listing {
	return domain.Listing{
		ID:           ListingID(it.URL),
		Title:        firstNonEmpty(it.Title, it.PropertyName),
		Price:        it.Price,
		Location:     firstNonEmpty(it.Location, it.Locality),
		PropertyType: it.PropertyType,
		BHK:          firstNonEmpty(it.Bedrooms, it.BHKType),
		Bathrooms:    it.Bathrooms,
		Area:         firstNonEmpty(it.Area, it.CarpetArea),
		Amenities:    it.Amenities,
		Description:  firstNonEmpty(it.Description, it.PropertyDescription),
		Builder:      firstNonEmpty(it.Builder, it.BuilderName),
		LocalityInfo: firstNonEmpty(it.LocalityInfo, it.AboutLocality),
		URL:          it.URL,
		ScrapedAt:    scrapedAt,
	}
}

// ListingID derives a stable listing identifier from its URL: the last
// non-empty path segment. Re-scraping the same URL yields the same ID, which
// keeps chunk upserts idempotent.
func ListingID(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		if seg := trimmed[i+1:]; seg != "" {
			return seg
		}
	}
	return trimmed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" && v != "N/A" {
			return v
		}
	}
	return ""
}
