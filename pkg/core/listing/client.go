package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultAPIBaseURL = "https://gw.yad2.co.il/recommendations/items/realestate"
	listingURLFormat  = "https://www.yad2.co.il/realestate/item/%s"
)

// Browser-like headers; the API rejects obvious bots.
var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "he-IL,he;q=0.9,en-US;q=0.8,en;q=0.7",
	"Origin":          "https://www.yad2.co.il",
	"Referer":         "https://www.yad2.co.il/",
	"Connection":      "keep-alive",
}

// ClientConfig controls the API client's pacing and retry behavior.
type ClientConfig struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	MinDelay       time.Duration `yaml:"min_delay"`
	MaxDelay       time.Duration `yaml:"max_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	ResultsPerPage int           `yaml:"results_per_page"`
}

// UnmarshalYAML decodes durations from strings like "2s", which yaml.v2
// does not handle for time.Duration fields.
func (c *ClientConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		APIBaseURL     string `yaml:"api_base_url"`
		MinDelay       string `yaml:"min_delay"`
		MaxDelay       string `yaml:"max_delay"`
		RequestTimeout string `yaml:"request_timeout"`
		MaxRetries     int    `yaml:"max_retries"`
		RetryDelay     string `yaml:"retry_delay"`
		ResultsPerPage int    `yaml:"results_per_page"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	parse := func(s string, dst *time.Duration) error {
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*dst = d
		return nil
	}

	c.APIBaseURL = raw.APIBaseURL
	c.MaxRetries = raw.MaxRetries
	c.ResultsPerPage = raw.ResultsPerPage
	if err := parse(raw.MinDelay, &c.MinDelay); err != nil {
		return err
	}
	if err := parse(raw.MaxDelay, &c.MaxDelay); err != nil {
		return err
	}
	if err := parse(raw.RequestTimeout, &c.RequestTimeout); err != nil {
		return err
	}
	return parse(raw.RetryDelay, &c.RetryDelay)
}

// DefaultClientConfig returns conservative pacing suitable for polite
// scraping.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL:     defaultAPIBaseURL,
		MinDelay:       2 * time.Second,
		MaxDelay:       5 * time.Second,
		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		ResultsPerPage: 40,
	}
}

// Client talks to the yad2 recommendations API.
type Client struct {
	config ClientConfig
	http   *http.Client
	parser *Parser
}

// NewClient builds an API client from config. Zero-valued config fields
// fall back to the defaults.
func NewClient(config ClientConfig) *Client {
	def := DefaultClientConfig()
	if config.APIBaseURL == "" {
		config.APIBaseURL = def.APIBaseURL
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = def.RequestTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = def.MaxRetries
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = def.RetryDelay
	}
	if config.ResultsPerPage == 0 {
		config.ResultsPerPage = def.ResultsPerPage
	}

	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.RequestTimeout},
		parser: NewParser(),
	}
}

// BuildURL assembles the API URL for a city and 1-based page.
func (c *Client) BuildURL(cityID, page int) string {
	params := url.Values{}
	params.Set("type", "home")
	params.Set("categoryId", "2") // real estate for sale
	params.Set("subCategoriesIds", "1")
	params.Set("cityValues", strconv.Itoa(cityID))
	params.Set("count", strconv.Itoa(c.config.ResultsPerPage))
	params.Set("page", strconv.Itoa(page))
	return c.config.APIBaseURL + "?" + params.Encode()
}

// FetchListings pulls one page of listings for a city ID, retrying
// transient failures with exponential backoff.
func (c *Client) FetchListings(ctx context.Context, cityID, page int) ([]Listing, error) {
	raw, err := c.fetchJSON(ctx, c.BuildURL(cityID, page))
	if err != nil {
		return nil, err
	}

	cityName := ""
	for name, id := range CityIDs {
		if id == cityID {
			cityName = name
			break
		}
	}

	return c.parser.ParseResponse(raw, cityName), nil
}

// FetchListingsForCity is FetchListings keyed by Hebrew city name.
func (c *Client) FetchListingsForCity(ctx context.Context, city string, page int) ([]Listing, error) {
	cityID, ok := CityIDs[city]
	if !ok {
		return nil, fmt.Errorf("unknown city %q", city)
	}
	return c.FetchListings(ctx, cityID, page)
}

// FetchPages scrapes pages 1..pages for a city, throttling between requests.
// Stops early on an empty page. Returns what it has if a later page fails.
func (c *Client) FetchPages(ctx context.Context, city string, pages int) ([]Listing, error) {
	cityID, ok := CityIDs[city]
	if !ok {
		return nil, fmt.Errorf("unknown city %q", city)
	}

	var all []Listing
	for page := 1; page <= pages; page++ {
		if page > 1 {
			if err := c.Throttle(ctx); err != nil {
				return all, err
			}
		}
		batch, err := c.FetchListings(ctx, cityID, page)
		if err != nil {
			if len(all) > 0 {
				fmt.Printf("[LISTING] Page %d failed, keeping %d listings: %v\n", page, len(all), err)
				return all, nil
			}
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (c *Client) fetchJSON(ctx context.Context, requestURL string) (map[string]any, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.config.RetryDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, status, err := c.doRequest(ctx, requestURL)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case status == http.StatusOK:
			var parsed map[string]any
			if err := json.Unmarshal(body, &parsed); err != nil {
				return nil, fmt.Errorf("failed to decode API response: %w", err)
			}
			return parsed, nil
		case status == http.StatusTooManyRequests || status >= 500:
			lastErr = fmt.Errorf("API returned status %d", status)
		default:
			return nil, fmt.Errorf("API returned status %d for %s", status, requestURL)
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.config.MaxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// Throttle sleeps a random delay inside [MinDelay, MaxDelay]. Callers
// iterating pages should invoke it between requests.
func (c *Client) Throttle(ctx context.Context) error {
	if c.config.MaxDelay <= 0 {
		return nil
	}
	span := c.config.MaxDelay - c.config.MinDelay
	delay := c.config.MinDelay
	if span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
