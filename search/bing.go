package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultEndpoint = "https://api.bing.microsoft.com/v7.0/search"
	DefaultMarket   = "en-US"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

// ErrNoResults is returned when the response carries no web pages.
var ErrNoResults = errors.New("search returned no web pages")

// Config holds the search API credentials.
type Config struct {
	APIKey   string
	Endpoint string
	Market   string
}

// Result is one web page hit.
type Result struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// APIError reports a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("search api: status %d: %s %s", e.StatusCode, e.Code, e.Message)
}

type searchResp struct {
	WebPages *struct {
		Value []Result `json:"value"`
	} `json:"webPages"`
}

type apiErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Bing reports errors as an "errors" list; the gateway in front of it uses a single "error".
type errorResp struct {
	Error  *apiErrorDetail  `json:"error"`
	Errors []apiErrorDetail `json:"errors"`
}

// Client calls the Bing web search endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config, client *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("bing api key missing; pass --bing-api-key or set BING_API_KEY")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Market == "" {
		cfg.Market = DefaultMarket
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{cfg: cfg, client: client}, nil
}

// Search returns at most topK web results for query.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(subscriptionKeyHeader, c.cfg.APIKey)
	q := req.URL.Query()
	q.Set("q", query)
	q.Set("mkt", c.cfg.Market)
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		var data errorResp
		if json.Unmarshal(body, &data) == nil {
			switch {
			case data.Error != nil:
				apiErr.Code, apiErr.Message = data.Error.Code, data.Error.Message
			case len(data.Errors) > 0:
				apiErr.Code, apiErr.Message = data.Errors[0].Code, data.Errors[0].Message
			}
		}
		return nil, apiErr
	}

	var data searchResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.WebPages == nil || len(data.WebPages.Value) == 0 {
		return nil, ErrNoResults
	}
	results := data.WebPages.Value
	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
