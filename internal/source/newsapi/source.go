package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newstv/internal/domain"
)

const SourceID = "newsapi"

var ErrMissingAPIKey = errors.New("newsapi: api key is not configured")

// Config holds NewsAPI source configuration.
type Config struct {
	BaseURL   string
	APIKey    string
	PageSize  int
	Timeout   time.Duration
	UserAgent string
}

// APIError is returned when NewsAPI answers with status "error".
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("newsapi: unexpected status: %d", e.StatusCode)
	}
	return fmt.Sprintf("newsapi: %s: %s", e.Code, e.Message)
}

// Source fetches top headlines from newsapi.org.
type Source struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	userAgent  string
	logger     *slog.Logger
}

// New creates a new NewsAPI source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		pageSize:  cfg.PageSize,
		userAgent: cfg.UserAgent,
		logger:    logger.With("source", SourceID),
	}
}

// FetchHeadlines fetches top headlines for a country and category.
func (s *Source) FetchHeadlines(ctx context.Context, country, category string) ([]domain.Headline, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := s.doRequest(ctx, s.buildURL(country, category))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched headlines",
		"country", country,
		"category", category,
		"articles", len(resp.Articles),
		"total", resp.TotalResults,
	)

	return s.transform(resp.Articles), nil
}

func (s *Source) buildURL(country, category string) string {
	query := url.Values{}
	query.Set("country", country)
	query.Set("category", category)
	if s.pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(s.pageSize))
	}
	query.Set("apiKey", s.apiKey)

	return s.baseURL + "top-headlines?" + query.Encode()
}

func (s *Source) doRequest(ctx context.Context, url string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", redactKey(err, s.apiKey))
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&apiResp)

	if resp.StatusCode != http.StatusOK || apiResp.Status == "error" {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       apiResp.Code,
			Message:    apiResp.Message,
		}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	return &apiResp, nil
}

func (s *Source) transform(articles []Article) []domain.Headline {
	headlines := make([]domain.Headline, 0, len(articles))

	for _, a := range articles {
		headlines = append(headlines, domain.Headline{
			Title:       a.Title,
			Description: a.Description,
			Author:      a.Author,
			ImageURL:    a.URLToImage,
			URL:         a.URL,
			SourceName:  a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}

	return headlines
}

// redactKey strips the api key from transport errors, which quote the request URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
