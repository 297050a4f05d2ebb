package rss

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newstv/internal/domain"
)

const SourceID = "rss"

type Config struct {
	URLTemplate string
	Timeout     time.Duration
	UserAgent   string
}

// Source serves headlines from an RSS or Atom feed chosen per filter.
type Source struct {
	parser      *gofeed.Parser
	urlTemplate string
	logger      *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	parser.Client = &http.Client{Timeout: cfg.Timeout}

	return &Source{
		parser:      parser,
		urlTemplate: cfg.URLTemplate,
		logger:      logger.With("source", SourceID),
	}
}

func (s *Source) FetchHeadlines(ctx context.Context, country, category string) ([]domain.Headline, error) {
	feedURL := s.feedURL(country, category)

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	s.logger.Debug("fetched feed",
		"url", feedURL,
		"title", feed.Title,
		"items", len(feed.Items),
	)

	headlines := make([]domain.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		headlines = append(headlines, s.normalizeItem(feed, item))
	}
	return headlines, nil
}

func (s *Source) feedURL(country, category string) string {
	return strings.NewReplacer(
		"{country}", url.QueryEscape(strings.ToLower(country)),
		"{COUNTRY}", url.QueryEscape(strings.ToUpper(country)),
		"{category}", url.QueryEscape(strings.ToLower(category)),
		"{CATEGORY}", url.QueryEscape(strings.ToUpper(category)),
	).Replace(s.urlTemplate)
}

func (s *Source) normalizeItem(feed *gofeed.Feed, item *gofeed.Item) domain.Headline {
	headline := domain.Headline{
		Title:       strings.TrimSpace(item.Title),
		URL:         item.Link,
		SourceName:  feed.Title,
		PublishedAt: cmp.Or(item.Published, item.Updated),
	}

	if item.PublishedParsed != nil {
		headline.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.UpdatedParsed != nil {
		headline.PublishedAt = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	if desc := strings.TrimSpace(item.Description); desc != "" {
		headline.Description = &desc
	}

	if len(item.Authors) > 0 && item.Authors[0] != nil && item.Authors[0].Name != "" {
		name := item.Authors[0].Name
		headline.Author = &name
	}

	if image := itemImage(item); image != "" {
		headline.ImageURL = &image
	}

	return headline
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}
