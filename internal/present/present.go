// Package present turns view states into text for the console viewer.
package present

import (
	"fmt"
	"io"
	"strings"
	"time"

	"newstv/internal/catalog"
	"newstv/internal/domain"
)

const (
	// RemovedTitle marks articles the news source has withdrawn.
	RemovedTitle = "[Removed]"

	EmptyMessage = "No news headlines found for this combination of news category and country, " +
		"please try some other combination..."

	dateLayout = "02-01-2006 15:04:05"
)

// FormatPublishedAt reformats an ISO-8601 timestamp as dd-MM-yyyy HH:mm:ss,
// keeping the timestamp's own offset.
func FormatPublishedAt(value string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return "", fmt.Errorf("parse published date: %w", err)
	}
	return t.Format(dateLayout), nil
}

// Visible drops headlines that should not be shown.
func Visible(headlines []domain.Headline) []domain.Headline {
	out := make([]domain.Headline, 0, len(headlines))
	for _, h := range headlines {
		if h.Title == RemovedTitle || strings.TrimSpace(h.Title) == "" {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Header describes the current filter, e.g. "NewsTV | United Kingdom | Sports".
func Header(filter domain.Filter) string {
	return fmt.Sprintf("NewsTV | %s | %s",
		catalog.CountryName(filter.Country),
		catalog.CategoryLabel(filter.Category),
	)
}

// Render writes a text rendering of state to w.
func Render(w io.Writer, filter domain.Filter, state domain.ViewState) error {
	var b strings.Builder
	b.WriteString(Header(filter))
	b.WriteString("\n\n")

	switch st := state.(type) {
	case domain.Loading:
		b.WriteString("Loading headlines...\n")
	case domain.Success:
		renderHeadlines(&b, Visible(st.Headlines))
	case domain.Error:
		fmt.Fprintf(&b, "Error: %s\n", st.Message)
		b.WriteString("Type \"reload\" to retry.\n")
	default:
		return fmt.Errorf("unknown view state %T", state)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderHeadlines(b *strings.Builder, headlines []domain.Headline) {
	if len(headlines) == 0 {
		b.WriteString(EmptyMessage)
		b.WriteString("\n")
		return
	}

	for i, h := range headlines {
		fmt.Fprintf(b, "%2d. %s\n", i+1, h.Title)
		if h.Description != nil && *h.Description != "" {
			fmt.Fprintf(b, "    %s\n", *h.Description)
		}

		published := h.PublishedAt
		if formatted, err := FormatPublishedAt(h.PublishedAt); err == nil {
			published = formatted
		}
		fmt.Fprintf(b, "    Published at: %s", published)
		if h.Author != nil && strings.TrimSpace(*h.Author) != "" {
			fmt.Fprintf(b, "  Authored by: %s", *h.Author)
		}
		b.WriteString("\n")
	}
}
