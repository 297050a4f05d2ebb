package domain

type Headline struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Author      *string `json:"author,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	URL         string  `json:"url,omitempty"`
	SourceName  string  `json:"sourceName,omitempty"`
	PublishedAt string  `json:"publishedAt"` // as reported by the provider, usually RFC 3339
}

const (
	DefaultCountry  = "us"
	DefaultCategory = "general"
)

// Filter is the (country, category) pair a headline request is made for.
type Filter struct {
	Country  string `json:"country"`
	Category string `json:"category"`
}

func DefaultFilter() Filter {
	return Filter{Country: DefaultCountry, Category: DefaultCategory}
}

// WithCountry returns a copy of f with the country replaced.
func (f Filter) WithCountry(code string) Filter {
	f.Country = code
	return f
}

// WithCategory returns a copy of f with the category replaced.
func (f Filter) WithCategory(name string) Filter {
	f.Category = name
	return f
}
