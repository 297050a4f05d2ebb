package domain

const (
	KindLoading = "loading"
	KindSuccess = "success"
	KindError   = "error"
)

// ViewState is what the presentation layer should currently render.
// The only implementations are Loading, Success and Error.
type ViewState interface {
	Kind() string
	viewState()
}

type Loading struct{}

// Success carries the headlines of a completed fetch. An empty slice is a valid result.
type Success struct {
	Headlines []Headline
}

// Error carries a human readable description of a failed fetch.
type Error struct {
	Message string
}

func (Loading) Kind() string { return KindLoading }
func (Success) Kind() string { return KindSuccess }
func (Error) Kind() string   { return KindError }

func (Loading) viewState() {}
func (Success) viewState() {}
func (Error) viewState()   {}

// Snapshot pairs a view state with the filter it was produced for.
type Snapshot struct {
	Filter Filter
	State  ViewState
}
