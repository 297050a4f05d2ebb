package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"newstv/internal/config"
	"newstv/internal/controller"
	"newstv/internal/domain"
)

type HandlerTestSuite struct {
	suite.Suite

	controller *controller.Controller
	engine     *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	provider := controller.ProviderFunc(func(ctx context.Context, country, category string) ([]domain.Headline, error) {
		if country == "xx" {
			return nil, fmt.Errorf("unsupported country %q", country)
		}
		return []domain.Headline{{
			Title:       country + " " + category,
			PublishedAt: "2024-05-06T08:30:00Z",
		}}, nil
	})

	s.controller = controller.New(provider, logger, config.HeadlinesConfig{})
	s.engine = NewServer(NewHandler(s.controller, logger), logger)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.controller.Close()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) getState() StateResponse {
	w := s.do(http.MethodGet, "/api/v1/state", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var resp StateResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerTestSuite) waitForKind(kind string) StateResponse {
	var resp StateResponse
	s.Require().Eventually(func() bool {
		resp = s.getState()
		return resp.State.Kind == kind
	}, 2*time.Second, 5*time.Millisecond)
	return resp
}

func (s *HandlerTestSuite) TestHealthCheck() {
	w := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}

func (s *HandlerTestSuite) TestGetState_InitialFetch() {
	resp := s.waitForKind(domain.KindSuccess)

	s.Equal(domain.DefaultFilter(), resp.Filter)
	s.Require().Len(resp.State.Headlines, 1)
	s.Equal("us general", resp.State.Headlines[0].Title)
}

func (s *HandlerTestSuite) TestSetCountry() {
	s.waitForKind(domain.KindSuccess)

	w := s.do(http.MethodPost, "/api/v1/country", `{"code":"gb"}`)
	s.Equal(http.StatusAccepted, w.Code)
	s.Contains(w.Body.String(), `"country":"gb"`)

	s.Require().Eventually(func() bool {
		resp := s.getState()
		return resp.State.Kind == domain.KindSuccess &&
			len(resp.State.Headlines) == 1 &&
			resp.State.Headlines[0].Title == "gb general"
	}, 2*time.Second, 5*time.Millisecond)
}

func (s *HandlerTestSuite) TestSetCategory() {
	w := s.do(http.MethodPost, "/api/v1/category", `{"name":"sports"}`)
	s.Equal(http.StatusAccepted, w.Code)

	s.Require().Eventually(func() bool {
		resp := s.getState()
		return resp.State.Kind == domain.KindSuccess &&
			len(resp.State.Headlines) == 1 &&
			resp.State.Headlines[0].Title == "us sports"
	}, 2*time.Second, 5*time.Millisecond)
}

func (s *HandlerTestSuite) TestSetCountry_ProviderErrorIsReported() {
	w := s.do(http.MethodPost, "/api/v1/country", `{"code":"xx"}`)
	s.Equal(http.StatusAccepted, w.Code)

	resp := s.waitForKind(domain.KindError)
	s.Equal(`unsupported country "xx"`, resp.State.Message)
	s.Nil(resp.State.Headlines)
}

func (s *HandlerTestSuite) TestReload() {
	s.waitForKind(domain.KindSuccess)

	w := s.do(http.MethodPost, "/api/v1/reload", "")
	s.Equal(http.StatusAccepted, w.Code)

	s.waitForKind(domain.KindSuccess)
}

func (s *HandlerTestSuite) TestBadRequests() {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "malformed country", path: "/api/v1/country", body: `{"code":`},
		{name: "missing country code", path: "/api/v1/country", body: `{}`},
		{name: "malformed category", path: "/api/v1/category", body: `not json`},
		{name: "missing category name", path: "/api/v1/category", body: `{"code":"gb"}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, tt.path, tt.body)

			s.Equal(http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			s.NotEmpty(resp.Error)
		})
	}

	s.Equal(domain.DefaultFilter(), s.controller.Filter())
}

func (s *HandlerTestSuite) TestGetCatalog() {
	w := s.do(http.MethodGet, "/api/v1/catalog", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var resp CatalogResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Countries, 5)
	s.Len(resp.Categories, 7)
	s.Equal("gb", resp.Countries[1].Code)
}

func (s *HandlerTestSuite) TestNotFound() {
	w := s.do(http.MethodGet, "/nope", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestMetrics() {
	s.do(http.MethodGet, "/health", "")

	w := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "newstv_http_requests_total")
}

func (s *HandlerTestSuite) TestStreamState() {
	server := httptest.NewServer(s.engine)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/state/stream", nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	events := make(chan StateResponse)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			data, ok := strings.CutPrefix(scanner.Text(), "data:")
			if !ok {
				continue
			}
			var ev StateResponse
			if json.Unmarshal([]byte(data), &ev) == nil {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	// The stream replays the current state first.
	first, ok := <-events
	s.Require().True(ok)
	s.NotEmpty(first.State.Kind)

	s.controller.SetCategory("science")

	for {
		select {
		case ev, ok := <-events:
			s.Require().True(ok, "stream ended early")
			if ev.State.Kind != domain.KindSuccess || len(ev.State.Headlines) != 1 {
				continue
			}
			// Headlines always arrive with the filter they were fetched for.
			s.Equal(ev.Filter.Country+" "+ev.Filter.Category, ev.State.Headlines[0].Title)
			if ev.State.Headlines[0].Title == "us science" {
				return
			}
		case <-ctx.Done():
			s.Fail("timed out waiting for science headlines")
			return
		}
	}
}
