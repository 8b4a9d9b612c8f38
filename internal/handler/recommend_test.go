package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/domain"
	"github.com/kapu/cinepick-go/internal/util"
	apperrors "github.com/kapu/cinepick-go/pkg/errors"
)

type fakeRecommender struct {
	movies []domain.EnrichedMovie
	err    error
	req    *domain.RecommendationRequest
}

func (f *fakeRecommender) Recommend(_ context.Context, req *domain.RecommendationRequest) ([]domain.EnrichedMovie, error) {
	f.req = req
	return f.movies, f.err
}

type fakeCircuit struct {
	status util.CircuitBreakerStatus
}

func (f *fakeCircuit) GetCircuitStatus() util.CircuitBreakerStatus {
	return f.status
}

func newTestApp(svc *fakeRecommender) *fiber.App {
	circuit := &fakeCircuit{status: util.CircuitBreakerStatus{State: util.CircuitStateClosed}}
	h := NewRecommendationHandler(svc, circuit, zap.NewNop())
	app := fiber.New()
	app.Get("/health", h.Health)
	app.Post("/api/recommendations", h.Recommend)
	return app
}

func post(app *fiber.App, body string) (int, map[string]any) {
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestRecommendEndpointSuccess(t *testing.T) {
	svc := &fakeRecommender{
		movies: []domain.EnrichedMovie{
			{CatalogMatch: domain.CatalogMatch{ID: 603, Title: "The Matrix"}, Status: "Released"},
			{CatalogMatch: domain.CatalogMatch{ID: 27205, Title: "Inception"}, Status: "Released"},
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/recommendations",
		strings.NewReader(`{"genre":"sci-fi","language":"en-US","userId":"u1","savePreferences":true}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var movies []domain.EnrichedMovie
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(movies) != 2 || movies[0].ID != 603 || movies[1].Title != "Inception" {
		t.Fatalf("unexpected body: %+v", movies)
	}

	if svc.req == nil || svc.req.Genre != "sci-fi" || !svc.req.SavePreferences {
		t.Fatalf("request not bound correctly: %+v", svc.req)
	}
}

func TestRecommendEndpointMapsErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        *apperrors.APIError
		wantStatus int
	}{
		{"invalid request", apperrors.NewInvalidRequest("genre is required"), 400},
		{"generation failure", apperrors.NewGenerationError(errContaining("backend down")), 500},
		{"no matches", apperrors.NewNoMatches(20), 404},
		{"catalog unconfigured", apperrors.NewCatalogUnconfigured(), 500},
	}

	for _, tc := range cases {
		app := newTestApp(&fakeRecommender{err: tc.err})
		status, body := post(app, `{"genre":"comedy"}`)

		if status != tc.wantStatus {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.wantStatus, status)
		}
		if body["error"] == nil {
			t.Errorf("%s: expected error field in body: %v", tc.name, body)
		}
	}
}

func TestRecommendEndpointIncludesRawResponseForMalformedOutput(t *testing.T) {
	raw := "I'd suggest watching something fun!"
	app := newTestApp(&fakeRecommender{
		err: apperrors.NewMalformedOutput(errContaining("not a JSON array"), raw),
	})

	status, body := post(app, `{"genre":"comedy"}`)

	if status != 500 {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["response"] != raw {
		t.Fatalf("expected raw model text in body, got %v", body)
	}
	if body["details"] == nil {
		t.Fatalf("expected details in body, got %v", body)
	}
}

func TestRecommendEndpointRejectsInvalidJSON(t *testing.T) {
	app := newTestApp(&fakeRecommender{})

	status, body := post(app, `{"genre": `)

	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] == nil {
		t.Fatalf("expected error field, got %v", body)
	}
}

func TestHealthEndpointReportsCircuitState(t *testing.T) {
	circuit := &fakeCircuit{status: util.CircuitBreakerStatus{
		State:        util.CircuitStateOpen,
		FailureCount: 3,
	}}
	h := NewRecommendationHandler(&fakeRecommender{}, circuit, zap.NewNop())
	app := fiber.New()
	app.Get("/health", h.Health)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	generation, ok := body["generation"].(map[string]any)
	if !ok {
		t.Fatalf("expected generation section, got %v", body)
	}
	if generation["circuit"] != "OPEN" {
		t.Errorf("expected circuit OPEN, got %v", generation["circuit"])
	}
	if generation["failures"] != float64(3) {
		t.Errorf("expected 3 failures, got %v", generation["failures"])
	}
}

type stringError string

func (e stringError) Error() string { return string(e) }

func errContaining(msg string) error { return stringError(msg) }
