package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/domain"
	"github.com/kapu/cinepick-go/internal/service/ai"
	apperrors "github.com/kapu/cinepick-go/pkg/errors"
)

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ ai.ModelPreset, _ *ai.GenerateOptions) (string, *ai.GenerateMetadata, error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	return f.text, &ai.GenerateMetadata{Provider: "Gemini", Model: "test-model"}, nil
}

type fakeResolver struct {
	matches []domain.CatalogMatch
	titles  []string
}

func (f *fakeResolver) ResolveAll(_ context.Context, titles []string, _ string) []domain.CatalogMatch {
	f.titles = titles
	return f.matches
}

type fakeEnricher struct {
	received []domain.CatalogMatch
}

func (f *fakeEnricher) EnrichAll(_ context.Context, matches []domain.CatalogMatch, _ *domain.RecommendationRequest) []domain.EnrichedMovie {
	f.received = matches
	movies := make([]domain.EnrichedMovie, len(matches))
	for i, match := range matches {
		movies[i] = domain.EnrichedMovie{CatalogMatch: match, Status: "Released"}
	}
	return movies
}

type fakePrefWriter struct {
	err   error
	calls chan string
}

func (f *fakePrefWriter) UpsertPreferences(_ context.Context, userID, _, _, _ string) error {
	if f.calls != nil {
		f.calls <- userID
	}
	return f.err
}

func codeOf(t *testing.T, err error) *apperrors.APIError {
	t.Helper()
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	return apiErr
}

func TestRecommendRejectsMissingGenre(t *testing.T) {
	generator := &fakeGenerator{}
	svc := NewRecommendationService(generator, &fakeResolver{}, &fakeEnricher{}, nil, zap.NewNop())

	_, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{Genre: "  "})

	apiErr := codeOf(t, err)
	if apiErr.Code != apperrors.CodeInvalidRequest || apiErr.StatusCode != 400 {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if generator.calls != 0 {
		t.Fatal("no external calls may happen for an invalid request")
	}
}

func TestRecommendReportsGenerationBackendFailure(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("backend down")}
	svc := NewRecommendationService(generator, &fakeResolver{}, &fakeEnricher{}, nil, zap.NewNop())

	_, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{Genre: "comedy"})

	apiErr := codeOf(t, err)
	if apiErr.Code != apperrors.CodeGenerationBackend || apiErr.StatusCode != 500 {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if apiErr.Context["details"] == nil {
		t.Fatal("expected failure details in context")
	}
}

func TestRecommendReportsMalformedOutputWithRawText(t *testing.T) {
	raw := "Sorry, I cannot help with that."
	generator := &fakeGenerator{text: raw}
	svc := NewRecommendationService(generator, &fakeResolver{}, &fakeEnricher{}, nil, zap.NewNop())

	_, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{Genre: "comedy"})

	apiErr := codeOf(t, err)
	if apiErr.Code != apperrors.CodeMalformedGeneration {
		t.Fatalf("unexpected code: %s", apiErr.Code)
	}
	if apiErr.Context["response"] != raw {
		t.Fatalf("raw model text must ride along: %+v", apiErr.Context)
	}
}

func TestRecommendReportsUnconfiguredCatalog(t *testing.T) {
	generator := &fakeGenerator{text: `["Heat"]`}
	svc := NewRecommendationService(generator, nil, nil, nil, zap.NewNop())

	_, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{Genre: "crime"})

	apiErr := codeOf(t, err)
	if apiErr.Code != apperrors.CodeCatalogUnconfigured || apiErr.StatusCode != 500 {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestRecommendReportsNoMatchesAsNotFound(t *testing.T) {
	generator := &fakeGenerator{text: `["Heat", "Dune"]`}
	svc := NewRecommendationService(generator, &fakeResolver{}, &fakeEnricher{}, nil, zap.NewNop())

	_, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{Genre: "crime"})

	apiErr := codeOf(t, err)
	if apiErr.Code != apperrors.CodeNoCatalogMatches || apiErr.StatusCode != 404 {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestRecommendHappyPath(t *testing.T) {
	generator := &fakeGenerator{text: "```json\n[\"Heat\", \"Dune\", \"Alien\"]\n```"}
	resolver := &fakeResolver{
		matches: []domain.CatalogMatch{
			{ID: 1, Title: "Heat"},
			{ID: 3, Title: "Alien"},
		},
	}
	enricher := &fakeEnricher{}
	svc := NewRecommendationService(generator, resolver, enricher, nil, zap.NewNop())

	movies, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{Genre: "crime", Language: "en-US"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolver.titles) != 3 || resolver.titles[0] != "Heat" {
		t.Fatalf("resolver did not receive the extracted titles: %v", resolver.titles)
	}
	if len(enricher.received) != 2 {
		t.Fatalf("enricher must only see resolved matches: %+v", enricher.received)
	}
	if len(movies) != 2 || movies[0].ID != 1 || movies[1].ID != 3 {
		t.Fatalf("unexpected result: %+v", movies)
	}
}

func TestRecommendPreferenceWriteIsBestEffort(t *testing.T) {
	generator := &fakeGenerator{text: `["Heat"]`}
	resolver := &fakeResolver{matches: []domain.CatalogMatch{{ID: 1, Title: "Heat"}}}
	prefs := &fakePrefWriter{err: fmt.Errorf("db down"), calls: make(chan string, 1)}
	svc := NewRecommendationService(generator, resolver, &fakeEnricher{}, prefs, zap.NewNop())

	movies, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{
		Genre:           "crime",
		UserID:          "user-7",
		SavePreferences: true,
	})
	if err != nil {
		t.Fatalf("preference write failure must not fail the request: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("unexpected result: %+v", movies)
	}

	select {
	case userID := <-prefs.calls:
		if userID != "user-7" {
			t.Fatalf("unexpected user: %s", userID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a preference write attempt")
	}
}

func TestRecommendSkipsPreferenceWriteWhenNotRequested(t *testing.T) {
	generator := &fakeGenerator{text: `["Heat"]`}
	resolver := &fakeResolver{matches: []domain.CatalogMatch{{ID: 1, Title: "Heat"}}}
	prefs := &fakePrefWriter{calls: make(chan string, 1)}
	svc := NewRecommendationService(generator, resolver, &fakeEnricher{}, prefs, zap.NewNop())

	// userId present but savePreferences false
	if _, err := svc.Recommend(context.Background(), &domain.RecommendationRequest{
		Genre:  "crime",
		UserID: "user-7",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-prefs.calls:
		t.Fatal("no preference write expected")
	case <-time.After(100 * time.Millisecond):
	}
}
