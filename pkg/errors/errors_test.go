package errors

import (
	goerrors "errors"
	"strings"
	"testing"
)

func TestAPIErrorMessageIncludesCause(t *testing.T) {
	cause := goerrors.New("connection refused")
	err := NewGenerationError(cause)

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !goerrors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}
}

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		name       string
		err        *APIError
		wantCode   string
		wantStatus int
	}{
		{"invalid request", NewInvalidRequest("genre is required"), CodeInvalidRequest, 400},
		{"generation backend", NewGenerationError(goerrors.New("boom")), CodeGenerationBackend, 500},
		{"malformed output", NewMalformedOutput(goerrors.New("not an array"), "raw"), CodeMalformedGeneration, 500},
		{"catalog unconfigured", NewCatalogUnconfigured(), CodeCatalogUnconfigured, 500},
		{"no matches", NewNoMatches(20), CodeNoCatalogMatches, 404},
	}

	for _, tc := range cases {
		if tc.err.Code != tc.wantCode {
			t.Errorf("%s: expected code %s, got %s", tc.name, tc.wantCode, tc.err.Code)
		}
		if tc.err.StatusCode != tc.wantStatus {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.wantStatus, tc.err.StatusCode)
		}
	}
}

func TestMalformedOutputCarriesRawResponse(t *testing.T) {
	raw := "Sure! Here are some movies you might like..."
	err := NewMalformedOutput(goerrors.New("not a JSON array"), raw)

	if err.Context["response"] != raw {
		t.Errorf("expected raw response in context, got %v", err.Context)
	}
	if err.Context["details"] != "not a JSON array" {
		t.Errorf("expected details in context, got %v", err.Context)
	}
}

func TestNoMatchesReportsCandidateCount(t *testing.T) {
	err := NewNoMatches(7)
	details, _ := err.Context["details"].(string)
	if !strings.Contains(details, "7") {
		t.Errorf("expected candidate count in details, got %q", details)
	}
}

func TestWithCause(t *testing.T) {
	cause := goerrors.New("circuit open")
	err := NewCatalogUnconfigured().WithCause(cause)
	if !goerrors.Is(err, cause) {
		t.Error("expected WithCause to wire Unwrap")
	}
}
