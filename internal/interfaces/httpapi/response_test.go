package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/turugol/quiniela/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_Categories(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{name: "duplicate entry", err: fmt.Errorf("%w: user", usecase.ErrDuplicateEntry), wantCode: http.StatusConflict, wantStatus: "ALREADY_EXISTS"},
		{name: "submissions closed", err: usecase.ErrSubmissionsClosed, wantCode: http.StatusConflict, wantStatus: "FAILED_PRECONDITION"},
		{name: "incomplete selection", err: usecase.ErrIncompleteSelection, wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "minimum leagues", err: fmt.Errorf("%w: league 262", usecase.ErrMinimumLeagues), wantCode: http.StatusConflict, wantStatus: "ABORTED"},
		{name: "not found", err: fmt.Errorf("%w: pool x", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{name: "unknown", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err)
			if mapped.HTTPStatus != tt.wantCode {
				t.Fatalf("unexpected status code: got %d want %d", mapped.HTTPStatus, tt.wantCode)
			}
			if mapped.Status != tt.wantStatus {
				t.Fatalf("unexpected status: got %s want %s", mapped.Status, tt.wantStatus)
			}
		})
	}
}
