package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestAs(t *testing.T) {
	t.Parallel()

	cause := errors.New("gateway down")
	wrapped := fmt.Errorf("loading dashboard: %w", BadGateway(WithCause(cause)))

	got := As(wrapped)
	if got == nil {
		t.Fatal("As() = nil, want *Error")
	}
	if got.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", got.StatusCode, http.StatusBadGateway)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is(wrapped, cause) = false, want true")
	}
	if As(cause) != nil {
		t.Error("As(plain error) != nil")
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantBody       errorResponse
		wantRetryAfter string
	}{
		{
			name:       "plain error becomes internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   errorResponse{Status: 500, Message: "internal server error"},
		},
		{
			name:       "not found with message",
			err:        NotFound(WithMessage("post not found")),
			wantStatus: http.StatusNotFound,
			wantBody:   errorResponse{Status: 404, Message: "post not found"},
		},
		{
			name:       "validation carries fields",
			err:        Validation(map[string]string{"content": "required"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: errorResponse{
				Status:  422,
				Message: "unprocessable entity",
				Fields:  map[string]string{"content": "required"},
			},
		},
		{
			name:           "rate limited sets retry after",
			err:            TooManyRequests(WithRetryAfter(30*time.Second), WithReason("sync")),
			wantStatus:     http.StatusTooManyRequests,
			wantBody:       errorResponse{Status: 429, Message: "too many requests", RetryAfterSeconds: 30},
			wantRetryAfter: "30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var got errorResponse
			if err := go_json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}
		})
	}
}
