package driven

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		code    int
		wantMsg string
	}{
		{code: 404, wantMsg: "HTTP 404: Not Found"},
		{code: 503, wantMsg: "HTTP 503: Service Unavailable"},
		{code: 599, wantMsg: "HTTP 599: Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			err := fmt.Errorf("fetching playlist: %w", NewStatusError(tt.code))

			if !errors.Is(err, ErrHTTPStatus) {
				t.Error("expected error to match ErrHTTPStatus")
			}
			if errors.Is(err, ErrNetwork) {
				t.Error("status error must not match ErrNetwork")
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatal("expected errors.As to find a StatusError")
			}
			if statusErr.Code != tt.code {
				t.Errorf("Code = %d, want %d", statusErr.Code, tt.code)
			}
			if statusErr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", statusErr.Error(), tt.wantMsg)
			}
		})
	}
}
