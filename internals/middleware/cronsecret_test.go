package middle

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCronSecret(t *testing.T) {
	const secret = "s3cret"

	var reached bool
	handler := CronSecret(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantPass   bool
	}{
		{"valid secret", "s3cret", http.StatusOK, true},
		{"wrong secret", "nope", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false

			req := httptest.NewRequest(http.MethodGet, "/cron/run", nil)
			if tt.header != "" {
				req.Header.Set("x-cron-secret", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if reached != tt.wantPass {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantPass)
			}
		})
	}
}
