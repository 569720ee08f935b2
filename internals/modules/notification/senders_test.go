package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendSlackPostsTextPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
	}))
	defer srv.Close()

	s := NewHTTPSenders(srv.Client())
	if err := s.SendSlack(context.Background(), srv.URL, "monitor api is down"); err != nil {
		t.Fatalf("SendSlack: %v", err)
	}
	if got["text"] != "monitor api is down" {
		t.Errorf("text = %q", got["text"])
	}
}

func TestSendWebhookRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewHTTPSenders(srv.Client())
	err := s.SendWebhook(context.Background(), srv.URL, map[string]string{"k": "v"})
	if err == nil {
		t.Fatal("want error for 502 response")
	}
}
