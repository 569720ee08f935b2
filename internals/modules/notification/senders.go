package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSenders posts to slack and custom webhook endpoints.
type HTTPSenders struct {
	client *http.Client
}

func NewHTTPSenders(client *http.Client) *HTTPSenders {
	return &HTTPSenders{client: client}
}

func (s *HTTPSenders) SendSlack(ctx context.Context, webhookURL, text string) error {
	return s.post(ctx, webhookURL, map[string]string{"text": text})
}

func (s *HTTPSenders) SendWebhook(ctx context.Context, webhookURL string, payload any) error {
	return s.post(ctx, webhookURL, payload)
}

func (s *HTTPSenders) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
