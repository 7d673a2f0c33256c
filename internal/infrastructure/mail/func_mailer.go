// Package mail implements the Mailer port. Production delivery goes through
// the hosted email function over HTTPS; development uses the log mailer.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/innstack/hotel-ops/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// FuncMailer delivers mail by POSTing to the hosted email function.
type FuncMailer struct {
	url    string
	apiKey string
	client *http.Client
}

func NewFuncMailer(url, apiKey string) *FuncMailer {
	return &FuncMailer{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: defaultRequestTimeout},
	}
}

type funcPayload struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Token   string `json:"token,omitempty"`
	HotelID string `json:"hotel_id,omitempty"`
}

func (m *FuncMailer) Send(ctx context.Context, job ports.MailJob) error {
	body, err := json.Marshal(funcPayload{
		Kind:    string(job.Kind),
		To:      job.To,
		Token:   job.Token,
		HotelID: job.HotelID,
	})
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("invoke email function: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email function returned %d", resp.StatusCode)
	}
	return nil
}
