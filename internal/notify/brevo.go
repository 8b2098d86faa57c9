package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BrevoSender delivers e-mail through the Brevo transactional API.
type BrevoSender struct {
	apiURL string
	apiKey string
	from   Recipient
	client *http.Client
}

func NewBrevoSender(apiURL, apiKey string, from Recipient, client *http.Client) *BrevoSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &BrevoSender{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: client,
	}
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (s *BrevoSender) Send(ctx context.Context, to Recipient, kind TemplateKind, payload any) error {
	if to.Email == "" {
		return fmt.Errorf("brevo: empty recipient")
	}

	subject, html, err := Render(kind, payload)
	if err != nil {
		return err
	}

	body, err := json.Marshal(brevoEmail{
		Sender:      brevoContact{Name: s.from.Name, Email: s.from.Email},
		To:          []brevoContact{{Name: to.Name, Email: to.Email}},
		Subject:     subject,
		HTMLContent: html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	return nil
}
