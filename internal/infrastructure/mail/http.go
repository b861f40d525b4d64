package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

// HTTPMailer sends templated mail through a provider's JSON API
// (sendgrid-compatible payload shape).
type HTTPMailer struct {
	client    *http.Client
	url       string
	apiKey    string
	from      string
	templates map[ports.MailKind]string
}

// HTTPMailerOption configures HTTPMailer.
type HTTPMailerOption func(*HTTPMailer)

// WithClient sets the HTTP client (default: 10s timeout).
func WithClient(c *http.Client) HTTPMailerOption {
	return func(m *HTTPMailer) {
		m.client = c
	}
}

// WithTemplate maps a mail kind to a provider template ID.
func WithTemplate(kind ports.MailKind, templateID string) HTTPMailerOption {
	return func(m *HTTPMailer) {
		m.templates[kind] = templateID
	}
}

// NewHTTPMailer returns a Mailer that POSTs messages as JSON to url,
// authenticated with a bearer API key.
func NewHTTPMailer(url, apiKey, from string, opts ...HTTPMailerOption) *HTTPMailer {
	m := &HTTPMailer{
		client:    &http.Client{Timeout: 10 * time.Second},
		url:       url,
		apiKey:    apiKey,
		from:      from,
		templates: make(map[ports.MailKind]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type mailPayload struct {
	From             mailAddress           `json:"from"`
	TemplateID       string                `json:"template_id,omitempty"`
	Personalizations []mailPersonalization `json:"personalizations"`
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailPersonalization struct {
	To           []mailAddress  `json:"to"`
	TemplateData map[string]any `json:"dynamic_template_data"`
}

// Send implements ports.Mailer.
func (m *HTTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	payload := mailPayload{
		From:       mailAddress{Email: m.from},
		TemplateID: m.templates[msg.Kind],
		Personalizations: []mailPersonalization{{
			To: []mailAddress{{Email: msg.To}},
			TemplateData: map[string]any{
				"name": msg.Name,
				"link": msg.Link,
				"date": time.Now().Format("02/01/2006"),
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &sendError{status: resp.StatusCode}
	}
	return nil
}

type sendError struct {
	status int
}

func (e *sendError) Error() string {
	return fmt.Sprintf("mail provider returned status %d", e.status)
}

var _ ports.Mailer = (*HTTPMailer)(nil)
