package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoClient sends through the Brevo transactional email API.
type BrevoClient struct {
	apiKey     string
	sender     brevoContact
	sandbox    bool
	endpoint   string
	httpClient *http.Client
}

// NewBrevoClient returns nil when the API key or sender address is missing;
// callers treat a nil client as "email disabled".
func NewBrevoClient(apiKey, senderEmail, senderName string, sandbox bool) *BrevoClient {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(senderEmail) == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &BrevoClient{
		apiKey:     apiKey,
		sender:     brevoContact{Name: senderName, Email: senderEmail},
		sandbox:    sandbox,
		endpoint:   defaultBrevoEndpoint,
		httpClient: &http.Client{Timeout: sendTimeout},
	}
}

// Message is a single transactional HTML email. Tag groups messages of the
// same kind in Brevo's statistics.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
	Tag     string
}

func (m Message) validate() error {
	switch {
	case strings.TrimSpace(m.ToEmail) == "":
		return errors.New("missing recipient email")
	case strings.TrimSpace(m.Subject) == "":
		return errors.New("missing subject")
	case strings.TrimSpace(m.HTML) == "":
		return errors.New("missing html body")
	}
	return nil
}

// BrevoError is a non-2xx answer from the API.
type BrevoError struct {
	Status  int
	Code    string
	Message string
}

func (e *BrevoError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("brevo: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("brevo: status %d: %s: %s", e.Status, e.Code, e.Message)
}

// Send posts the message to Brevo and returns the provider message id.
func (c *BrevoClient) Send(ctx context.Context, msg Message) (string, error) {
	if c == nil {
		return "", errors.New("brevo client is nil")
	}
	if err := msg.validate(); err != nil {
		return "", err
	}

	raw, err := json.Marshal(c.request(msg))
	if err != nil {
		return "", fmt.Errorf("brevo marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("brevo create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	if err != nil {
		return "", fmt.Errorf("brevo read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		apiErr := &BrevoError{Status: resp.StatusCode}
		if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return "", apiErr
	}

	var out struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("brevo decode response: %w", err)
	}
	if out.MessageID == "" {
		return "", errors.New("brevo response missing messageId")
	}
	return out.MessageID, nil
}

func (c *BrevoClient) request(msg Message) brevoSendRequest {
	payload := brevoSendRequest{
		Sender:      c.sender,
		ReplyTo:     c.sender,
		To:          []brevoContact{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	if msg.Tag != "" {
		payload.Tags = []string{msg.Tag}
	}
	if c.sandbox {
		// Brevo validates the request but never delivers it.
		payload.Headers = map[string]string{"X-Sib-Sandbox": "drop"}
	}
	return payload
}

type brevoSendRequest struct {
	Sender      brevoContact      `json:"sender"`
	ReplyTo     brevoContact      `json:"replyTo"`
	To          []brevoContact    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Tags        []string          `json:"tags,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
