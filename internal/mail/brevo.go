package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"text/template"
	"time"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

var verifyTemplate = template.Must(template.New("verify").Parse(
	`<p>Welcome! Confirm your email address by opening the link below.</p>
<p><a href="{{.URL}}">Verify email</a></p>
<p>The link is valid for 24 hours.</p>`))

var resetTemplate = template.Must(template.New("reset").Parse(
	`<p>A password reset was requested for your account.</p>
<p><a href="{{.URL}}">Reset password</a></p>
<p>The link is valid for 1 hour. If you did not request this, ignore this email.</p>`))

// BrevoClient sends transactional email through the Brevo HTTP API.
// An unconfigured client logs and skips sends instead of failing, so the
// service stays usable in local development without an API key.
type BrevoClient struct {
	apiKey     string
	fromEmail  string
	fromName   string
	baseURL    string
	httpClient *http.Client
	configured bool
}

func NewBrevoClient(apiKey, fromEmail, fromName, baseURL string, timeout time.Duration) *BrevoClient {
	c := &BrevoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	if apiKey != "" && fromEmail != "" {
		c.apiKey = apiKey
		c.fromEmail = fromEmail
		c.fromName = fromName
		c.configured = true
	}
	return c
}

func (c *BrevoClient) SendVerification(ctx context.Context, email, token string) error {
	url := c.baseURL + "/verify-email?token=" + token
	return c.send(ctx, email, "Verify your email", verifyTemplate, url)
}

func (c *BrevoClient) SendPasswordReset(ctx context.Context, email, token string) error {
	url := c.baseURL + "/reset-password?token=" + token
	return c.send(ctx, email, "Reset your password", resetTemplate, url)
}

type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject string, tpl *template.Template, url string) error {
	if !c.configured {
		slog.Warn("mail client not configured, skipping send", "subject", subject)
		return nil
	}

	var body bytes.Buffer
	if err := tpl.Execute(&body, map[string]string{"URL": url}); err != nil {
		return fmt.Errorf("render email template: %w", err)
	}

	reqBody := sendEmailReq{
		Sender:      map[string]string{"email": c.fromEmail, "name": c.fromName},
		To:          []map[string]string{{"email": toEmail}},
		Subject:     subject,
		HTMLContent: body.String(),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPIURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("email send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]interface{}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errorBody); decodeErr != nil {
			return fmt.Errorf("email API error: status %d", resp.StatusCode)
		}
		return fmt.Errorf("email API error: status %d, body: %v", resp.StatusCode, errorBody)
	}
	return nil
}
