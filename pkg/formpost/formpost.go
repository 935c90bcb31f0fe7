// Package formpost submits the contact form to an external form endpoint as
// a plain urlencoded POST, the same request a browser form would send.
package formpost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/metrics"
	"github.com/vanderheijden86/mahar/pkg/validate"
)

// ErrEndpoint is returned when no endpoint is configured.
var ErrEndpoint = errors.New("no form endpoint configured")

// DefaultSubject is the hidden _subject field sent with every submission.
const DefaultSubject = "[מחר מלחמה - צור קשר] הודעה חדשה"

// DefaultTimeout bounds a submission when the caller gives none.
const DefaultTimeout = 10 * time.Second

// Submission is one contact form entry.
type Submission struct {
	Name    string
	Phone   string
	Email   string
	Message string
	Subject string
}

// Validate requires a name and a valid phone; email is optional but must be
// well formed when present.
func (s Submission) Validate() error {
	var errs []error
	if !validate.Required(s.Name) {
		errs = append(errs, errors.New("name is required"))
	}
	if !validate.Phone(s.Phone) {
		errs = append(errs, fmt.Errorf("phone %q is not valid", s.Phone))
	}
	if strings.TrimSpace(s.Email) != "" && !validate.Email(s.Email) {
		errs = append(errs, fmt.Errorf("email %q is not valid", s.Email))
	}
	return errors.Join(errs...)
}

// Values returns the form fields in the order the site form posts them.
func (s Submission) Values() url.Values {
	subject := s.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	v := url.Values{}
	v.Set("_subject", subject)
	v.Set("name", strings.TrimSpace(s.Name))
	v.Set("phone", strings.TrimSpace(s.Phone))
	v.Set("email", strings.TrimSpace(s.Email))
	v.Set("message", strings.TrimSpace(s.Message))
	return v
}

// StatusError reports a non-2xx response from the endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("form endpoint returned %s", e.Status)
}

// Client posts submissions to one endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// New returns a client for endpoint. A non-positive timeout uses
// DefaultTimeout.
func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit validates s and posts it.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	if c.endpoint == "" {
		return ErrEndpoint
	}
	if err := s.Validate(); err != nil {
		return err
	}

	metrics.FormPosts.Inc()
	err := c.post(ctx, s.Values())
	if err != nil {
		metrics.FormFailures.Inc()
		debug.Warn("formpost: %v", err)
		return err
	}
	debug.Log("formpost: submitted to %s", c.endpoint)
	return nil
}

func (c *Client) post(ctx context.Context, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return nil
}
