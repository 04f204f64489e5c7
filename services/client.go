package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SamuelLeutner/pre-enrollment/config"
)

type SheetWriter interface {
	EnsureSheetExists(ctx context.Context, sheetName string) error
	Clear(ctx context.Context, sheetName string) error
	SetHeaders(ctx context.Context, sheetName string, headers []string) error
	AppendRows(ctx context.Context, sheetName string, rows [][]interface{}) error
}

// HTTPError is returned for any non-2xx answer of the backend.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Client talks to the pre-enrollment backend. One Client is built at
// start-up and shared by the wizard, the admin API and the CLI.
type Client struct {
	Config *config.Config
	Client *http.Client
	Writer SheetWriter

	// OnUnauthorized runs whenever the backend answers 401, so the caller
	// can send the user back to the login step.
	OnUnauthorized func()
}

func NewClient(config *config.Config, writer SheetWriter) *Client {
	return &Client{
		Config: config,
		Client: &http.Client{Timeout: config.Timeout},
		Writer: writer,
	}
}

// MakeRequest performs one request and retries transport failures, 429
// and 5xx answers up to retries extra times with exponential backoff.
func (c *Client) MakeRequest(ctx context.Context, method, url string, headers map[string]string, body []byte, retries int) ([]byte, error) {
	var lastErr error
	path := strings.Split(url, "?")[0]

	for attempt := 0; attempt <= retries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("request '%s %s' cancelled via context: %w", method, path, ctx.Err())
		default:
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("error creating request on attempt %d: %w", attempt+1, err)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		log.Printf("Request (%s): %s [%s] (Attempt %d/%d)...", method, path, headers[requestIDHeader], attempt+1, retries+1)

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http client error on attempt %d: %w", attempt+1, err)
		} else {
			bodyBytes, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				if readErr != nil {
					lastErr = fmt.Errorf("HTTP %d: error reading body: %w", resp.StatusCode, readErr)
				} else {
					lastErr = &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
				}
			case resp.StatusCode >= 400:
				log.Printf("HTTP %d error: %s", resp.StatusCode, string(bodyBytes))
				return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
			default:
				if readErr != nil {
					return nil, fmt.Errorf("error reading response body on success: %w", readErr)
				}
				return bodyBytes, nil
			}
		}

		if attempt < retries {
			delay := c.Config.RetryDelay * time.Duration(1<<attempt)
			log.Printf("Request failed (attempt %d/%d): %v. Waiting %s before retrying...", attempt+1, retries+1, lastErr, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("request cancelled during retry wait after %d attempts for %s: %w", attempt+1, path, ctx.Err())
			}
		}
	}

	if retries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", retries+1, lastErr)
}
