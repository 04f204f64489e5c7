package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// headers returns the headers sent with every backend call. The backend
// has no login of its own; USER_TOKEN is forwarded only when configured.
func (c *Client) headers() map[string]string {
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		requestIDHeader: uuid.NewString(),
	}
	if c.Config.UserToken != "" {
		headers["Authorization"] = "Bearer " + c.Config.UserToken
	}
	return headers
}

func (c *Client) handleUnauthorized() {
	log.Println("Backend answered 401 Unauthorized.")
	if c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}
}

func isUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}
