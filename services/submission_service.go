package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Submit posts one wizard step to endpoint. Submissions are never retried:
// a failed step is left for the user to send again, and steps already
// accepted by the backend stay committed.
func (c *Client) Submit(ctx context.Context, endpoint string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload for %s: %w", endpoint, err)
	}

	url := c.Config.APIBase + endpoint
	log.Printf("Submitting %d fields to %s", len(payload), endpoint)

	if _, err := c.MakeRequest(ctx, http.MethodPost, url, c.headers(), body, 0); err != nil {
		if isUnauthorized(err) {
			c.handleUnauthorized()
		}
		if ctx.Err() != nil {
			return fmt.Errorf("submission to %s cancelled via context: %w", endpoint, ctx.Err())
		}
		return fmt.Errorf("error submitting to %s: %w", endpoint, err)
	}

	log.Printf("Submission to %s accepted", endpoint)
	return nil
}
