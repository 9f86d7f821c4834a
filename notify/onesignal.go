// Package notify sends push notifications through OneSignal.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAPIURL is OneSignal's notification creation endpoint.
const DefaultAPIURL = "https://onesignal.com/api/v1/notifications"

// Notification is one push message to a set of devices.
type Notification struct {
	PlayerIDs []string
	Heading   string
	Message   string
	Data      map[string]string
	URL       string
}

// Client talks to the OneSignal REST API. When the app id or key is empty
// the client is disabled and Send reports false without calling out.
type Client struct {
	apiURL     string
	appID      string
	restAPIKey string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a OneSignal client.
func NewClient(appID, restAPIKey string, log zerolog.Logger) *Client {
	return &Client{
		apiURL:     DefaultAPIURL,
		appID:      appID,
		restAPIKey: restAPIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// NewClientWithURL creates a client against a custom endpoint, for tests.
func NewClientWithURL(apiURL, appID, restAPIKey string, log zerolog.Logger) *Client {
	c := NewClient(appID, restAPIKey, log)
	c.apiURL = apiURL
	return c
}

// Enabled reports whether OneSignal credentials are configured.
func (c *Client) Enabled() bool {
	return c.appID != "" && c.restAPIKey != ""
}

// Send delivers one push notification. Returns true when OneSignal
// accepted it; delivery failures are logged, not propagated as errors,
// since notifications are best-effort.
func (c *Client) Send(ctx context.Context, n Notification) bool {
	if !c.Enabled() {
		c.log.Warn().Msg("onesignal not configured, skipping notification")
		return false
	}
	if len(n.PlayerIDs) == 0 {
		c.log.Warn().Msg("no player ids, skipping notification")
		return false
	}

	payload := map[string]interface{}{
		"app_id":             c.appID,
		"include_player_ids": n.PlayerIDs,
		"headings":           map[string]string{"en": n.Heading, "es": n.Heading},
		"contents":           map[string]string{"en": n.Message, "es": n.Message},
	}
	if len(n.Data) > 0 {
		payload["data"] = n.Data
	}
	if n.URL != "" {
		payload["url"] = n.URL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.log.Error().Err(err).Msg("marshal onesignal payload")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		c.log.Error().Err(err).Msg("build onesignal request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", c.restAPIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("send onesignal notification")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("response", string(respBody)).
			Msg("onesignal rejected notification")
		return false
	}

	c.log.Info().Int("devices", len(n.PlayerIDs)).Msg("notification sent")
	return true
}
