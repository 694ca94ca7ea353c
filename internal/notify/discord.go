package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // complete poll
	colorOrange = 0xE67E22 // some endpoints degraded

	sellerHubOrdersURL = "https://www.ebay.com/sh/ord"
	maxErrorBody       = 1 << 10
)

// DiscordNotifier posts digests to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	username   string
	client     *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithUsername overrides the webhook's display name.
func WithUsername(name string) DiscordOption {
	return func(d *DiscordNotifier) {
		d.username = name
	}
}

// NewDiscordNotifier creates a notifier for webhookURL.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type discordWebhookPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendDigest posts the digest as a single embed.
func (d *DiscordNotifier) SendDigest(ctx context.Context, digest *Digest) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(discordWebhookPayload{
		Username: d.username,
		Embeds:   []discordEmbed{buildEmbed(digest)},
	})
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	return checkDiscordResponse(resp)
}

func checkDiscordResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		if after := resp.Header.Get("Retry-After"); after != "" {
			return fmt.Errorf("discord rate limited (429), retry after %ss", after)
		}
		return errors.New("discord rate limited (429)")
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
	}
	return fmt.Errorf("discord returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
}

func buildEmbed(digest *Digest) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("eBay: %d orders due today", digest.OrdersDueToday),
		URL:   sellerHubOrdersURL,
		Color: colorGreen,
		Fields: []discordEmbedField{
			countField("New Since Last Poll", digest.NewOrders()),
			countField("Unfulfilled", digest.TotalUnfulfilledOrders),
			countField("Awaiting Payment", digest.OrdersAwaitingPayment),
			usdField("Sales Today", digest.SalesToday),
			usdField("Available Funds", digest.AvailableFunds),
			countField("Return Requests", digest.ReturnRequests),
		},
	}

	if !digest.CollectedAt.IsZero() {
		embed.Timestamp = digest.CollectedAt.UTC().Format(time.RFC3339)
	}

	if len(digest.Degraded) > 0 {
		embed.Color = colorOrange
		embed.Description = "Unavailable this poll: " + strings.Join(digest.Degraded, ", ")
	}

	return embed
}

func countField(name string, v int64) discordEmbedField {
	return discordEmbedField{Name: name, Value: strconv.FormatInt(v, 10), Inline: true}
}

func usdField(name string, v float64) discordEmbedField {
	return discordEmbedField{Name: name, Value: fmt.Sprintf("$%.2f", v), Inline: true}
}
