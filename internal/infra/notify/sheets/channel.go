package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/yanqian/faqdesk/internal/domain/notify"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com"
	scope          = "https://www.googleapis.com/auth/spreadsheets"
)

// Config locates the target sheet and the service-account key.
type Config struct {
	BaseURL         string
	SpreadsheetID   string
	Range           string
	CredentialsFile string
}

// Channel appends each notification's row to a spreadsheet via values:append.
type Channel struct {
	baseURL       string
	spreadsheetID string
	rangeName     string
	httpClient    *http.Client
}

// NewFromServiceAccount reads the key file and returns a channel whose HTTP
// client attaches and refreshes OAuth2 tokens.
func NewFromServiceAccount(ctx context.Context, cfg Config) (*Channel, error) {
	key, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, key, scope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}
	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = 15 * time.Second
	return New(cfg, client), nil
}

// New builds the channel on an already authorized client.
func New(cfg Config, httpClient *http.Client) *Channel {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	rangeName := cfg.Range
	if rangeName == "" {
		rangeName = "Applications!A:G"
	}
	return &Channel{
		baseURL:       base,
		spreadsheetID: cfg.SpreadsheetID,
		rangeName:     rangeName,
		httpClient:    httpClient,
	}
}

func (c *Channel) Name() string { return "sheets" }

type valueRange struct {
	Values [][]string `json:"values"`
}

// Send implements notify.Channel. Notifications without a row are skipped.
func (c *Channel) Send(ctx context.Context, n notify.Notification) error {
	if len(n.Row) == 0 {
		return nil
	}
	payload, err := json.Marshal(valueRange{Values: [][]string{n.Row}})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.rangeName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sheets request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("sheets append error: status=%d body=%s", resp.StatusCode, string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ notify.Channel = (*Channel)(nil)
