package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yanqian/faqdesk/internal/domain/notify"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	// maxMessageRunes is the Bot API limit for one text message.
	maxMessageRunes = 4096
)

// Channel posts notifications to a chat through the Bot API sendMessage method.
type Channel struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// New builds the channel. An empty baseURL means the public Bot API.
func New(baseURL, token, chatID string) *Channel {
	url := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if url == "" {
		url = defaultBaseURL
	}
	return &Channel{
		baseURL:    url,
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Channel) Name() string { return "telegram" }

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send implements notify.Channel.
func (c *Channel) Send(ctx context.Context, n notify.Notification) error {
	req := sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  MarkdownToHTML(n.Body),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	if utf8.RuneCountInString(req.Text) > maxMessageRunes {
		// Cutting HTML can leave an unclosed tag, so send a plain-text prefix.
		body := []rune(n.Body)
		if len(body) > maxMessageRunes {
			body = body[:maxMessageRunes]
		}
		req.Text = string(body)
		req.ParseMode = ""
	}
	return c.call(ctx, "sendMessage", req)
}

// APIError is a Bot API response with ok=false.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

func (c *Channel) call(ctx context.Context, method string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the bot token; keep it out of logs.
		return fmt.Errorf("telegram: %s request failed", method)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}
	var envelope struct {
		OK          bool   `json:"ok"`
		Description string `json:"description,omitempty"`
		ErrorCode   int    `json:"error_code,omitempty"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("telegram: decode response (status %d): %w", resp.StatusCode, err)
	}
	if !envelope.OK {
		return &APIError{Code: envelope.ErrorCode, Description: envelope.Description}
	}
	return nil
}

var _ notify.Channel = (*Channel)(nil)
