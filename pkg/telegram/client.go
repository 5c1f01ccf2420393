package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"contact-form-backend/pkg/config"
)

const (
	defaultAPIBaseURL = "https://api.telegram.org"

	// sendTimeout bounds a single sendMessage call.
	sendTimeout = 10 * time.Second
	// pollTimeout bounds a getUpdates call and must exceed the long-poll window.
	pollTimeout = 40 * time.Second
	// longPollSeconds is the server-side long-poll window passed to getUpdates.
	longPollSeconds = 30
)

// ErrNotConfigured is returned when the bot token or chat id is unset.
// No network call is made in that case.
var ErrNotConfigured = errors.New("telegram is not configured (missing token or chat id)")

// APIError is a rejection from the Bot API, as opposed to a transport failure.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error: %d - %s", e.StatusCode, e.Description)
}

type Chat struct {
	ID int64 `json:"id"`
}

type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text,omitempty"`
}

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Client talks to the Telegram Bot API over HTTPS.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	sendClient *http.Client
	pollClient *http.Client
	log        *zap.SugaredLogger
}

func NewClient(cfg config.Telegram, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:    defaultAPIBaseURL,
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		sendClient: &http.Client{Timeout: sendTimeout},
		pollClient: &http.Client{Timeout: pollTimeout},
		log:        log.Named("telegram"),
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Configured reports whether both the token and the chat id are set.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

// HasToken reports whether the bot token is set. Polling only needs the token.
func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// SendMessage posts text to the configured chat. The parse mode defaults
// to HTML. An unset token or chat id yields ErrNotConfigured without any
// network call.
func (c *Client) SendMessage(ctx context.Context, text, parseMode string) error {
	if !c.Configured() {
		c.log.Warn("Telegram is not configured (missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID)")
		return ErrNotConfigured
	}
	if parseMode == "" {
		parseMode = "HTML"
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return fmt.Errorf("marshaling sendMessage payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.sendClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting sendMessage: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := decodeAPIResponse(resp); err != nil {
		return err
	}

	c.log.Debug("Telegram message delivered")
	return nil
}

// GetUpdates long-polls the Bot API for new updates starting at offset.
// timeoutSeconds is the server-side long-poll window.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	if !c.HasToken() {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("offset", strconv.FormatInt(offset, 10))
	query.Set("timeout", strconv.Itoa(timeoutSeconds))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.methodURL("getUpdates")+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building getUpdates request: %w", err)
	}

	resp, err := c.pollClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching updates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	result, err := decodeAPIResponse(resp)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if len(result) > 0 {
		if err := json.Unmarshal(result, &updates); err != nil {
			return nil, fmt.Errorf("decoding updates: %w", err)
		}
	}
	return updates, nil
}

// decodeAPIResponse maps non-200 statuses and ok:false bodies to *APIError.
func decodeAPIResponse(resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading API response: %w", err)
	}

	var parsed apiResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Description: string(body)}
		}
		return nil, fmt.Errorf("decoding API response: %w", jsonErr)
	}

	if resp.StatusCode != http.StatusOK || !parsed.OK {
		description := parsed.Description
		if description == "" {
			description = string(body)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Description: description}
	}
	return parsed.Result, nil
}
