package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// TelegramCollaborator implements Collaborator against the raw Telegram Bot
// API (https://core.telegram.org/bots/api#sendmessage). No pack repo
// imports a Telegram SDK (the original service used aiogram), so this talks
// to the HTTP API directly with net/http — the same "call the vendor's REST
// surface by hand" style internal/portal.Client uses for zakupki.gov.ru.
const telegramAPIBaseURL = "https://api.telegram.org"

type TelegramCollaborator struct {
	token   string
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewTelegramCollaborator(botToken string, timeout time.Duration, log *zap.SugaredLogger) *TelegramCollaborator {
	return &TelegramCollaborator{
		token:   botToken,
		baseURL: telegramAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Result      struct {
		MessageID int `json:"message_id"`
	} `json:"result"`
	Parameters struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// Send posts message to recipient (a Telegram chat ID) via sendMessage,
// translating the vendor's HTTP-level errors into the Outcome taxonomy:
// 403 (bot blocked/kicked) -> user_blocked, 400 (chat not found, bad
// request) -> bad_recipient, 429 -> rate_limited with the vendor's
// requested retry_after, anything else (5xx, network, timeout) -> transient.
func (t *TelegramCollaborator) Send(ctx context.Context, recipient, message string) (Outcome, time.Duration, string, error) {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)

	form := url.Values{}
	form.Set("chat_id", recipient)
	form.Set("text", message)
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return OutcomeTransient, 0, "", fmt.Errorf("build telegram request: %w", err)
	}
	req.URL.RawQuery = form.Encode()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return OutcomeTransient, 0, "", fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return OutcomeTransient, 0, "", fmt.Errorf("read telegram response: %w", err)
	}

	var tr telegramResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return OutcomeTransient, 0, "", fmt.Errorf("decode telegram response: %w", err)
	}

	if tr.OK {
		return OutcomeOK, 0, strconv.Itoa(tr.Result.MessageID), nil
	}

	switch resp.StatusCode {
	case http.StatusForbidden:
		return OutcomeUserBlocked, 0, "", fmt.Errorf("telegram: %s", tr.Description)
	case http.StatusBadRequest:
		return OutcomeBadRecipient, 0, "", fmt.Errorf("telegram: %s", tr.Description)
	case http.StatusTooManyRequests:
		retryAfter := time.Duration(tr.Parameters.RetryAfter) * time.Second
		if retryAfter <= 0 {
			retryAfter = 5 * time.Second
		}
		return OutcomeRateLimited, retryAfter, "", fmt.Errorf("telegram: %s", tr.Description)
	default:
		return OutcomeTransient, 0, "", fmt.Errorf("telegram: %s", tr.Description)
	}
}
